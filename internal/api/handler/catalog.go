package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/catalog"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

func ListProducts(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		filters := domain.ProductFilters{
			Category: utils.QueryString(r, "category"),
			Search:   utils.QueryString(r, "search"),
			IsActive: utils.QueryBool(r, "is_active"),
		}
		if lowStock := utils.QueryBool(r, "low_stock"); lowStock != nil {
			filters.LowStock = *lowStock
		}

		products, err := service.ListProducts(r.Context(), businessID, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar produtos")
			return
		}

		writeJSON(w, http.StatusOK, products)
	}
}

func GetProduct(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		product, err := service.GetProduct(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar produto")
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}

func CreateProduct(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var product domain.Product
		if !decodeBody(w, r, &product) {
			return
		}
		product.BusinessID = businessID

		created, err := service.CreateProduct(r.Context(), &product)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar produto")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateProduct(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.UpdateProductRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")
		req.BusinessID = businessID

		product, err := service.UpdateProduct(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar produto")
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}

func DeactivateProduct(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		if err := service.DeactivateProduct(r.Context(), businessID, pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err, "Erro ao desativar produto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// AdjustStock registra uma movimentação manual de estoque
func AdjustStock(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.StockAdjustmentRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ProductID = pathParam(r, "id")
		req.BusinessID = businessID
		req.UserID = claims.UserID

		movement, err := service.AdjustStock(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao ajustar estoque")
			return
		}

		writeJSON(w, http.StatusCreated, movement)
	}
}

func ListLowStock(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		products, err := service.ListLowStock(r.Context(), businessID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar produtos com estoque baixo")
			return
		}

		writeJSON(w, http.StatusOK, products)
	}
}

func ListInventoryMovements(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		movements, err := service.ListInventoryMovements(r.Context(), businessID, utils.QueryString(r, "product_id"), pagination(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar movimentações de estoque")
			return
		}

		writeJSON(w, http.StatusOK, movements)
	}
}

func ListServices(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		filters := domain.ServiceFilters{
			Category:  utils.QueryString(r, "category"),
			IsActive:  utils.QueryBool(r, "is_active"),
			IsPackage: utils.QueryBool(r, "is_package"),
		}

		services, err := service.ListServices(r.Context(), businessID, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar serviços")
			return
		}

		writeJSON(w, http.StatusOK, services)
	}
}

func GetService(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		result, err := service.GetService(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar serviço")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func CreateService(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var item domain.Service
		if !decodeBody(w, r, &item) {
			return
		}
		item.BusinessID = businessID

		created, err := service.CreateService(r.Context(), &item)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar serviço")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateService(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.UpdateServiceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")
		req.BusinessID = businessID

		result, err := service.UpdateService(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar serviço")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func DeactivateService(service catalog.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		if err := service.DeactivateService(r.Context(), businessID, pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err, "Erro ao desativar serviço")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
