package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrUserLocked            = "AUTH_004" // Usuário bloqueado temporariamente
	ErrPasswordExpired       = "AUTH_005" // Senha expirada
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe
	ErrTooManyRequests       = "AUTH_010" // Muitas tentativas em pouco tempo
	ErrWeakPassword          = "AUTH_011" // Senha não atende aos requisitos

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Negócios
	ErrBusinessNotFound      = "BUS_001"
	ErrBusinessAlreadyExists = "BUS_002"
	ErrBusinessInactive      = "BUS_003"
	ErrInvalidBusinessStatus = "BUS_004"
	ErrBusinessAccessDenied  = "BUS_005"

	// Catálogo
	ErrProductNotFound        = "CAT_001"
	ErrServiceNotFound        = "CAT_002"
	ErrInvalidPackage         = "CAT_003"
	ErrInvalidStockAdjustment = "CAT_004"
	ErrDuplicateSKU           = "CAT_005"

	// Vendas
	ErrSaleNotFound         = "SAL_001"
	ErrInvalidSaleItems     = "SAL_002"
	ErrInsufficientStock    = "SAL_003"
	ErrInsufficientPayment  = "SAL_004"
	ErrShiftRequired        = "SAL_005"
	ErrSaleAlreadyCancelled = "SAL_006"
	ErrInvalidDiscount      = "SAL_007"
	ErrProductUnavailable   = "SAL_008"

	// Tratamentos
	ErrTreatmentPlanNotFound    = "TRT_001"
	ErrTreatmentSessionNotFound = "TRT_002"
	ErrInvalidTreatmentState    = "TRT_003"
	ErrSessionInterval          = "TRT_004"
	ErrInvalidTreatmentPayment  = "TRT_005"
	ErrServiceNotPackage        = "TRT_006"

	// Regras de negócio
	ErrRuleTemplateNotFound = "RUL_001"
	ErrRuleTemplateExists   = "RUL_002"
	ErrInvalidRuleValue     = "RUL_003"
	ErrRuleDependency       = "RUL_004"
	ErrRuleConflict         = "RUL_005"
	ErrRuleNotCustomizable  = "RUL_006"
	ErrRuleAlreadyAssigned  = "RUL_007"
	ErrRuleNotAssigned      = "RUL_008"
	ErrRuleTemplateInUse    = "RUL_009"

	// Permissões
	ErrPermissionNotFound = "PER_001"
	ErrPermissionDenied   = "PER_002"

	// Caixa
	ErrShiftNotFound    = "CSH_001"
	ErrShiftAlreadyOpen = "CSH_002"
	ErrShiftClosed      = "CSH_003"
	ErrInvalidBalance   = "CSH_004"

	// Comissões
	ErrSpecialistNotFound         = "COM_001"
	ErrSpecialistAlreadyExists    = "COM_002"
	ErrNoPendingCommissions       = "COM_003"
	ErrPaymentRequestNotFound     = "COM_004"
	ErrInvalidPaymentRequestState = "COM_005"
	ErrInvalidCommissionRate      = "COM_006"

	// Métodos de pagamento
	ErrPaymentMethodNotFound = "PAY_001"
	ErrPaymentMethodExists   = "PAY_002"
	ErrPaymentMethodInactive = "PAY_003"
	ErrInvalidPaymentMethod  = "PAY_004"

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrUserLocked:            http.StatusForbidden,
	ErrPasswordExpired:       http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrTooManyRequests:       http.StatusTooManyRequests,
	ErrWeakPassword:          http.StatusBadRequest,

	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,

	ErrBusinessNotFound:      http.StatusNotFound,
	ErrBusinessAlreadyExists: http.StatusConflict,
	ErrBusinessInactive:      http.StatusForbidden,
	ErrInvalidBusinessStatus: http.StatusBadRequest,
	ErrBusinessAccessDenied:  http.StatusForbidden,

	ErrProductNotFound:        http.StatusNotFound,
	ErrServiceNotFound:        http.StatusNotFound,
	ErrInvalidPackage:         http.StatusBadRequest,
	ErrInvalidStockAdjustment: http.StatusBadRequest,
	ErrDuplicateSKU:           http.StatusConflict,

	ErrSaleNotFound:         http.StatusNotFound,
	ErrInvalidSaleItems:     http.StatusBadRequest,
	ErrInsufficientStock:    http.StatusConflict,
	ErrInsufficientPayment:  http.StatusBadRequest,
	ErrShiftRequired:        http.StatusConflict,
	ErrSaleAlreadyCancelled: http.StatusConflict,
	ErrInvalidDiscount:      http.StatusBadRequest,
	ErrProductUnavailable:   http.StatusConflict,

	ErrTreatmentPlanNotFound:    http.StatusNotFound,
	ErrTreatmentSessionNotFound: http.StatusNotFound,
	ErrInvalidTreatmentState:    http.StatusConflict,
	ErrSessionInterval:          http.StatusBadRequest,
	ErrInvalidTreatmentPayment:  http.StatusBadRequest,
	ErrServiceNotPackage:        http.StatusBadRequest,

	ErrRuleTemplateNotFound: http.StatusNotFound,
	ErrRuleTemplateExists:   http.StatusConflict,
	ErrInvalidRuleValue:     http.StatusBadRequest,
	ErrRuleDependency:       http.StatusConflict,
	ErrRuleConflict:         http.StatusConflict,
	ErrRuleNotCustomizable:  http.StatusForbidden,
	ErrRuleAlreadyAssigned:  http.StatusConflict,
	ErrRuleNotAssigned:      http.StatusNotFound,
	ErrRuleTemplateInUse:    http.StatusConflict,

	ErrPermissionNotFound: http.StatusNotFound,
	ErrPermissionDenied:   http.StatusForbidden,

	ErrShiftNotFound:    http.StatusNotFound,
	ErrShiftAlreadyOpen: http.StatusConflict,
	ErrShiftClosed:      http.StatusConflict,
	ErrInvalidBalance:   http.StatusBadRequest,

	ErrSpecialistNotFound:         http.StatusNotFound,
	ErrSpecialistAlreadyExists:    http.StatusConflict,
	ErrNoPendingCommissions:       http.StatusConflict,
	ErrPaymentRequestNotFound:     http.StatusNotFound,
	ErrInvalidPaymentRequestState: http.StatusConflict,
	ErrInvalidCommissionRate:      http.StatusBadRequest,

	ErrPaymentMethodNotFound: http.StatusNotFound,
	ErrPaymentMethodExists:   http.StatusConflict,
	ErrPaymentMethodInactive: http.StatusConflict,
	ErrInvalidPaymentMethod:  http.StatusBadRequest,

	ErrInternalServer:    http.StatusInternalServerError,
	ErrDatabaseOperation: http.StatusInternalServerError,
	ErrExternalService:   http.StatusBadGateway,
	ErrCommunication:     http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// CodedError é implementado pelos erros dos casos de uso que já sabem o código da API
type CodedError interface {
	error
	APICode() string
	APIMessage() string
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// WriteFromError usa o código carregado pelo erro quando existir, senão o código de fallback
func WriteFromError(w http.ResponseWriter, err error, fallbackCode, fallbackMessage string) {
	var coded CodedError
	if errors.As(err, &coded) {
		WriteError(w, coded.APICode(), coded.APIMessage(), nil)
		return
	}

	WriteError(w, fallbackCode, fallbackMessage, nil)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	var coded CodedError
	if errors.As(err, &coded) {
		return APIError{Code: coded.APICode(), Message: coded.APIMessage()}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
