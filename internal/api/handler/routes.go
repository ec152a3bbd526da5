package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/api/handler/router"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/authenticating"
	"github.com/diana0617/beauty-control-api/internal/usecases/business"
	"github.com/diana0617/beauty-control-api/internal/usecases/cashregister"
	"github.com/diana0617/beauty-control-api/internal/usecases/catalog"
	"github.com/diana0617/beauty-control-api/internal/usecases/commission"
	"github.com/diana0617/beauty-control-api/internal/usecases/dashboard"
	"github.com/diana0617/beauty-control-api/internal/usecases/payment"
	"github.com/diana0617/beauty-control-api/internal/usecases/permission"
	"github.com/diana0617/beauty-control-api/internal/usecases/ranking"
	"github.com/diana0617/beauty-control-api/internal/usecases/rules"
	"github.com/diana0617/beauty-control-api/internal/usecases/selling"
	"github.com/diana0617/beauty-control-api/internal/usecases/treatment"
	"github.com/diana0617/beauty-control-api/pkg/metrics"
	"github.com/diana0617/beauty-control-api/pkg/middleware"
)

type chain = []func(http.Handler) http.Handler

// staffWith exige um papel do negócio e a permissão informada
func staffWith(checker middleware.PermissionChecker, key string) chain {
	return chain{middleware.Staff(), middleware.RequirePermission(checker, key)}
}

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator, limiter *middleware.RateLimiter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/login",
			Method:      http.MethodPost,
			Handler:     Login(service),
			Middlewares: chain{limiter.Handler},
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: chain{middleware.BusinessAdmin()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: chain{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: chain{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator, checker middleware.PermissionChecker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: staffWith(checker, domain.PermUsersManage),
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: staffWith(checker, domain.PermUsersManage),
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: chain{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: chain{middleware.AllRoles()},
		},
	}
}

func Businesses(service business.BusinessService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: RegisterBusiness(service),
		},
		{
			Path:        "/v1/businesses",
			Method:      http.MethodGet,
			Handler:     ListBusinesses(service),
			Middlewares: chain{middleware.OwnerOnly()},
		},
		{
			Path:        "/v1/businesses/:id",
			Method:      http.MethodGet,
			Handler:     GetBusiness(service),
			Middlewares: chain{middleware.Staff()},
		},
		{
			Path:        "/v1/businesses/:id",
			Method:      http.MethodPut,
			Handler:     UpdateBusiness(service),
			Middlewares: chain{middleware.BusinessAdmin()},
		},
		{
			Path:        "/v1/businesses/:id/status",
			Method:      http.MethodPatch,
			Handler:     ChangeBusinessStatus(service),
			Middlewares: chain{middleware.OwnerOnly()},
		},
	}
}

func Catalog(service catalog.CatalogService, checker middleware.PermissionChecker) []router.Route {
	return []router.Route{
		{Path: "/v1/products", Method: http.MethodGet, Handler: ListProducts(service), Middlewares: staffWith(checker, domain.PermCatalogView)},
		{Path: "/v1/products", Method: http.MethodPost, Handler: CreateProduct(service), Middlewares: staffWith(checker, domain.PermCatalogManage)},
		{Path: "/v1/inventory/low-stock", Method: http.MethodGet, Handler: ListLowStock(service), Middlewares: staffWith(checker, domain.PermCatalogView)},
		{Path: "/v1/products/:id", Method: http.MethodGet, Handler: GetProduct(service), Middlewares: staffWith(checker, domain.PermCatalogView)},
		{Path: "/v1/products/:id", Method: http.MethodPut, Handler: UpdateProduct(service), Middlewares: staffWith(checker, domain.PermCatalogManage)},
		{Path: "/v1/products/:id", Method: http.MethodDelete, Handler: DeactivateProduct(service), Middlewares: staffWith(checker, domain.PermCatalogManage)},
		{Path: "/v1/products/:id/stock", Method: http.MethodPost, Handler: AdjustStock(service), Middlewares: staffWith(checker, domain.PermInventoryAdjust)},
		{Path: "/v1/inventory/movements", Method: http.MethodGet, Handler: ListInventoryMovements(service), Middlewares: staffWith(checker, domain.PermCatalogView)},
		{Path: "/v1/services", Method: http.MethodGet, Handler: ListServices(service), Middlewares: staffWith(checker, domain.PermCatalogView)},
		{Path: "/v1/services", Method: http.MethodPost, Handler: CreateService(service), Middlewares: staffWith(checker, domain.PermCatalogManage)},
		{Path: "/v1/services/:id", Method: http.MethodGet, Handler: GetService(service), Middlewares: staffWith(checker, domain.PermCatalogView)},
		{Path: "/v1/services/:id", Method: http.MethodPut, Handler: UpdateService(service), Middlewares: staffWith(checker, domain.PermCatalogManage)},
		{Path: "/v1/services/:id", Method: http.MethodDelete, Handler: DeactivateService(service), Middlewares: staffWith(checker, domain.PermCatalogManage)},
	}
}

func Sales(service selling.SaleService, checker middleware.PermissionChecker) []router.Route {
	return []router.Route{
		{Path: "/v1/sales", Method: http.MethodPost, Handler: CreateSale(service), Middlewares: staffWith(checker, domain.PermSalesCreate)},
		{Path: "/v1/sales", Method: http.MethodGet, Handler: ListSales(service), Middlewares: staffWith(checker, domain.PermSalesView)},
		{Path: "/v1/reports/sales/summary", Method: http.MethodGet, Handler: GetSalesSummary(service), Middlewares: staffWith(checker, domain.PermSalesView)},
		{Path: "/v1/reports/sales/export", Method: http.MethodGet, Handler: ExportSales(service), Middlewares: staffWith(checker, domain.PermSalesExport)},
		{Path: "/v1/sales/:id", Method: http.MethodGet, Handler: GetSale(service), Middlewares: staffWith(checker, domain.PermSalesView)},
		{Path: "/v1/sales/:id/cancel", Method: http.MethodPost, Handler: CancelSale(service), Middlewares: staffWith(checker, domain.PermSalesCancel)},
	}
}

func Treatments(service treatment.TreatmentService, checker middleware.PermissionChecker) []router.Route {
	return []router.Route{
		{Path: "/v1/treatments", Method: http.MethodPost, Handler: CreateTreatmentPlan(service), Middlewares: staffWith(checker, domain.PermTreatmentsManage)},
		{Path: "/v1/treatments", Method: http.MethodGet, Handler: ListTreatmentPlans(service), Middlewares: staffWith(checker, domain.PermTreatmentsView)},
		{Path: "/v1/treatments/:id", Method: http.MethodGet, Handler: GetTreatmentPlan(service), Middlewares: staffWith(checker, domain.PermTreatmentsView)},
		{Path: "/v1/treatments/:id/payments", Method: http.MethodPost, Handler: RegisterTreatmentPayment(service), Middlewares: staffWith(checker, domain.PermTreatmentsPayment)},
		{Path: "/v1/treatments/:id/pause", Method: http.MethodPost, Handler: PauseTreatmentPlan(service), Middlewares: staffWith(checker, domain.PermTreatmentsManage)},
		{Path: "/v1/treatments/:id/resume", Method: http.MethodPost, Handler: ResumeTreatmentPlan(service), Middlewares: staffWith(checker, domain.PermTreatmentsManage)},
		{Path: "/v1/treatments/:id/cancel", Method: http.MethodPost, Handler: CancelTreatmentPlan(service), Middlewares: staffWith(checker, domain.PermTreatmentsManage)},
		{Path: "/v1/treatment-sessions/:id/schedule", Method: http.MethodPost, Handler: ScheduleTreatmentSession(service), Middlewares: staffWith(checker, domain.PermTreatmentsManage)},
		{Path: "/v1/treatment-sessions/:id/complete", Method: http.MethodPost, Handler: CompleteTreatmentSession(service), Middlewares: staffWith(checker, domain.PermTreatmentsManage)},
		{Path: "/v1/treatment-sessions/:id/missed", Method: http.MethodPost, Handler: MarkTreatmentSessionMissed(service), Middlewares: staffWith(checker, domain.PermTreatmentsManage)},
		{Path: "/v1/treatment-sessions/:id/cancel", Method: http.MethodPost, Handler: CancelTreatmentSession(service), Middlewares: staffWith(checker, domain.PermTreatmentsManage)},
	}
}

func RuleTemplates(service rules.RuleTemplateService) []router.Route {
	owner := chain{middleware.OwnerOnly()}

	return []router.Route{
		{Path: "/v1/rule-templates", Method: http.MethodGet, Handler: ListRuleTemplates(service), Middlewares: owner},
		{Path: "/v1/rule-templates", Method: http.MethodPost, Handler: CreateRuleTemplate(service), Middlewares: owner},
		{Path: "/v1/rule-templates/:id", Method: http.MethodGet, Handler: GetRuleTemplate(service), Middlewares: owner},
		{Path: "/v1/rule-templates/:id", Method: http.MethodPut, Handler: UpdateRuleTemplate(service), Middlewares: owner},
		{Path: "/v1/rule-templates/:id", Method: http.MethodDelete, Handler: DeleteRuleTemplate(service), Middlewares: owner},
		{Path: "/v1/rule-templates/:id/usage", Method: http.MethodGet, Handler: GetRuleTemplateUsage(service), Middlewares: owner},
	}
}

func BusinessRules(service rules.BusinessRulesService) []router.Route {
	admin := chain{middleware.BusinessAdmin()}

	return []router.Route{
		{Path: "/v1/rules", Method: http.MethodGet, Handler: GetBusinessRules(service), Middlewares: chain{middleware.Staff()}},
		{Path: "/v1/rules", Method: http.MethodPost, Handler: AssignRule(service), Middlewares: admin},
		{Path: "/v1/rules/available", Method: http.MethodGet, Handler: ListAvailableRuleTemplates(service), Middlewares: admin},
		{Path: "/v1/rules/sync", Method: http.MethodPost, Handler: SyncRuleVersions(service), Middlewares: admin},
		{Path: "/v1/rules/value/:key", Method: http.MethodGet, Handler: GetRuleValue(service), Middlewares: chain{middleware.Staff()}},
		{Path: "/v1/rules/templates/:template_id", Method: http.MethodPut, Handler: CustomizeRule(service), Middlewares: admin},
		{Path: "/v1/rules/templates/:template_id", Method: http.MethodDelete, Handler: RemoveRule(service), Middlewares: admin},
		{Path: "/v1/rules/templates/:template_id/reset", Method: http.MethodPost, Handler: ResetRule(service), Middlewares: admin},
		{Path: "/v1/rules/templates/:template_id/toggle", Method: http.MethodPost, Handler: ToggleRule(service), Middlewares: admin},
	}
}

func Permissions(service permission.PermissionService) []router.Route {
	admin := chain{middleware.BusinessAdmin()}

	return []router.Route{
		{Path: "/v1/permissions", Method: http.MethodGet, Handler: ListPermissions(service), Middlewares: admin},
		{Path: "/v1/me/permissions", Method: http.MethodGet, Handler: GetMyPermissions(service), Middlewares: chain{middleware.AllRoles()}},
		{Path: "/v1/roles/:role_id/permissions", Method: http.MethodGet, Handler: GetRoleDefaults(service), Middlewares: admin},
		{Path: "/v1/roles/:role_id/permissions", Method: http.MethodPut, Handler: UpdateRoleDefaults(service), Middlewares: chain{middleware.OwnerOnly()}},
		{Path: "/v1/users/:id/permissions", Method: http.MethodGet, Handler: GetUserPermissions(service), Middlewares: admin},
		{Path: "/v1/users/:id/permissions/grant", Method: http.MethodPost, Handler: GrantUserPermission(service), Middlewares: admin},
		{Path: "/v1/users/:id/permissions/revoke", Method: http.MethodPost, Handler: RevokeUserPermission(service), Middlewares: admin},
		{Path: "/v1/users/:id/permissions/reset", Method: http.MethodPost, Handler: ResetUserPermissions(service), Middlewares: admin},
	}
}

func PaymentMethods(service payment.PaymentMethodService, checker middleware.PermissionChecker) []router.Route {
	manage := staffWith(checker, domain.PermPaymentMethodsManage)

	return []router.Route{
		{Path: "/v1/payment-methods", Method: http.MethodGet, Handler: ListPaymentMethods(service), Middlewares: chain{middleware.Staff()}},
		{Path: "/v1/payment-methods", Method: http.MethodPost, Handler: CreatePaymentMethod(service), Middlewares: manage},
		{Path: "/v1/payment-methods", Method: http.MethodPut, Handler: ReorderPaymentMethods(service), Middlewares: manage},
		{Path: "/v1/payment-methods/:id", Method: http.MethodGet, Handler: GetPaymentMethod(service), Middlewares: chain{middleware.Staff()}},
		{Path: "/v1/payment-methods/:id", Method: http.MethodPut, Handler: UpdatePaymentMethod(service), Middlewares: manage},
		{Path: "/v1/payment-methods/:id", Method: http.MethodDelete, Handler: DeletePaymentMethod(service), Middlewares: manage},
		{Path: "/v1/payment-methods/:id/toggle", Method: http.MethodPatch, Handler: TogglePaymentMethod(service), Middlewares: manage},
	}
}

func CashRegister(service cashregister.CashRegisterService, checker middleware.PermissionChecker) []router.Route {
	return []router.Route{
		{Path: "/v1/cash-register/shifts", Method: http.MethodPost, Handler: OpenShift(service), Middlewares: staffWith(checker, domain.PermCashOpen)},
		{Path: "/v1/cash-register/shifts", Method: http.MethodGet, Handler: ListShifts(service), Middlewares: staffWith(checker, domain.PermCashView)},
		{Path: "/v1/cash-register/active", Method: http.MethodGet, Handler: GetActiveShift(service), Middlewares: chain{middleware.Staff()}},
		{Path: "/v1/cash-register/shifts/:id/summary", Method: http.MethodGet, Handler: GetShiftSummary(service), Middlewares: staffWith(checker, domain.PermCashView)},
		{Path: "/v1/cash-register/shifts/:id/close", Method: http.MethodPost, Handler: CloseShift(service), Middlewares: staffWith(checker, domain.PermCashClose)},
	}
}

func Commissions(service commission.CommissionService, checker middleware.PermissionChecker) []router.Route {
	view := staffWith(checker, domain.PermCommissionsView)
	manage := staffWith(checker, domain.PermCommissionsManage)

	return []router.Route{
		{Path: "/v1/specialists", Method: http.MethodGet, Handler: ListSpecialists(service), Middlewares: chain{middleware.Staff()}},
		{Path: "/v1/specialists", Method: http.MethodPost, Handler: CreateSpecialist(service), Middlewares: manage},
		{Path: "/v1/specialists/:id", Method: http.MethodGet, Handler: GetSpecialist(service), Middlewares: chain{middleware.Staff()}},
		{Path: "/v1/specialists/:id", Method: http.MethodPut, Handler: UpdateSpecialist(service), Middlewares: manage},
		{Path: "/v1/specialists/:id/commissions/summary", Method: http.MethodGet, Handler: GetCommissionSummary(service), Middlewares: view},
		{Path: "/v1/commissions", Method: http.MethodGet, Handler: ListCommissionDetails(service), Middlewares: view},
		{Path: "/v1/commissions/preview", Method: http.MethodPost, Handler: PreviewCommission(service), Middlewares: view},
		{Path: "/v1/commission-requests", Method: http.MethodGet, Handler: ListCommissionPaymentRequests(service), Middlewares: view},
		{Path: "/v1/commission-requests", Method: http.MethodPost, Handler: CreateCommissionPaymentRequest(service), Middlewares: view},
		{Path: "/v1/commission-requests/:id/approve", Method: http.MethodPost, Handler: ApproveCommissionPaymentRequest(service), Middlewares: manage},
		{Path: "/v1/commission-requests/:id/reject", Method: http.MethodPost, Handler: RejectCommissionPaymentRequest(service), Middlewares: manage},
		{Path: "/v1/commission-requests/:id/pay", Method: http.MethodPost, Handler: PayCommissionPaymentRequest(service), Middlewares: manage},
	}
}

func Dashboard(service dashboard.DashboardService, rankingService ranking.RankingService, checker middleware.PermissionChecker) []router.Route {
	owner := chain{middleware.OwnerOnly()}

	return []router.Route{
		{Path: "/v1/dashboard/owner", Method: http.MethodGet, Handler: GetOwnerDashboard(service), Middlewares: owner},
		{Path: "/v1/dashboard/cache", Method: http.MethodGet, Handler: GetDashboardCacheStats(service), Middlewares: owner},
		{Path: "/v1/dashboard/business", Method: http.MethodGet, Handler: GetBusinessDashboard(service), Middlewares: staffWith(checker, domain.PermDashboardView)},
		{Path: "/v1/businesses-ranking", Method: http.MethodGet, Handler: GetBusinessRanking(rankingService), Middlewares: owner},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: chain{middleware.OwnerOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: chain{middleware.OwnerOnly()},
		},
	}
}
