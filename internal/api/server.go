package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/diana0617/beauty-control-api/internal/api/handler"
	"github.com/diana0617/beauty-control-api/internal/api/handler/router"
	"github.com/diana0617/beauty-control-api/internal/config"
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
	"github.com/diana0617/beauty-control-api/pkg/middleware"
)

const limiterCleanupInterval = 5 * time.Minute

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Authenticator  authenticating.Authenticator
	Business       business.BusinessService
	Catalog        catalog.CatalogService
	Sales          selling.SaleService
	Treatments     treatment.TreatmentService
	RuleTemplates  rules.RuleTemplateService
	BusinessRules  rules.BusinessRulesService
	Permissions    permission.PermissionService
	PaymentMethods payment.PaymentMethodService
	CashRegister   cashregister.CashRegisterService
	Commissions    commission.CommissionService
	Dashboard      dashboard.DashboardService
	Ranking        ranking.RankingService
	Cron           handler.CronJobServices
	Database       handler.Pinger
}

type Server struct {
	httpServer *http.Server
	limiter    *middleware.RateLimiter
}

func New(config *config.Config, services Services) (*Server, error) {
	loginLimiter := middleware.NewRateLimiter(config.RateLimit.LoginRequestsPerSecond, config.RateLimit.LoginBurst)
	checker := services.Permissions

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Authentication(services.Authenticator, loginLimiter)...),
		router.WithRoutes(handler.User(services.Authenticator, checker)...),
		router.WithRoutes(handler.Businesses(services.Business)...),
		router.WithRoutes(handler.Catalog(services.Catalog, checker)...),
		router.WithRoutes(handler.Sales(services.Sales, checker)...),
		router.WithRoutes(handler.Treatments(services.Treatments, checker)...),
		router.WithRoutes(handler.RuleTemplates(services.RuleTemplates)...),
		router.WithRoutes(handler.BusinessRules(services.BusinessRules)...),
		router.WithRoutes(handler.Permissions(services.Permissions)...),
		router.WithRoutes(handler.PaymentMethods(services.PaymentMethods, checker)...),
		router.WithRoutes(handler.CashRegister(services.CashRegister, checker)...),
		router.WithRoutes(handler.Commissions(services.Commissions, checker)...),
		router.WithRoutes(handler.Dashboard(services.Dashboard, services.Ranking, checker)...),
		router.WithRoutes(handler.CronJobs(services.Cron)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	httpHandler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           httpHandler,
			ReadHeaderTimeout: 2 * time.Second,
		},
		limiter: loginLimiter,
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	go s.cleanupLimiter(ctx)

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// cleanupLimiter descarta periodicamente os IPs inativos do limitador de login
func (s Server) cleanupLimiter(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.limiter.Cleanup()
		case <-ctx.Done():
			return
		}
	}
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
