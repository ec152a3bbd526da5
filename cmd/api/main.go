package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/diana0617/beauty-control-api/infrastructure/database/migrations"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp"
	"github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp/whatsappclient"
	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/api"
	"github.com/diana0617/beauty-control-api/internal/api/handler"
	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/scheduler"
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
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define formato e nível de log com base na configuração
	log.Configure(cfg.App.LogLevel, cfg.App.Environment)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(pgConn.DB); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
		logrus.Info("Migrações aplicadas com sucesso")
	}

	cacheStore := cache.New(ctx, cache.Options{
		Driver:     cfg.Cache.Driver,
		MaxEntries: cfg.Cache.MaxEntries,
		DefaultTTL: cfg.Cache.DefaultTTL,
		Redis: cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		},
	})

	userRepo := repository.NewUserRepository(pgConn)
	businessRepo := repository.NewBusinessRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	serviceRepo := repository.NewServiceRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	paymentRepo := repository.NewPaymentMethodRepository(pgConn)
	shiftRepo := repository.NewCashRegisterRepository(pgConn)
	commissionRepo := repository.NewCommissionRepository(pgConn)
	treatmentRepo := repository.NewTreatmentRepository(pgConn)
	ruleRepo := repository.NewRuleRepository(pgConn)
	permissionRepo := repository.NewPermissionRepository(pgConn)
	dashboardRepo := repository.NewDashboardRepository(pgConn)
	rankingRepo := repository.NewBusinessRankingRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, businessRepo, cacheStore, cfg)

	// Regras do negócio servem de avaliador para vendas, tratamentos e comissões
	businessRules := rules.NewBusinessRulesService(ruleRepo, cacheStore, cfg.Cache.RulesTTL)
	ruleTemplates := rules.NewTemplateService(ruleRepo, cacheStore)

	businessService := business.NewService(businessRepo, userRepo, authenticator, cacheStore, cfg)
	catalogService := catalog.NewService(productRepo, serviceRepo, cacheStore)
	paymentService := payment.NewService(paymentRepo)
	cashRegisterService := cashregister.NewService(shiftRepo)
	permissionService := permission.NewService(permissionRepo, userRepo, cacheStore, cfg.Cache.PermissionsTTL)
	commissionService := commission.NewService(commissionRepo, serviceRepo, userRepo, businessRules)
	saleService := selling.NewService(saleRepo, productRepo, paymentRepo, shiftRepo, commissionService, businessRules, cacheStore)
	treatmentService := treatment.NewService(treatmentRepo, serviceRepo, commissionService, businessRules, cacheStore)
	rankingService := ranking.NewBusinessRankingService(rankingRepo, cacheStore)
	dashboardService := dashboard.NewService(dashboardRepo, productRepo, rankingService, cacheStore, dashboard.TTLs{
		Owner:    cfg.Cache.OwnerDashTTL,
		Business: cfg.Cache.BusinessDashTTL,
	})

	whatsappIntegrator := whatsapp.New(cfg, whatsappclient.NewClient(cfg))

	// Inicializa os agendadores
	sessionReminderService := scheduler.NewSessionReminderService(treatmentRepo, whatsappIntegrator, cfg)
	trialExpirationService := scheduler.NewTrialExpirationService(businessService, cfg)
	businessRankingService := scheduler.NewBusinessRankingService(rankingService, cfg)

	startJob(ctx, "lembretes de sessão", sessionReminderService)
	startJob(ctx, "expiração de períodos de teste", trialExpirationService)
	startJob(ctx, "ranking de negócios", businessRankingService)

	server, err := api.New(cfg, api.Services{
		Authenticator:  authenticator,
		Business:       businessService,
		Catalog:        catalogService,
		Sales:          saleService,
		Treatments:     treatmentService,
		RuleTemplates:  ruleTemplates,
		BusinessRules:  businessRules,
		Permissions:    permissionService,
		PaymentMethods: paymentService,
		CashRegister:   cashRegisterService,
		Commissions:    commissionService,
		Dashboard:      dashboardService,
		Ranking:        rankingService,
		Cron: handler.CronJobServices{
			SessionReminderService: sessionReminderService,
			TrialExpirationService: trialExpirationService,
			BusinessRankingService: businessRankingService,
		},
		Database: pgConn,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func startJob(ctx context.Context, name string, job scheduler.Job) {
	if err := job.Start(ctx); err != nil {
		logrus.WithError(err).Errorf("Erro ao iniciar o agendador de %s", name)
		return
	}
	logrus.Infof("Agendador de %s iniciado com sucesso", name)
}

// chdirToSource posiciona o processo no diretório do binário para o .env ser encontrado
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	_ = os.Chdir(path.Dir(file))
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
