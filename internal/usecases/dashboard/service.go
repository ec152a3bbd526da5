package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/ranking"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

const (
	revenueSeriesMonths = 6
	lowStockLimit       = 10
	topProductsLimit    = 5
)

type DashboardService interface {
	GetOwnerDashboard(ctx context.Context) (*domain.OwnerDashboard, error)
	GetBusinessDashboard(ctx context.Context, businessID string) (*domain.BusinessDashboard, error)
	CacheStats() cache.Stats
}

type TTLs struct {
	Owner    time.Duration
	Business time.Duration
}

type Service struct {
	repo        repository.DashboardRepository
	productRepo repository.ProductRepository
	ranking     ranking.RankingService
	cache       cache.Cache
	ttl         TTLs
	now         func() time.Time
}

func NewService(
	repo repository.DashboardRepository,
	productRepo repository.ProductRepository,
	rankingService ranking.RankingService,
	cacheStore cache.Cache,
	ttl TTLs,
) DashboardService {
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		ranking:     rankingService,
		cache:       cacheStore,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *Service) GetOwnerDashboard(ctx context.Context) (*domain.OwnerDashboard, error) {
	dashboard, err := cache.GetOrSet(ctx, s.cache, cache.OwnerDashboardKey, s.ttl.Owner, s.buildOwnerDashboard)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao montar dashboard do owner")
		return nil, NewDashboardError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}
	return dashboard, nil
}

// buildOwnerDashboard dispara as consultas da plataforma em paralelo; a primeira falha cancela as demais
func (s *Service) buildOwnerDashboard(ctx context.Context) (*domain.OwnerDashboard, error) {
	now := s.now()
	monthStart := utils.FirstDayOfMonth(now)
	previousMonthStart := monthStart.AddDate(0, -1, 0)
	seriesStart := monthStart.AddDate(0, -(revenueSeriesMonths - 1), 0)

	dashboard := &domain.OwnerDashboard{GeneratedAt: now}

	var (
		statuses []*domain.BusinessStatusCount
		series   []*domain.MonthlyRevenue
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		statuses, err = s.repo.CountBusinessesByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.NewBusinessesMonth, err = s.repo.CountNewBusinesses(gctx, monthStart)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.RevenueThisMonth, err = s.repo.PlatformRevenue(gctx, monthStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.RevenuePreviousMonth, err = s.repo.PlatformRevenue(gctx, previousMonthStart, monthStart)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.repo.MonthlyRevenue(gctx, seriesStart)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.Ranking, err = s.ranking.GetRanking(gctx, utils.MonthKey(now))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, status := range statuses {
		dashboard.TotalBusinesses += status.Count
		switch status.Status {
		case domain.BusinessStatusActive:
			dashboard.ActiveBusinesses = status.Count
		case domain.BusinessStatusTrial:
			dashboard.TrialBusinesses = status.Count
		case domain.BusinessStatusSuspended:
			dashboard.SuspendedBusinesses = status.Count
		}
	}

	dashboard.RevenueThisMonth = utils.RoundWithTwoDecimalPlace(dashboard.RevenueThisMonth)
	dashboard.RevenuePreviousMonth = utils.RoundWithTwoDecimalPlace(dashboard.RevenuePreviousMonth)
	dashboard.RevenueGrowth = utils.Growth(dashboard.RevenueThisMonth, dashboard.RevenuePreviousMonth)
	dashboard.MonthlyRevenue = fillMonths(series, seriesStart, revenueSeriesMonths)

	return dashboard, nil
}

// fillMonths completa a série com os meses sem vendas para o gráfico sempre ter o mesmo tamanho
func fillMonths(series []*domain.MonthlyRevenue, start time.Time, months int) []*domain.MonthlyRevenue {
	byMonth := make(map[string]*domain.MonthlyRevenue, len(series))
	for _, item := range series {
		byMonth[item.Month] = item
	}

	filled := make([]*domain.MonthlyRevenue, 0, months)
	for i := 0; i < months; i++ {
		key := utils.MonthKey(start.AddDate(0, i, 0))
		if item, ok := byMonth[key]; ok {
			item.Revenue = utils.RoundWithTwoDecimalPlace(item.Revenue)
			filled = append(filled, item)
			continue
		}
		filled = append(filled, &domain.MonthlyRevenue{Month: key})
	}

	return filled
}

func (s *Service) GetBusinessDashboard(ctx context.Context, businessID string) (*domain.BusinessDashboard, error) {
	if businessID == "" {
		return nil, NewDashboardError(ErrBusinessRequired, apiErrors.ErrMissingRequiredData, "")
	}

	dashboard, err := cache.GetOrSet(ctx, s.cache, cache.BusinessDashboardKey(businessID), s.ttl.Business,
		func(ctx context.Context) (*domain.BusinessDashboard, error) {
			return s.buildBusinessDashboard(ctx, businessID)
		})
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("business_id", businessID).Error("Erro ao montar dashboard do negócio")
		return nil, NewDashboardError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}
	return dashboard, nil
}

func (s *Service) buildBusinessDashboard(ctx context.Context, businessID string) (*domain.BusinessDashboard, error) {
	now := s.now()
	dayStart := utils.StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := utils.FirstDayOfMonth(now)

	dashboard := &domain.BusinessDashboard{BusinessID: businessID, GeneratedAt: now}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		dashboard.TodaySalesCount, dashboard.TodaySalesTotal, err = s.repo.BusinessSales(gctx, businessID, dayStart, dayEnd)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.MonthSalesCount, dashboard.MonthRevenue, err = s.repo.BusinessSales(gctx, businessID, monthStart, dayEnd)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.LowStockProducts, err = s.productRepo.ListLowStock(gctx, businessID, lowStockLimit)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.ActiveTreatmentPlans, err = s.repo.CountActivePlans(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.SessionsScheduledToday, err = s.repo.CountSessionsScheduled(gctx, businessID, dayStart, dayEnd)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.TopProducts, err = s.repo.TopProducts(gctx, businessID, monthStart, topProductsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.SalesByPaymentMethod, err = s.repo.SalesByPaymentMethod(gctx, businessID, monthStart, dayEnd)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard.TodaySalesTotal = utils.RoundWithTwoDecimalPlace(dashboard.TodaySalesTotal)
	dashboard.MonthRevenue = utils.RoundWithTwoDecimalPlace(dashboard.MonthRevenue)
	if dashboard.MonthSalesCount > 0 {
		dashboard.AverageTicket = utils.RoundWithTwoDecimalPlace(dashboard.MonthRevenue / float64(dashboard.MonthSalesCount))
	}

	return dashboard, nil
}

func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}
