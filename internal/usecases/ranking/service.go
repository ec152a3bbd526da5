package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type RankingService interface {
	GetRanking(ctx context.Context, month string) ([]*domain.BusinessRankingItem, error)
	UpdateRanking(ctx context.Context, reference time.Time) ([]*domain.BusinessRankingItem, error)
}

type BusinessRankingService struct {
	rankingRepo repository.BusinessRankingRepository
	cache       cache.Cache
	now         func() time.Time
}

func NewBusinessRankingService(rankingRepo repository.BusinessRankingRepository, cacheStore cache.Cache) RankingService {
	return &BusinessRankingService{
		rankingRepo: rankingRepo,
		cache:       cacheStore,
		now:         time.Now,
	}
}

// GetRanking retorna o ranking gravado do mês (mm-yyyy); mês vazio usa o mês corrente
func (s *BusinessRankingService) GetRanking(ctx context.Context, month string) ([]*domain.BusinessRankingItem, error) {
	if month == "" {
		month = utils.MonthKey(s.now())
	}

	ranking, err := s.rankingRepo.GetRanking(ctx, month)
	if err != nil {
		return nil, err
	}
	return ranking, nil
}

// UpdateRanking recalcula o ranking do mês de ontem (em relação à referência) a partir das vendas
// concluídas e compara as posições com o ranking já gravado do mesmo mês
func (s *BusinessRankingService) UpdateRanking(ctx context.Context, reference time.Time) ([]*domain.BusinessRankingItem, error) {
	yesterday := reference.AddDate(0, 0, -1)
	from := utils.FirstDayOfMonth(yesterday)
	to := utils.StartOfDay(reference)
	month := utils.MonthKey(yesterday)

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"month": month,
		"from":  from.Format(time.DateOnly),
		"to":    to.Format(time.DateOnly),
	})

	revenues, err := s.rankingRepo.RevenueByBusiness(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar receita dos negócios: %w", err)
	}

	previous, err := s.rankingRepo.GetRanking(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar ranking anterior: %w", err)
	}

	rankingsBeforeUpdate := make(map[string]*domain.BusinessRankingItem, len(previous))
	for _, item := range previous {
		rankingsBeforeUpdate[item.BusinessID] = item
	}

	updatedRankings := make([]*domain.BusinessRankingItem, 0, len(revenues))
	for _, revenue := range revenues {
		updatedRankings = append(updatedRankings, &domain.BusinessRankingItem{
			BusinessID:   revenue.BusinessID,
			BusinessName: revenue.BusinessName,
			Month:        month,
			Revenue:      utils.RoundWithTwoDecimalPlace(revenue.Revenue),
			SalesCount:   revenue.SalesCount,
		})
	}

	updatePositions(updatedRankings, rankingsBeforeUpdate)

	if err := s.rankingRepo.SaveOrUpdateRanking(ctx, updatedRankings); err != nil {
		return nil, fmt.Errorf("erro ao salvar ranking: %w", err)
	}

	if err := s.cache.Delete(ctx, cache.OwnerDashboardKey); err != nil {
		logger.WithError(err).Warn("Erro ao invalidar cache do dashboard do owner")
	}

	logger.WithField("businesses", len(updatedRankings)).Info("Ranking de negócios atualizado")

	return updatedRankings, nil
}

// updatePositions ordena por receita e calcula a variação de posição em relação ao ranking anterior.
// Empates são desfeitos pelo nome para manter a ordem estável entre execuções.
func updatePositions(
	updatedRankings []*domain.BusinessRankingItem,
	rankingsBeforeUpdate map[string]*domain.BusinessRankingItem,
) {
	sort.SliceStable(updatedRankings, func(i, j int) bool {
		if updatedRankings[i].Revenue == updatedRankings[j].Revenue {
			return updatedRankings[i].BusinessName < updatedRankings[j].BusinessName
		}
		return updatedRankings[i].Revenue > updatedRankings[j].Revenue
	})

	for i, ranking := range updatedRankings {
		ranking.Position = i + 1

		rankingBefore, exists := rankingsBeforeUpdate[ranking.BusinessID]
		if exists {
			ranking.PositionChange = rankingBefore.Position - ranking.Position
			ranking.PreviousPosition = rankingBefore.Position
		}
	}
}
