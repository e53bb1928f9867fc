package ranking

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
)

type RankingService interface {
	GetZoneRanking(zoneNumber int) (*domain.ZoneRankingResponse, error)
}

type ZoneRankingService struct {
	zoneRepo    repository.ZoneRepository
	rankingRepo repository.ZoneRankingRepository
}

func NewZoneRankingService(zoneRepo repository.ZoneRepository, rankingRepo repository.ZoneRankingRepository) RankingService {
	return &ZoneRankingService{
		zoneRepo:    zoneRepo,
		rankingRepo: rankingRepo,
	}
}

// GetZoneRanking devolve o último snapshot gravado pelo agendador.
// Zona existente sem snapshot responde com ranking vazio.
func (s *ZoneRankingService) GetZoneRanking(zoneNumber int) (*domain.ZoneRankingResponse, error) {
	zone, err := s.zoneRepo.GetZone(zoneNumber)
	if err != nil {
		return nil, domain.NewLedgerError(errors.Wrap(err, "buscar zona"), apiErrors.ErrDatabaseOperation, "Falha ao consultar a zona")
	}
	if zone == nil {
		return nil, domain.NewLedgerError(domain.ErrZoneNotFound, apiErrors.ErrNotFound, fmt.Sprintf("zona %d", zoneNumber))
	}

	ranking, err := s.rankingRepo.GetZoneRanking(zoneNumber)
	if err != nil {
		return nil, domain.NewLedgerError(errors.Wrap(err, "buscar ranking"), apiErrors.ErrDatabaseOperation, "Falha ao consultar o ranking da zona")
	}

	return ranking, nil
}
