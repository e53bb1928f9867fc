// Package scheduler contém os serviços agendados que materializam dados derivados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/aggregating"
	"golang.org/x/sync/errgroup"
)

type ZoneRankingSyncConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// ZoneRankingSyncService recalcula o ranking de produtos de cada zona e grava o snapshot
type ZoneRankingSyncService struct {
	scheduler           *gocron.Scheduler
	zoneRepo            repository.ZoneRepository
	rankingRepo         repository.ZoneRankingRepository
	aggregator          aggregating.Aggregator
	config              ZoneRankingSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	lastZonesSynced     int
}

func NewZoneRankingSyncService(
	zoneRepo repository.ZoneRepository,
	rankingRepo repository.ZoneRankingRepository,
	aggregator aggregating.Aggregator,
	cfg *config.Config,
) *ZoneRankingSyncService {
	syncConfig := ZoneRankingSyncConfig{
		CronSchedule:      cfg.ZoneRankingSync.CronSchedule,
		MaxConcurrentJobs: cfg.ZoneRankingSync.MaxConcurrentJobs,
		SyncEnabled:       cfg.ZoneRankingSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs < 1 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
	}).Info("Configuração do agendador do ranking por zona carregada")

	return &ZoneRankingSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		zoneRepo:    zoneRepo,
		rankingRepo: rankingRepo,
		aggregator:  aggregator,
		config:      syncConfig,
	}
}

func (s *ZoneRankingSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron do ranking por zona desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do ranking por zona")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Sync(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização do ranking por zona")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do ranking por zona: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do ranking por zona")
		s.scheduler.Stop()
	}()

	return nil
}

// Sync reconstrói o snapshot de todas as zonas. Execuções sobrepostas são ignoradas.
// Uma zona com falha não impede as demais; os erros voltam agregados.
func (s *ZoneRankingSyncService) Sync(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Atualização do ranking por zona já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	synced, err := s.syncAllZones(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastZonesSynced = synced
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	return err
}

func (s *ZoneRankingSyncService) syncAllZones(ctx context.Context) (int, error) {
	logrus.Info("Iniciando atualização do ranking por zona")

	zones, err := s.zoneRepo.ListZones()
	if err != nil {
		return 0, fmt.Errorf("erro ao listar zonas: %w", err)
	}

	if len(zones) == 0 {
		logrus.Info("Nenhuma zona cadastrada para atualização do ranking")
		return 0, nil
	}

	var (
		mu     sync.Mutex
		errs   *multierror.Error
		synced int
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.config.MaxConcurrentJobs)

	for _, zone := range zones {
		zone := zone
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			if err := s.syncZone(groupCtx, zone.Number); err != nil {
				logrus.WithFields(logrus.Fields{
					"zone_number": zone.Number,
					"error":       err,
				}).Error("Erro ao atualizar ranking da zona")

				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("zona %d: %w", zone.Number, err))
				mu.Unlock()
				return nil
			}

			mu.Lock()
			synced++
			mu.Unlock()
			return nil
		})
	}

	// só o cancelamento do contexto interrompe o grupo
	if err := group.Wait(); err != nil {
		return synced, err
	}

	logrus.WithFields(logrus.Fields{
		"zones":  len(zones),
		"synced": synced,
	}).Info("Atualização do ranking por zona concluída")

	return synced, errs.ErrorOrNil()
}

func (s *ZoneRankingSyncService) syncZone(ctx context.Context, zoneNumber int) error {
	totals, err := s.aggregator.ProductTotalsForZone(zoneNumber)
	if err != nil {
		return err
	}

	return s.rankingRepo.ReplaceZoneRanking(ctx, zoneNumber, buildRanking(zoneNumber, totals))
}

// buildRanking numera as posições a partir de 1 mantendo a ordem dos totais
func buildRanking(zoneNumber int, totals []domain.ProductTotal) []*domain.ZoneRankingEntry {
	entries := make([]*domain.ZoneRankingEntry, 0, len(totals))
	for i, total := range totals {
		entries = append(entries, &domain.ZoneRankingEntry{
			ZoneNumber:  zoneNumber,
			ProductID:   total.ProductID,
			ProductName: total.ProductName,
			Quantity:    total.Quantity,
			Position:    i + 1,
		})
	}
	return entries
}

func (s *ZoneRankingSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do ranking por zona já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do ranking por zona")
	go func() {
		if err := s.Sync(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do ranking por zona")
		}
	}()
}

// GetStatus retorna o status atual da sincronização
func (s *ZoneRankingSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
		"last_zones_synced":      s.lastZonesSynced,
	}
}
