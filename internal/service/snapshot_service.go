package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
	"github.com/ndewijer/Trade-Journal-Backend/internal/repository"
)

// snapshotTimeout bounds one scheduled snapshot run.
const snapshotTimeout = 30 * time.Second

// SnapshotService persists the dashboard statistics, on demand and on a cron schedule.
type SnapshotService struct {
	snapshotRepo     *repository.SnapshotRepository
	dashboardService *DashboardService
	scheduler        *cron.Cron
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(snapshotRepo *repository.SnapshotRepository, dashboardService *DashboardService) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:     snapshotRepo,
		dashboardService: dashboardService,
	}
}

// TakeSnapshot stores the current statistics using the saved starting capital.
func (s *SnapshotService) TakeSnapshot(ctx context.Context) (*model.StatsSnapshot, error) {
	stats, err := s.dashboardService.Stats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	snapshot := &model.StatsSnapshot{
		ID:               uuid.New().String(),
		TakenAt:          time.Now().UTC(),
		StartingCapital:  stats.StartingCapital,
		TotalRealizedPnl: stats.TotalRealizedPnl,
		CurrentBalance:   stats.CurrentBalance,
		WinRate:          stats.WinRate,
		TradingDays:      stats.TradingDays,
		EventCount:       stats.EventCount,
	}

	if err := s.snapshotRepo.InsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshots returns up to limit snapshots, most recent first.
func (s *SnapshotService) ListSnapshots(ctx context.Context, limit int) ([]model.StatsSnapshot, error) {
	return s.snapshotRepo.ListSnapshots(ctx, limit)
}

// StartSchedule runs TakeSnapshot on the given cron spec. An empty spec disables scheduling.
func (s *SnapshotService) StartSchedule(spec string) error {
	if spec == "" {
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		snapshot, err := s.TakeSnapshot(ctx)
		if err != nil {
			log.Printf("snapshot: scheduled run failed: %v", err)
			return
		}
		log.Printf("snapshot: stored %s (balance %.2f, win rate %.2f%%)", snapshot.ID, snapshot.CurrentBalance, snapshot.WinRate)
	})
	if err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}

	s.scheduler = scheduler
	s.scheduler.Start()
	log.Printf("snapshot: scheduled with %q", spec)
	return nil
}

// StopSchedule stops the scheduler and waits for a running snapshot to finish.
func (s *SnapshotService) StopSchedule() {
	if s.scheduler == nil {
		return
	}
	<-s.scheduler.Stop().Done()
	s.scheduler = nil
}
