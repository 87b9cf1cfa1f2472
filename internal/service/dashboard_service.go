package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ndewijer/Trade-Journal-Backend/internal/ledger"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// DashboardService holds the latest event snapshot and serves every aggregate view from it.
//
// It owns its subscription explicitly: Start loads the snapshot and subscribes to the
// ledger, Stop unsubscribes. A failed store read never clears the snapshot; views keep
// being computed from the last good one.
type DashboardService struct {
	ledgerService   *LedgerService
	settingsService *SettingsService

	mu      sync.RWMutex
	events  []model.LedgerEvent
	started bool
	cancel  func()
}

// NewDashboardService creates a new DashboardService with the provided service dependencies.
func NewDashboardService(ledgerService *LedgerService, settingsService *SettingsService) *DashboardService {
	return &DashboardService{
		ledgerService:   ledgerService,
		settingsService: settingsService,
	}
}

// Start subscribes to the ledger. The initial snapshot is loaded before Start returns.
func (s *DashboardService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("dashboard already started")
	}
	s.started = true
	s.mu.Unlock()

	cancel, err := s.ledgerService.Subscribe(ctx, s.replace)
	if err != nil {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	return nil
}

// Stop ends the subscription. The last snapshot stays readable.
func (s *DashboardService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.started = false
}

func (s *DashboardService) replace(events []model.LedgerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
}

// Events returns the current snapshot. Callers must not modify it.
func (s *DashboardService) Events() []model.LedgerEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

// startingCapital returns override when given, else the saved or configured starting capital.
func (s *DashboardService) startingCapital(ctx context.Context, override *float64) (float64, error) {
	if override != nil {
		return *override, nil
	}
	return s.settingsService.StartingCapital(ctx)
}

// Stats returns the aggregate statistics for the current snapshot.
func (s *DashboardService) Stats(ctx context.Context, startingCapital *float64) (model.Stats, error) {
	capital, err := s.startingCapital(ctx, startingCapital)
	if err != nil {
		return model.Stats{}, err
	}
	return roundStats(ledger.Summarize(s.Events(), capital)), nil
}

// History returns every event annotated with the running balance, most recent first.
func (s *DashboardService) History(ctx context.Context, startingCapital *float64) ([]model.HistoryEntry, error) {
	capital, err := s.startingCapital(ctx, startingCapital)
	if err != nil {
		return nil, err
	}
	return roundHistory(ledger.History(s.Events(), capital)), nil
}

// Calendar returns the resolved P/L per date, optionally limited to one YYYY-MM month.
func (s *DashboardService) Calendar(month string) []model.DailyResolution {
	return roundCalendar(ledger.Calendar(s.Events(), month))
}

// Projection replays the journal's daily percentages from amount.
func (s *DashboardService) Projection(amount float64) model.Projection {
	return roundProjection(ledger.Project(s.Events(), amount))
}

// Dashboard recomputes every view in one pass.
func (s *DashboardService) Dashboard(ctx context.Context, startingCapital *float64, projectionAmount float64, month string) (model.Dashboard, error) {
	capital, err := s.startingCapital(ctx, startingCapital)
	if err != nil {
		return model.Dashboard{}, err
	}

	d := ledger.Recompute(s.Events(), ledger.Params{
		StartingCapital:  capital,
		ProjectionAmount: projectionAmount,
		Month:            month,
	})
	d.Stats = roundStats(d.Stats)
	d.History = roundHistory(d.History)
	d.Calendar = roundCalendar(d.Calendar)
	d.Projection = roundProjection(d.Projection)
	return d, nil
}
