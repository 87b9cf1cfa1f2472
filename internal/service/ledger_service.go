package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
	"github.com/ndewijer/Trade-Journal-Backend/internal/normalize"
	"github.com/ndewijer/Trade-Journal-Backend/internal/repository"
)

// SnapshotFunc receives the full, date-ordered event list after every change.
type SnapshotFunc func(events []model.LedgerEvent)

// LedgerService is the handle on the event store. Besides insert, list and delete it
// lets callers subscribe to full snapshots of the event list, delivered after every
// successful mutation.
type LedgerService struct {
	eventRepo *repository.EventRepository
	now       func() time.Time

	// pubMu serializes snapshot reads with their delivery so subscribers never
	// receive an older list after a newer one.
	pubMu sync.Mutex

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]SnapshotFunc
}

// NewLedgerService creates a new LedgerService with the provided repository dependencies.
func NewLedgerService(eventRepo *repository.EventRepository) *LedgerService {
	return &LedgerService{
		eventRepo:   eventRepo,
		now:         time.Now,
		subscribers: make(map[int]SnapshotFunc),
	}
}

// ListEvents returns every event ascending by date, then insertion.
func (s *LedgerService) ListEvents(ctx context.Context) ([]model.LedgerEvent, error) {
	return s.eventRepo.ListEventsOrderedByDate(ctx)
}

// GetEvent returns a single event by id.
func (s *LedgerService) GetEvent(ctx context.Context, id string) (model.LedgerEvent, error) {
	return s.eventRepo.GetEvent(ctx, id)
}

// CreateEvent normalizes a manual entry and stores it.
func (s *LedgerService) CreateEvent(ctx context.Context, req request.CreateEventRequest) (*model.LedgerEvent, error) {
	raw := model.RawRecord{
		ImageType:        req.Type,
		Date:             req.Date,
		Ticker:           req.Ticker,
		CostAtOpen:       req.CostAtOpen,
		CreditAtClose:    req.CreditAtClose,
		ChangeValue:      req.ChangeValue,
		ChangePercentage: req.ChangePercentage,
		EndOfDayBalance:  req.EndOfDayBalance,
	}
	return s.CreateFromRaw(ctx, raw)
}

// CreateFromRaw normalizes a raw record, assigns it an id and stores it.
func (s *LedgerService) CreateFromRaw(ctx context.Context, raw model.RawRecord) (*model.LedgerEvent, error) {
	now := s.now()

	event, err := normalize.Normalize(raw, now)
	if err != nil {
		return nil, err
	}
	event.ID = uuid.New().String()
	event.CreatedAt = now.UTC()

	if err := s.eventRepo.InsertEvent(ctx, &event); err != nil {
		return nil, fmt.Errorf("failed to create ledger event: %w", err)
	}

	s.publish(ctx)
	return &event, nil
}

// DeleteEvent removes an event by id.
func (s *LedgerService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.publish(ctx)
	return nil
}

// Subscribe delivers the current event list to fn, then registers fn for a fresh
// snapshot after every change. The returned cancel function unregisters it.
// fn is called synchronously; it must not call back into the LedgerService.
func (s *LedgerService) Subscribe(ctx context.Context, fn SnapshotFunc) (cancel func(), err error) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	events, err := s.eventRepo.ListEventsOrderedByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial snapshot: %w", err)
	}
	fn(events)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}, nil
}

// publishTimeout bounds the snapshot re-read after a mutation.
const publishTimeout = 10 * time.Second

// publish re-reads the whole event list and hands it to every subscriber.
// When the read fails nothing is delivered, so subscribers keep their last good snapshot.
// The mutation has already committed, so the read outlives a cancelled request.
func (s *LedgerService) publish(ctx context.Context) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	if len(s.subscribers) == 0 {
		s.mu.Unlock()
		return
	}
	subs := make([]SnapshotFunc, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	events, err := s.eventRepo.ListEventsOrderedByDate(readCtx)
	if err != nil {
		log.Printf("ledger: failed to load snapshot for subscribers: %v", err)
		return
	}

	for _, fn := range subs {
		fn(events)
	}
}
