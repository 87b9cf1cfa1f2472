package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Trade-Journal-Backend/internal/extraction"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// Image is one uploaded screenshot.
type Image struct {
	Filename string
	MIMEType string
	Data     []byte
}

// UploadResult reports what happened to one image of a batch.
// Exactly one of Event and Error is set.
type UploadResult struct {
	Filename string             `json:"filename"`
	Event    *model.LedgerEvent `json:"event,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// UploadService turns uploaded screenshots into ledger events.
type UploadService struct {
	extractor     extraction.Client
	ledgerService *LedgerService
	concurrency   int
}

// NewUploadService creates a new UploadService. concurrency bounds the number of
// extractions in flight for one batch.
func NewUploadService(extractor extraction.Client, ledgerService *LedgerService, concurrency int) *UploadService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &UploadService{
		extractor:     extractor,
		ledgerService: ledgerService,
		concurrency:   concurrency,
	}
}

// ProcessImages extracts, normalizes and stores every image independently.
// A failure on one image is recorded in its result and does not stop the others.
// Results are in input order.
func (s *UploadService) ProcessImages(ctx context.Context, images []Image) []UploadResult {
	results := make([]UploadResult, len(images))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, img := range images {
		g.Go(func() error {
			results[i] = s.processImage(ctx, img)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return results
}

func (s *UploadService) processImage(ctx context.Context, img Image) (result UploadResult) {
	result = UploadResult{Filename: img.Filename}

	// A panic in a worker goroutine would take the whole process down.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("upload: panic while processing %q: %v", img.Filename, r)
			result.Event = nil
			result.Error = fmt.Sprintf("failed to process image: %v", r)
		}
	}()

	raw, err := s.extractor.Extract(ctx, img.Data, img.MIMEType)
	if err != nil {
		log.Printf("upload: extraction failed for %q: %v", img.Filename, err)
		result.Error = err.Error()
		return result
	}

	event, err := s.ledgerService.CreateFromRaw(ctx, raw)
	if err != nil {
		log.Printf("upload: could not store record from %q: %v", img.Filename, err)
		result.Error = err.Error()
		return result
	}

	result.Event = event
	return result
}
