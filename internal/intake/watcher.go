package intake

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"os"
	"time"

	"github.com/KumarShresth7/EmailAutomation/internal/errorlog"
	"github.com/KumarShresth7/EmailAutomation/internal/intake/source"
	"github.com/KumarShresth7/EmailAutomation/internal/order/domain"
	"github.com/KumarShresth7/EmailAutomation/pkg/ai"
)

// OrderProcessor reconciles a classified event against the order store.
type OrderProcessor interface {
	ProcessNewOrder(ctx context.Context, email, date, timeOfDay, text string) (domain.Outcome, error)
	ProcessOrderChange(ctx context.Context, email, date, timeOfDay, text string) (domain.Outcome, error)
}

// ComplaintSink receives complaint emails unchanged.
type ComplaintSink interface {
	ProcessComplaint(ctx context.Context, email, body, date, timeOfDay string) error
}

// Watcher polls the tabular source, detects new rows and drives each
// event through classification and reconciliation. It is the sole owner
// of the polling snapshot and the sole driver of the pipeline, so no
// two reconciliation passes ever run concurrently.
type Watcher struct {
	reader     source.Reader
	detector   *Detector
	classifier ai.Service
	orders     OrderProcessor
	complaints ComplaintSink
	errors     errorlog.Recorder

	interval    time.Duration
	stagingPath string
	aiTimeout   time.Duration
	maxRestarts int
}

// NewWatcher creates a watcher over the given source.
func NewWatcher(
	reader source.Reader,
	classifier ai.Service,
	orders OrderProcessor,
	complaints ComplaintSink,
	errors errorlog.Recorder,
	interval time.Duration,
	stagingPath string,
	aiTimeout time.Duration,
) *Watcher {
	return &Watcher{
		reader:      reader,
		detector:    NewDetector(),
		classifier:  classifier,
		orders:      orders,
		complaints:  complaints,
		errors:      errors,
		interval:    interval,
		stagingPath: stagingPath,
		aiTimeout:   aiTimeout,
		maxRestarts: 10,
	}
}

// Run polls until the context is cancelled. A panicking cycle is
// restarted with bounded backoff; after maxRestarts consecutive crashes
// the watcher gives up and returns.
func (w *Watcher) Run(ctx context.Context) error {
	log.Printf("[Watcher] Started (interval: %s)", w.interval)

	restarts := 0
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run immediately on start
	w.safeCycle(ctx, &restarts)

	for {
		select {
		case <-ctx.Done():
			log.Println("[Watcher] Stopped")
			return ctx.Err()
		case <-ticker.C:
			if !w.safeCycle(ctx, &restarts) {
				return fmt.Errorf("watcher gave up after %d consecutive crashes", restarts)
			}
		}
	}
}

// safeCycle runs one cycle with panic recovery. Returns false once the
// restart limit is exhausted.
func (w *Watcher) safeCycle(ctx context.Context, restarts *int) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			*restarts++
			backoff := time.Duration(1<<uint(*restarts)) * time.Second
			if backoff > 30*time.Second {
				backoff = 30 * time.Second
			}
			log.Printf("[Watcher] Cycle crashed (restart %d/%d): %v, backing off %s", *restarts, w.maxRestarts, r, backoff)
			w.errors.Record(errorlog.Entry{
				Message:  fmt.Sprintf("watcher cycle crashed: %v", r),
				Source:   errorlog.SourceSystem,
				Severity: "Critical",
			})
			ok = *restarts <= w.maxRestarts
			select {
			case <-ctx.Done():
			case <-time.After(backoff):
			}
			return
		}
		*restarts = 0
		ok = true
	}()

	w.runCycle(ctx)
	return true
}

// runCycle reads the source, detects new rows, stages them and
// dispatches each in synthetic timestamp order.
func (w *Watcher) runCycle(ctx context.Context) {
	rows, err := w.reader.Read()
	if err != nil {
		// Source temporarily unreadable: skip this cycle, keep the
		// previous snapshot
		log.Printf("[Watcher] Source unreadable, skipping cycle: %v", err)
		return
	}
	if len(rows) == 0 {
		return
	}

	events := w.detector.Diff(rows)
	if len(events) == 0 {
		return
	}
	log.Printf("[Watcher] Detected %d new rows", len(events))

	if err := WriteBatch(w.stagingPath, events); err != nil {
		log.Printf("[Watcher] Failed to stage batch: %v", err)
	}
	defer RemoveBatch(w.stagingPath)

	for _, event := range events {
		if ctx.Err() != nil {
			return
		}
		w.handleEvent(ctx, event)
	}
}

// handleEvent processes one detected row. Failures are contained here:
// a bad row or a failed external call never terminates the loop.
func (w *Watcher) handleEvent(ctx context.Context, event Event) {
	if _, err := mail.ParseAddress(event.Email); err != nil {
		log.Printf("[Watcher] Skipping row with invalid sender %q: %v", event.Email, err)
		return
	}

	text := event.Body
	if event.AttachmentPath != "" {
		if data, err := os.ReadFile(event.AttachmentPath); err == nil {
			text = text + "\n\nAttachment:\n" + string(data)
		} else {
			log.Printf("[Watcher] Attachment %q unreadable: %v", event.AttachmentPath, err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, w.aiTimeout)
	category, err := w.classifier.Classify(callCtx, text)
	cancel()
	if err != nil {
		// Never guess a category: halt this event only, no retry
		// within the cycle
		log.Printf("[Watcher] Failed to classify email from %s: %v", event.Email, err)
		return
	}

	switch category {
	case ai.CategoryOrderConfirmation:
		outcome, err := w.orders.ProcessNewOrder(ctx, event.Email, event.Date, event.Time, text)
		if err != nil {
			log.Printf("[Watcher] Order processing failed for %s: %v", event.Email, err)
		} else {
			log.Printf("[Watcher] Order from %s resolved as %s", event.Email, outcome)
		}
	case ai.CategoryOrderChange:
		outcome, err := w.orders.ProcessOrderChange(ctx, event.Email, event.Date, event.Time, text)
		if err != nil {
			log.Printf("[Watcher] Order change failed for %s: %v", event.Email, err)
		} else {
			log.Printf("[Watcher] Order change from %s resolved as %s", event.Email, outcome)
		}
	case ai.CategoryComplaint:
		if err := w.complaints.ProcessComplaint(ctx, event.Email, event.Body, event.Date, event.Time); err != nil {
			log.Printf("[Watcher] Complaint handling failed for %s: %v", event.Email, err)
		}
	default:
		log.Printf("[Watcher] Ignoring email from %s classified as %q", event.Email, category)
	}
}
