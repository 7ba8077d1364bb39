package intake

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/KumarShresth7/EmailAutomation/internal/errorlog"
	"github.com/KumarShresth7/EmailAutomation/internal/intake/source"
	"github.com/KumarShresth7/EmailAutomation/internal/order/domain"
	"github.com/KumarShresth7/EmailAutomation/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	rows []source.Row
	err  error
}

func (r *fakeReader) Read() ([]source.Row, error) {
	return r.rows, r.err
}

// stubClassifier classifies by body content and fails for bodies in
// the broken set. The remaining calls are never reached by the watcher.
type stubClassifier struct {
	categories map[string]ai.Category
	broken     map[string]bool
	calls      int
}

func (s *stubClassifier) Classify(_ context.Context, body string) (ai.Category, error) {
	s.calls++
	if s.broken[body] {
		return "", errors.New("classifier unavailable")
	}
	if c, ok := s.categories[body]; ok {
		return c, nil
	}
	return ai.CategoryOther, nil
}

func (s *stubClassifier) ExtractOrder(context.Context, string) (*ai.ExtractedOrder, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClassifier) ValidateOrder(context.Context, []ai.Line) (*ai.Validation, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClassifier) CorrectProductNames(context.Context, []ai.Line, []string) ([]ai.Line, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClassifier) MergeOrders(context.Context, []ai.MergedLine, []ai.Line) ([]ai.MergedLine, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClassifier) Generate(context.Context, string) (string, error) {
	return "", errors.New("not implemented")
}

type processorCall struct {
	email string
	text  string
}

type recordingProcessor struct {
	mu        sync.Mutex
	newOrders []processorCall
	changes   []processorCall
}

func (p *recordingProcessor) ProcessNewOrder(_ context.Context, email, _, _, text string) (domain.Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.newOrders = append(p.newOrders, processorCall{email: email, text: text})
	return domain.OutcomeNewOrder, nil
}

func (p *recordingProcessor) ProcessOrderChange(_ context.Context, email, _, _, text string) (domain.Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, processorCall{email: email, text: text})
	return domain.OutcomeModified, nil
}

type recordingSink struct {
	complaints []processorCall
}

func (s *recordingSink) ProcessComplaint(_ context.Context, email, body, _, _ string) error {
	s.complaints = append(s.complaints, processorCall{email: email, text: body})
	return nil
}

func newTestWatcher(t *testing.T, reader source.Reader, classifier ai.Service, orders OrderProcessor, complaints ComplaintSink) *Watcher {
	t.Helper()
	staging := filepath.Join(t.TempDir(), "changes.json")
	return NewWatcher(reader, classifier, orders, complaints, errorlog.Nop{}, time.Minute, staging, time.Second)
}

func TestWatcherDispatchesByCategory(t *testing.T) {
	reader := &fakeReader{rows: []source.Row{
		{source.ColEmail: "a@example.com", source.ColBody: "I want 5 widgets"},
		{source.ColEmail: "b@example.com", source.ColBody: "change my order to 3"},
		{source.ColEmail: "c@example.com", source.ColBody: "my delivery was late"},
		{source.ColEmail: "d@example.com", source.ColBody: "hello there"},
	}}
	classifier := &stubClassifier{categories: map[string]ai.Category{
		"I want 5 widgets":     ai.CategoryOrderConfirmation,
		"change my order to 3": ai.CategoryOrderChange,
		"my delivery was late": ai.CategoryComplaint,
		"hello there":          ai.CategoryOther,
	}}
	processor := &recordingProcessor{}
	sink := &recordingSink{}

	w := newTestWatcher(t, reader, classifier, processor, sink)
	w.runCycle(context.Background())

	require.Len(t, processor.newOrders, 1)
	assert.Equal(t, "a@example.com", processor.newOrders[0].email)
	require.Len(t, processor.changes, 1)
	assert.Equal(t, "b@example.com", processor.changes[0].email)
	require.Len(t, sink.complaints, 1)
	assert.Equal(t, "c@example.com", sink.complaints[0].email)
}

func TestWatcherSkipsInvalidSender(t *testing.T) {
	reader := &fakeReader{rows: []source.Row{
		{source.ColEmail: "not an address", source.ColBody: "I want 5 widgets"},
	}}
	classifier := &stubClassifier{}
	processor := &recordingProcessor{}

	w := newTestWatcher(t, reader, classifier, processor, &recordingSink{})
	w.runCycle(context.Background())

	assert.Zero(t, classifier.calls)
	assert.Empty(t, processor.newOrders)
}

func TestWatcherHaltsEventOnClassifierFailure(t *testing.T) {
	reader := &fakeReader{rows: []source.Row{
		{source.ColEmail: "a@example.com", source.ColBody: "unclassifiable"},
	}}
	classifier := &stubClassifier{broken: map[string]bool{"unclassifiable": true}}
	processor := &recordingProcessor{}
	sink := &recordingSink{}

	w := newTestWatcher(t, reader, classifier, processor, sink)
	w.runCycle(context.Background())

	assert.Empty(t, processor.newOrders)
	assert.Empty(t, processor.changes)
	assert.Empty(t, sink.complaints)
}

func TestWatcherSkipsCycleWhenSourceUnreadable(t *testing.T) {
	reader := &fakeReader{err: errors.New("file locked")}
	classifier := &stubClassifier{}

	w := newTestWatcher(t, reader, classifier, &recordingProcessor{}, &recordingSink{})
	w.runCycle(context.Background())

	assert.Zero(t, classifier.calls)
}

func TestWatcherRemovesStagingFileAfterCycle(t *testing.T) {
	reader := &fakeReader{rows: []source.Row{
		{source.ColEmail: "a@example.com", source.ColBody: "I want 5 widgets"},
	}}
	classifier := &stubClassifier{categories: map[string]ai.Category{
		"I want 5 widgets": ai.CategoryOrderConfirmation,
	}}

	w := newTestWatcher(t, reader, classifier, &recordingProcessor{}, &recordingSink{})
	w.runCycle(context.Background())

	_, err := os.Stat(w.stagingPath)
	assert.True(t, os.IsNotExist(err))
}

func TestWatcherAppendsAttachmentText(t *testing.T) {
	attachment := filepath.Join(t.TempDir(), "order.txt")
	require.NoError(t, os.WriteFile(attachment, []byte("10 gadgets please"), 0o644))

	reader := &fakeReader{rows: []source.Row{
		{
			source.ColEmail:      "a@example.com",
			source.ColBody:       "see attached",
			source.ColAttachment: attachment,
		},
	}}
	classifier := &stubClassifier{categories: map[string]ai.Category{
		"see attached\n\nAttachment:\n10 gadgets please": ai.CategoryOrderConfirmation,
	}}
	processor := &recordingProcessor{}

	w := newTestWatcher(t, reader, classifier, processor, &recordingSink{})
	w.runCycle(context.Background())

	require.Len(t, processor.newOrders, 1)
	assert.Contains(t, processor.newOrders[0].text, "10 gadgets please")
}
