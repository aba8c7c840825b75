package console

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"alfredoptarigan/cv-warehouse/internal/models"
)

type fakeAnalyzer struct {
	mu       sync.Mutex
	gate     chan struct{}
	resp     *models.AnalysisResponse
	err      error
	received []string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, filename string, content io.Reader) (*models.AnalysisResponse, error) {
	body, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.received = append(f.received, filename+":"+string(body))
	gate, resp, ferr := f.gate, f.resp, f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return resp, ferr
}

func (f *fakeAnalyzer) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.received...)
}

type fakeWarehouse struct {
	mu       sync.Mutex
	entries  []models.WarehouseEntry
	listErr  error
	queries  []string
	details  map[string]models.WarehouseEntry
	gates    map[string]chan struct{}
	deleted  []string
	delErr   error
	delGate  chan struct{}
	getCalls []string
}

func newFakeWarehouse() *fakeWarehouse {
	return &fakeWarehouse{
		details: map[string]models.WarehouseEntry{},
		gates:   map[string]chan struct{}{},
	}
}

func (f *fakeWarehouse) ListEntries(ctx context.Context, query string) ([]models.WarehouseEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.WarehouseEntry(nil), f.entries...), nil
}

func (f *fakeWarehouse) GetEntry(ctx context.Context, id string) (*models.WarehouseEntry, error) {
	f.mu.Lock()
	f.getCalls = append(f.getCalls, id)
	gate := f.gates[id]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.details[id]
	if !ok {
		return nil, &testNotFound{id: id}
	}
	return &entry, nil
}

func (f *fakeWarehouse) DeleteEntry(ctx context.Context, id string) error {
	f.mu.Lock()
	gate := f.delGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeWarehouse) listQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func (f *fakeWarehouse) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type testNotFound struct{ id string }

func (e *testNotFound) Error() string { return "cv " + e.id + " not found" }

type fakeRanker struct {
	mu      sync.Mutex
	matches []models.MatchResult
	err     error
	gate    chan struct{}
	queries []string
}

func (f *fakeRanker) SmartSearch(ctx context.Context, query string) ([]models.MatchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	gate, matches, err := f.gate, f.matches, f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return matches, err
}

type fakeDialogs struct {
	mu       sync.Mutex
	approve  bool
	prompts  []string
	messages []string
}

func (f *fakeDialogs) Confirm(message string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, message)
	return f.approve
}

func (f *fakeDialogs) Alert(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *fakeDialogs) alerts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

type harness struct {
	console   *Console
	analyzer  *fakeAnalyzer
	warehouse *fakeWarehouse
	ranker    *fakeRanker
	dialogs   *fakeDialogs
	clock     *testingclock.FakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		analyzer:  &fakeAnalyzer{},
		warehouse: newFakeWarehouse(),
		ranker:    &fakeRanker{},
		dialogs:   &fakeDialogs{approve: true},
		clock:     testingclock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	c, err := New(Options{
		Analyzer:  h.analyzer,
		Warehouse: h.warehouse,
		Ranker:    h.ranker,
		Dialogs:   h.dialogs,
		Clock:     h.clock,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	h.console = c
	return h
}

// region returns the snapshot state of role under the default layout.
func region(s Snapshot, role Role) Region {
	return s.Regions[DefaultLayout()[role]]
}

func pendingFile(name, content string) PendingFile {
	return PendingFile{
		Name:      name,
		SizeBytes: int64(len(content)),
		Handle:    BytesFile(content),
	}
}

func entry(id, first, last string) models.WarehouseEntry {
	return models.WarehouseEntry{
		ID:       id,
		Filename: id + ".pdf",
		Profile: models.Profile{
			FirstName: first,
			LastName:  last,
			Summary:   "Engineer " + id,
		},
	}
}
