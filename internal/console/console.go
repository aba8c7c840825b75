package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/views"
)

const (
	DefaultDebounce = 500 * time.Millisecond
)

// Analyzer classifies an uploaded document and extracts its profile.
type Analyzer interface {
	Analyze(ctx context.Context, filename string, content io.Reader) (*models.AnalysisResponse, error)
}

// Warehouse lists, fetches and deletes stored profiles.
type Warehouse interface {
	ListEntries(ctx context.Context, query string) ([]models.WarehouseEntry, error)
	GetEntry(ctx context.Context, id string) (*models.WarehouseEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// Ranker runs the AI-assisted search over the warehouse.
type Ranker interface {
	SmartSearch(ctx context.Context, query string) ([]models.MatchResult, error)
}

// Dialogs are the blocking prompts offered by the host. Both are invoked on
// the loop goroutine.
type Dialogs interface {
	Confirm(message string) bool
	Alert(message string)
}

type Tab string

const (
	TabAnalyze   Tab = "analyze"
	TabWarehouse Tab = "warehouse"
)

type Options struct {
	Layout    Layout
	Analyzer  Analyzer
	Warehouse Warehouse
	Ranker    Ranker
	Dialogs   Dialogs
	Clock     clock.WithDelayedExecution
	// Debounce is the quiet period after the last search keystroke.
	Debounce time.Duration
	// RequestTimeout bounds each collaborator call. Zero leaves it to the
	// collaborator.
	RequestTimeout time.Duration
	Logger         *zap.SugaredLogger
}

// Console is the view/state controller behind one hosting surface.
type Console struct {
	Upload    *UploadController
	Analysis  *AnalysisOrchestrator
	Warehouse *WarehouseController
	Smart     *SmartSearchController

	loop     *Loop
	page     *Page
	view     *viewTracker
	renderer *views.Renderer
	dialogs  Dialogs
	log      *zap.SugaredLogger
	timeout  time.Duration
}

func New(opts Options) (*Console, error) {
	if opts.Layout == nil {
		opts.Layout = DefaultLayout()
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}
	if opts.Analyzer == nil || opts.Warehouse == nil || opts.Ranker == nil {
		return nil, fmt.Errorf("console: analyzer, warehouse and ranker are required")
	}
	if opts.Dialogs == nil {
		opts.Dialogs = declineAll{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = zap.S().Named("console")
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}

	c := &Console{
		loop:     NewLoop(0),
		page:     newPage(opts.Layout),
		view:     &viewTracker{},
		renderer: renderer,
		dialogs:  opts.Dialogs,
		log:      opts.Logger,
		timeout:  opts.RequestTimeout,
	}
	c.Upload = &UploadController{c: c}
	c.Analysis = &AnalysisOrchestrator{c: c, analyzer: opts.Analyzer}
	c.Warehouse = &WarehouseController{
		c:         c,
		warehouse: opts.Warehouse,
		clock:     opts.Clock,
		debounce:  opts.Debounce,
	}
	c.Smart = &SmartSearchController{c: c, ranker: opts.Ranker}

	c.loop.Start(context.Background())
	return c, nil
}

// Close stops the pending search timer and the event loop.
func (c *Console) Close() {
	c.loop.Do(c.Warehouse.stopTimer)
	c.loop.Stop()
}

// Snapshot returns the current surface and drains queued notices, the
// prompt and the scroll target.
func (c *Console) Snapshot() Snapshot {
	var s Snapshot
	c.loop.Do(func() {
		s = c.page.snapshot(c.view.current)
		s.Busy = !c.loop.Idle() || c.Warehouse.searchPending()
	})
	return s
}

// View returns the active view state.
func (c *Console) View() ViewState {
	var v ViewState
	c.loop.Do(func() {
		v = c.view.current
	})
	return v
}

// Settle waits until every outstanding collaborator call has completed and
// its result has been applied.
func (c *Console) Settle() {
	c.loop.Settle()
}

func (c *Console) ActivateTab(tab Tab) {
	c.loop.Do(func() { c.activateTab(tab) })
}

func (c *Console) activateTab(tab Tab) {
	switch tab {
	case TabAnalyze:
		c.page.activate(RoleAnalyzeTab)
		c.page.activate(RoleAnalyzePanel)
		c.page.show(RoleAnalyzePanel)
		c.page.deactivate(RoleWarehouseTab)
		c.page.deactivate(RoleWarehousePanel)
		c.page.hide(RoleWarehousePanel)
		if c.view.current.onAnalyzeTab() {
			return
		}
		if c.Analysis.hasResult() {
			c.view.enter(ViewState{Kind: ViewResultShown})
		} else {
			c.view.enter(ViewState{Kind: ViewUpload})
		}
	case TabWarehouse:
		c.page.activate(RoleWarehouseTab)
		c.page.activate(RoleWarehousePanel)
		c.page.show(RoleWarehousePanel)
		c.page.deactivate(RoleAnalyzeTab)
		c.page.deactivate(RoleAnalyzePanel)
		c.page.hide(RoleAnalyzePanel)
		c.Warehouse.activate()
	default:
		c.log.Warnw("unknown tab", "tab", tab)
	}
}

func (c *Console) alert(message string) {
	c.page.notify(message)
	c.dialogs.Alert(message)
}

func (c *Console) confirm(message string) bool {
	c.page.prompt = message
	return c.dialogs.Confirm(message)
}

// call runs fn off the loop with the configured timeout and applies done on
// the loop.
func call[T any](c *Console, fn func(ctx context.Context) (T, error), done func(T, error)) {
	Go(c.loop, func(ctx context.Context) (T, error) {
		if c.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		return fn(ctx)
	}, done)
}

// declineAll is used when the host offers no dialogs: nothing destructive is
// confirmed and alerts only reach the surface notices.
type declineAll struct{}

func (declineAll) Confirm(string) bool { return false }
func (declineAll) Alert(string)        {}
