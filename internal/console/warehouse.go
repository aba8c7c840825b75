package console

import (
	"context"
	"html/template"
	"time"

	"k8s.io/utils/clock"

	"alfredoptarigan/cv-warehouse/internal/client"
	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/views"
)

// WarehouseController drives the warehouse list, search and detail views.
type WarehouseController struct {
	c         *Console
	warehouse Warehouse
	clock     clock.WithDelayedExecution
	debounce  time.Duration

	timer    clock.Timer
	timerSeq uint64
}

func (w *WarehouseController) Refresh() {
	w.c.loop.Do(w.refresh)
}

// SearchInput records a keystroke in the search field and schedules a list
// load once the field has been quiet for the debounce period.
func (w *WarehouseController) SearchInput(text string) {
	w.c.loop.Do(func() { w.searchInput(text) })
}

func (w *WarehouseController) LoadList(query string) {
	w.c.loop.Do(func() { w.loadList(query) })
}

func (w *WarehouseController) ViewDetail(id string) {
	w.c.loop.Do(func() { w.viewDetail(id) })
}

// DeleteEntry asks for confirmation naming displayName and deletes the entry
// when the user agrees.
func (w *WarehouseController) DeleteEntry(id, displayName string) {
	w.c.loop.Do(func() { w.deleteEntry(id, displayName) })
}

// Back leaves the detail view, reloading with the text now in the search field.
func (w *WarehouseController) Back() {
	w.c.loop.Do(w.back)
}

// SearchText is the current content of the search field.
func (w *WarehouseController) SearchText() string {
	var text string
	w.c.loop.Do(func() { text = w.c.page.value(RoleSearchInput) })
	return text
}

func (w *WarehouseController) activate() {
	w.loadList(w.c.page.value(RoleSearchInput))
}

// refresh loads immediately with the current text, dropping any scheduled load.
func (w *WarehouseController) refresh() {
	w.loadList(w.c.page.value(RoleSearchInput))
}

func (w *WarehouseController) back() {
	w.loadList(w.c.page.value(RoleSearchInput))
}

func (w *WarehouseController) searchInput(text string) {
	w.c.page.setValue(RoleSearchInput, text)
	w.stopTimer()

	w.timerSeq++
	seq := w.timerSeq
	w.timer = w.clock.AfterFunc(w.debounce, func() {
		w.c.loop.Post(func() {
			if seq != w.timerSeq {
				return
			}
			w.loadList(w.c.page.value(RoleSearchInput))
		})
	})
}

// stopTimer cancels the scheduled search load, if any. A callback already
// on its way to the loop is dropped by the sequence check.
func (w *WarehouseController) stopTimer() {
	w.timerSeq++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *WarehouseController) searchPending() bool {
	return w.timer != nil
}

func (w *WarehouseController) loadList(query string) {
	c := w.c
	w.stopTimer()
	c.page.setHTML(RoleList, c.renderer.Placeholder(views.PlaceholderLoading))
	tok := c.view.enter(ViewState{Kind: ViewWarehouseLoading})

	call(c, func(ctx context.Context) ([]models.WarehouseEntry, error) {
		return w.warehouse.ListEntries(ctx, query)
	}, func(entries []models.WarehouseEntry, err error) {
		if !c.view.isCurrent(tok) {
			c.log.Debugw("discarding stale list", "query", query)
			return
		}
		if err != nil {
			c.log.Errorw("failed to load warehouse", "query", query, "error", err)
			c.page.setHTML(RoleList, c.renderer.Placeholder(views.PlaceholderError))
			c.view.settle(ViewState{Kind: ViewWarehouseError})
			return
		}
		html, err := c.renderer.List(entries)
		if err != nil {
			c.log.Errorw("failed to render warehouse", "error", err)
			html = c.renderer.Placeholder(views.PlaceholderError)
		}
		c.page.setHTML(RoleList, html)
		c.view.settle(ViewState{Kind: ViewWarehouseList})
	})
}

func (w *WarehouseController) viewDetail(id string) {
	c := w.c
	w.stopTimer()
	c.page.setHTML(RoleList, c.renderer.Placeholder(views.PlaceholderDetailLoading))
	tok := c.view.enter(ViewState{Kind: ViewWarehouseDetail, DetailID: id})

	call(c, func(ctx context.Context) (*models.WarehouseEntry, error) {
		return w.warehouse.GetEntry(ctx, id)
	}, func(entry *models.WarehouseEntry, err error) {
		if !c.view.isCurrent(tok) {
			c.log.Debugw("discarding stale detail", "id", id)
			return
		}
		if err == nil && entry == nil {
			err = client.ErrMalformedPayload
		}
		var html template.HTML
		if err == nil {
			html, err = c.renderer.Detail(*entry)
		}
		if err != nil {
			c.log.Errorw("failed to load cv details", "id", id, "error", err)
			c.alert("Failed to load CV details")
			w.loadList("")
			return
		}
		c.page.setHTML(RoleList, html)
	})
}

func (w *WarehouseController) deleteEntry(id, displayName string) {
	c := w.c
	if !c.confirm("Are you sure you want to delete " + displayName + "?") {
		return
	}

	c.log.Infow("deleting cv", "id", id)
	tok := c.view.token()
	call(c, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, w.warehouse.DeleteEntry(ctx, id)
	}, func(_ struct{}, err error) {
		if err != nil {
			c.log.Errorw("failed to delete cv", "id", id, "error", err)
			c.alert("Failed to delete CV")
			return
		}
		// Reload only the list the delete was issued from. Any later
		// transition owns the region now.
		if c.view.isCurrent(tok) && c.view.current.showsPlainList() {
			w.loadList(c.page.value(RoleSearchInput))
			return
		}
		c.log.Debugw("cv deleted after the view changed, reload skipped", "id", id, "view", c.view.current)
	})
}
