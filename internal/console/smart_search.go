package console

import (
	"context"
	"strings"

	"alfredoptarigan/cv-warehouse/internal/models"
	"alfredoptarigan/cv-warehouse/internal/views"
)

const thinkingLabel = "Thinking..."

// SmartSearchController runs AI-ranked searches into the warehouse list.
type SmartSearchController struct {
	c      *Console
	ranker Ranker
	latest uint64
}

// Run ranks the warehouse against query. A blank query does nothing.
func (s *SmartSearchController) Run(query string) {
	s.c.loop.Do(func() { s.run(query) })
}

func (s *SmartSearchController) run(query string) {
	c := s.c
	c.page.setValue(RoleSmartInput, query)
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	c.Warehouse.stopTimer()
	c.page.disable(RoleSmartAction)
	c.page.setLabel(RoleSmartAction, thinkingLabel)
	c.page.setHTML(RoleList, c.renderer.Placeholder(views.PlaceholderThinking))
	tok := c.view.enter(ViewState{Kind: ViewWarehouseSearching})

	s.latest++
	seq := s.latest

	c.log.Infow("running smart search", "query", query)
	call(c, func(ctx context.Context) ([]models.MatchResult, error) {
		return s.ranker.SmartSearch(ctx, query)
	}, func(matches []models.MatchResult, err error) {
		defer s.restore(seq)

		if !c.view.isCurrent(tok) {
			c.log.Debugw("discarding stale smart search", "query", query)
			return
		}
		if err != nil {
			c.log.Errorw("smart search failed", "query", query, "error", err)
			c.page.setHTML(RoleList, c.renderer.Placeholder(views.PlaceholderSmartError))
			return
		}
		html, err := c.renderer.Matches(matches)
		if err != nil {
			c.log.Errorw("failed to render matches", "error", err)
			html = c.renderer.Placeholder(views.PlaceholderSmartError)
		}
		c.page.setHTML(RoleList, html)
	})
}

func (s *SmartSearchController) restore(seq uint64) {
	if seq != s.latest {
		return
	}
	s.c.page.enable(RoleSmartAction)
	s.c.page.setLabel(RoleSmartAction, smartSearchLabel)
}
