package console

import (
	"context"
	"fmt"

	"alfredoptarigan/cv-warehouse/internal/client"
	"alfredoptarigan/cv-warehouse/internal/models"
)

const analysisFailedMessage = "Analysis failed. Please try again."

// Outcome is the classified result of one analysis.
type Outcome struct {
	Accepted bool
	Profile  models.Profile
	Reason   string
}

// AnalysisOrchestrator sends the pending file to the analyzer and renders
// the outcome.
type AnalysisOrchestrator struct {
	c        *Console
	analyzer Analyzer

	result *Outcome
	latest uint64
}

// Analyze starts an analysis of the pending file. Without one it does nothing.
func (a *AnalysisOrchestrator) Analyze() {
	a.c.loop.Do(a.analyze)
}

// Result returns the outcome currently on screen, if any.
func (a *AnalysisOrchestrator) Result() (Outcome, bool) {
	var (
		out Outcome
		ok  bool
	)
	a.c.loop.Do(func() {
		if a.result != nil {
			out, ok = *a.result, true
		}
	})
	return out, ok
}

func (a *AnalysisOrchestrator) analyze() {
	c := a.c
	pending := c.Upload.pending
	if pending == nil {
		return
	}
	file := *pending

	c.page.disable(RoleAnalyzeAction)
	c.page.show(RoleLoading)
	a.clearResult()
	tok := c.view.enter(ViewState{Kind: ViewAnalyzing})

	a.latest++
	seq := a.latest

	c.log.Infow("analyzing document", "file", file.Name, "size", file.SizeBytes)
	call(c, func(ctx context.Context) (*models.AnalysisResponse, error) {
		if file.Handle == nil {
			return nil, fmt.Errorf("no content for %s", file.Name)
		}
		content, err := file.Handle.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
		}
		defer content.Close()
		return a.analyzer.Analyze(ctx, file.Name, content)
	}, func(resp *models.AnalysisResponse, err error) {
		defer a.restore(seq)

		if !c.view.isCurrent(tok) {
			c.log.Debugw("discarding stale analysis", "file", file.Name)
			return
		}
		if err == nil && (resp == nil || (resp.IsCV && resp.CVData == nil)) {
			err = client.ErrMalformedPayload
		}
		if err != nil {
			c.log.Errorw("analysis failed", "file", file.Name, "error", err)
			c.view.settle(ViewState{Kind: ViewUpload})
			if detail := client.DetailOf(err); detail != "" {
				c.alert("Analysis failed: " + detail)
			} else {
				c.alert(analysisFailedMessage)
			}
			return
		}
		a.show(outcomeOf(resp))
		c.view.settle(ViewState{Kind: ViewResultShown})
	})
}

// restore is the clause that runs after every analysis completion. Only the
// most recent request touches the controls.
func (a *AnalysisOrchestrator) restore(seq uint64) {
	if seq != a.latest {
		return
	}
	c := a.c
	c.page.hide(RoleLoading)
	if c.Upload.pending != nil {
		c.page.enable(RoleAnalyzeAction)
	}
}

func outcomeOf(resp *models.AnalysisResponse) Outcome {
	if !resp.IsCV {
		return Outcome{Reason: resp.Reason()}
	}
	return Outcome{Accepted: true, Profile: *resp.CVData}
}

func (a *AnalysisOrchestrator) show(out Outcome) {
	c := a.c
	a.result = &out

	if out.Accepted {
		html, err := c.renderer.Profile(out.Profile)
		if err != nil {
			c.log.Errorw("failed to render profile", "error", err)
		}
		c.page.setHTML(RoleProfile, html)
		c.page.show(RoleProfile)
		c.page.setHTML(RoleRejection, "")
		c.page.hide(RoleRejection)
	} else {
		html, err := c.renderer.Rejection(out.Reason)
		if err != nil {
			c.log.Errorw("failed to render rejection", "error", err)
		}
		c.page.setHTML(RoleRejection, html)
		c.page.show(RoleRejection)
		c.page.setHTML(RoleProfile, "")
		c.page.hide(RoleProfile)
	}
	c.page.show(RoleResult)
	c.page.scrollTo(RoleResult)
}

func (a *AnalysisOrchestrator) clearResult() {
	c := a.c
	a.result = nil
	c.page.hide(RoleResult)
	c.page.setHTML(RoleProfile, "")
	c.page.hide(RoleProfile)
	c.page.setHTML(RoleRejection, "")
	c.page.hide(RoleRejection)
}

func (a *AnalysisOrchestrator) hasResult() bool {
	return a.result != nil
}
