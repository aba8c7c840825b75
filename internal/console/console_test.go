package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-warehouse/internal/client"
	"alfredoptarigan/cv-warehouse/internal/models"
)

func TestLayoutValidate(t *testing.T) {
	require.NoError(t, DefaultLayout().Validate())

	missing := DefaultLayout()
	delete(missing, RoleList)
	assert.ErrorContains(t, missing.Validate(), "list")

	empty := DefaultLayout()
	empty[RoleLoading] = ""
	assert.Error(t, empty.Validate())

	dup := DefaultLayout()
	dup[RoleSmartAction] = dup[RoleRefreshAction]
	assert.ErrorContains(t, dup.Validate(), "bound to both")

	unknown := DefaultLayout()
	unknown[Role("sidebar")] = "sidebar"
	assert.ErrorContains(t, unknown.Validate(), "unknown role")
}

func TestNewRejectsInvalidLayout(t *testing.T) {
	layout := DefaultLayout()
	layout[RoleProfile] = layout[RoleResult]

	_, err := New(Options{
		Layout:    layout,
		Analyzer:  &fakeAnalyzer{},
		Warehouse: newFakeWarehouse(),
		Ranker:    &fakeRanker{},
	})
	assert.Error(t, err)
}

func TestInitialSurface(t *testing.T) {
	h := newHarness(t)
	s := h.console.Snapshot()

	assert.Equal(t, "upload", s.View)
	assert.True(t, region(s, RoleFilePreview).Hidden)
	assert.True(t, region(s, RoleAnalyzeAction).Disabled)
	assert.True(t, region(s, RoleLoading).Hidden)
	assert.True(t, region(s, RoleResult).Hidden)
	assert.True(t, region(s, RoleAnalyzeTab).Active)
	assert.True(t, region(s, RoleWarehousePanel).Hidden)
	assert.Equal(t, "Smart Search", region(s, RoleSmartAction).Label)
	assert.Len(t, s.Regions, len(Roles))
}

func TestSelectFileReplacesPending(t *testing.T) {
	h := newHarness(t)

	h.console.Upload.SelectFile(pendingFile("a.pdf", "aaaa"))
	h.console.Upload.SelectFile(pendingFile("b.pdf", "bb"))

	pending, ok := h.console.Upload.Pending()
	require.True(t, ok)
	assert.Equal(t, "b.pdf", pending.Name)

	s := h.console.Snapshot()
	preview := region(s, RoleFilePreview)
	assert.False(t, preview.Hidden)
	assert.Contains(t, string(preview.HTML), "b.pdf")
	assert.Contains(t, string(preview.HTML), "2.00 Bytes")
	assert.NotContains(t, string(preview.HTML), "a.pdf")
	assert.False(t, region(s, RoleAnalyzeAction).Disabled)

	h.console.Analysis.Analyze()
	h.console.Settle()
	assert.Equal(t, []string{"b.pdf:bb"}, h.analyzer.calls())
}

func TestClearFileIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.console.Upload.SelectFile(pendingFile("a.pdf", "aaaa"))

	h.console.Upload.ClearFile()
	h.console.Upload.ClearFile()

	_, ok := h.console.Upload.Pending()
	assert.False(t, ok)

	s := h.console.Snapshot()
	assert.True(t, region(s, RoleFilePreview).Hidden)
	assert.Empty(t, region(s, RoleFilePreview).HTML)
	assert.True(t, region(s, RoleAnalyzeAction).Disabled)
	assert.Equal(t, "upload", s.View)
}

func TestAnalyzeWithoutFileDoesNothing(t *testing.T) {
	h := newHarness(t)

	h.console.Analysis.Analyze()
	h.console.Settle()

	assert.Empty(t, h.analyzer.calls())
	s := h.console.Snapshot()
	assert.True(t, region(s, RoleLoading).Hidden)
	assert.Equal(t, "upload", s.View)
}

func TestAnalyzeAccepted(t *testing.T) {
	h := newHarness(t)
	h.analyzer.resp = &models.AnalysisResponse{
		Filename: "ada.pdf",
		IsCV:     true,
		CVData: &models.Profile{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Skills:    []string{"Go"},
		},
	}
	h.console.Upload.SelectFile(pendingFile("ada.pdf", "%PDF"))

	h.console.Analysis.Analyze()
	h.console.Settle()

	s := h.console.Snapshot()
	assert.Equal(t, "result_shown", s.View)
	assert.False(t, region(s, RoleResult).Hidden)
	assert.False(t, region(s, RoleProfile).Hidden)
	assert.True(t, region(s, RoleRejection).Hidden)
	assert.Contains(t, string(region(s, RoleProfile).HTML), "Ada Lovelace")
	assert.Equal(t, DefaultLayout()[RoleResult], s.ScrollTarget)
	assert.True(t, region(s, RoleLoading).Hidden)
	assert.False(t, region(s, RoleAnalyzeAction).Disabled)

	out, ok := h.console.Analysis.Result()
	require.True(t, ok)
	assert.True(t, out.Accepted)

	// the scroll request is delivered once
	assert.Empty(t, h.console.Snapshot().ScrollTarget)
}

func TestAnalyzeRejectedWithoutReasonUsesDefault(t *testing.T) {
	h := newHarness(t)
	h.analyzer.resp = &models.AnalysisResponse{Filename: "cat.png", IsCV: false}
	h.console.Upload.SelectFile(pendingFile("cat.png", "png"))

	h.console.Analysis.Analyze()
	h.console.Settle()

	s := h.console.Snapshot()
	assert.False(t, region(s, RoleResult).Hidden)
	assert.False(t, region(s, RoleRejection).Hidden)
	assert.True(t, region(s, RoleProfile).Hidden)
	assert.Contains(t, string(region(s, RoleRejection).HTML), models.DefaultRejectionReason)
}

func TestAnalyzeFailure(t *testing.T) {
	tests := []struct {
		name  string
		resp  *models.AnalysisResponse
		err   error
		alert string
	}{
		{
			name:  "collaborator detail",
			err:   &client.APIError{StatusCode: 500, Detail: "model unavailable"},
			alert: "Analysis failed: model unavailable",
		},
		{
			name:  "status without detail",
			err:   &client.APIError{StatusCode: 502},
			alert: "Analysis failed. Please try again.",
		},
		{
			name:  "transport error",
			err:   errors.New("connection refused"),
			alert: "Analysis failed. Please try again.",
		},
		{
			name:  "accepted without profile",
			resp:  &models.AnalysisResponse{IsCV: true},
			alert: "Analysis failed. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.analyzer.resp, h.analyzer.err = tt.resp, tt.err
			h.console.Upload.SelectFile(pendingFile("cv.pdf", "%PDF"))

			h.console.Analysis.Analyze()
			h.console.Settle()

			assert.Equal(t, []string{tt.alert}, h.dialogs.alerts())

			s := h.console.Snapshot()
			assert.Equal(t, []string{tt.alert}, s.Notices)
			assert.True(t, region(s, RoleLoading).Hidden)
			assert.False(t, region(s, RoleAnalyzeAction).Disabled)
			assert.True(t, region(s, RoleResult).Hidden)

			pending, ok := h.console.Upload.Pending()
			require.True(t, ok)
			assert.Equal(t, "cv.pdf", pending.Name)
		})
	}
}

func TestAnalysisDiscardedAfterLeavingView(t *testing.T) {
	h := newHarness(t)
	gate := make(chan struct{})
	h.analyzer.gate = gate
	h.analyzer.resp = &models.AnalysisResponse{IsCV: true, CVData: &models.Profile{FirstName: "Ada"}}
	h.console.Upload.SelectFile(pendingFile("cv.pdf", "%PDF"))

	h.console.Analysis.Analyze()
	s := h.console.Snapshot()
	assert.Equal(t, "analyzing", s.View)
	assert.False(t, region(s, RoleLoading).Hidden)
	assert.True(t, region(s, RoleAnalyzeAction).Disabled)

	h.console.ActivateTab(TabWarehouse)
	close(gate)
	h.console.Settle()

	s = h.console.Snapshot()
	assert.Equal(t, "warehouse_list", s.View)
	assert.True(t, region(s, RoleResult).Hidden)
	assert.Empty(t, region(s, RoleProfile).HTML)
	assert.True(t, region(s, RoleLoading).Hidden)
	assert.False(t, region(s, RoleAnalyzeAction).Disabled)

	_, ok := h.console.Analysis.Result()
	assert.False(t, ok)
}

func TestActivateAnalyzeTab(t *testing.T) {
	h := newHarness(t)
	h.analyzer.resp = &models.AnalysisResponse{IsCV: false}
	h.console.Upload.SelectFile(pendingFile("cv.pdf", "%PDF"))
	h.console.Analysis.Analyze()
	h.console.Settle()

	h.console.ActivateTab(TabWarehouse)
	h.console.Settle()
	s := h.console.Snapshot()
	assert.True(t, region(s, RoleAnalyzePanel).Hidden)
	assert.False(t, region(s, RoleWarehousePanel).Hidden)
	assert.True(t, region(s, RoleWarehouseTab).Active)

	h.console.ActivateTab(TabAnalyze)
	s = h.console.Snapshot()
	assert.Equal(t, "result_shown", s.View)
	assert.False(t, region(s, RoleAnalyzePanel).Hidden)
	assert.True(t, region(s, RoleAnalyzeTab).Active)
	assert.False(t, region(s, RoleWarehouseTab).Active)

	h.console.Upload.ClearFile()
	h.console.ActivateTab(TabWarehouse)
	h.console.ActivateTab(TabAnalyze)
	assert.Equal(t, ViewState{Kind: ViewUpload}, h.console.View())
}
