package console

// ViewKind enumerates the mutually exclusive views of the console.
type ViewKind int

const (
	ViewUpload ViewKind = iota
	ViewAnalyzing
	ViewResultShown
	ViewWarehouseLoading
	ViewWarehouseList
	ViewWarehouseSearching
	ViewWarehouseDetail
	ViewWarehouseError
)

func (k ViewKind) String() string {
	switch k {
	case ViewUpload:
		return "upload"
	case ViewAnalyzing:
		return "analyzing"
	case ViewResultShown:
		return "result_shown"
	case ViewWarehouseLoading:
		return "warehouse_loading"
	case ViewWarehouseList:
		return "warehouse_list"
	case ViewWarehouseSearching:
		return "warehouse_searching"
	case ViewWarehouseDetail:
		return "warehouse_detail"
	case ViewWarehouseError:
		return "warehouse_error"
	}
	return "unknown"
}

// ViewState is the active view. DetailID is set for ViewWarehouseDetail.
type ViewState struct {
	Kind     ViewKind
	DetailID string
}

func (v ViewState) String() string {
	if v.Kind == ViewWarehouseDetail {
		return v.Kind.String() + ":" + v.DetailID
	}
	return v.Kind.String()
}

// showsPlainList reports whether the list region holds the stored-entry list
// or a placeholder for it. AI results do not count.
func (v ViewState) showsPlainList() bool {
	switch v.Kind {
	case ViewWarehouseLoading, ViewWarehouseList, ViewWarehouseError:
		return true
	}
	return false
}

func (v ViewState) onAnalyzeTab() bool {
	switch v.Kind {
	case ViewUpload, ViewAnalyzing, ViewResultShown:
		return true
	}
	return false
}

type token uint64

// viewTracker records the active view and a generation counter bumped on
// every transition. A completion is applied only while the token it was
// issued with is still current.
type viewTracker struct {
	current ViewState
	gen     token
}

func (t *viewTracker) enter(state ViewState) token {
	t.gen++
	t.current = state
	return t.gen
}

// settle moves to state without invalidating outstanding tokens. It is used
// by completions that land the view they were issued for.
func (t *viewTracker) settle(state ViewState) {
	t.current = state
}

// token returns the generation of the current view without moving it.
func (t *viewTracker) token() token {
	return t.gen
}

func (t *viewTracker) isCurrent(tok token) bool {
	return tok == t.gen
}
