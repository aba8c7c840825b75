package console

import (
	"fmt"
)

// Role names one element of the hosting surface the console drives.
type Role string

const (
	RoleUploadZone     Role = "upload_zone"
	RoleFilePreview    Role = "file_preview"
	RoleAnalyzeAction  Role = "analyze_action"
	RoleLoading        Role = "loading"
	RoleResult         Role = "result"
	RoleRejection      Role = "rejection"
	RoleProfile        Role = "profile"
	RoleAnalyzeTab     Role = "analyze_tab"
	RoleWarehouseTab   Role = "warehouse_tab"
	RoleAnalyzePanel   Role = "analyze_panel"
	RoleWarehousePanel Role = "warehouse_panel"
	RoleSearchInput    Role = "search_input"
	RoleRefreshAction  Role = "refresh_action"
	RoleList           Role = "list"
	RoleSmartInput     Role = "smart_input"
	RoleSmartAction    Role = "smart_action"
)

// Roles lists every role a Layout must bind.
var Roles = []Role{
	RoleUploadZone,
	RoleFilePreview,
	RoleAnalyzeAction,
	RoleLoading,
	RoleResult,
	RoleRejection,
	RoleProfile,
	RoleAnalyzeTab,
	RoleWarehouseTab,
	RoleAnalyzePanel,
	RoleWarehousePanel,
	RoleSearchInput,
	RoleRefreshAction,
	RoleList,
	RoleSmartInput,
	RoleSmartAction,
}

// Layout maps each role to the element id the host uses for it.
type Layout map[Role]string

// Validate checks that every role is bound to exactly one non-empty id and
// that no id is shared between roles.
func (l Layout) Validate() error {
	seen := make(map[string]Role, len(l))
	for _, role := range Roles {
		id, ok := l[role]
		if !ok || id == "" {
			return fmt.Errorf("layout: no element bound to role %q", role)
		}
		if other, dup := seen[id]; dup {
			return fmt.Errorf("layout: element %q bound to both %q and %q", id, other, role)
		}
		seen[id] = role
	}
	for role := range l {
		if !knownRole(role) {
			return fmt.Errorf("layout: unknown role %q", role)
		}
	}
	return nil
}

// DefaultLayout is the element naming used by the bundled console page.
func DefaultLayout() Layout {
	return Layout{
		RoleUploadZone:     "uploadArea",
		RoleFilePreview:    "fileInfo",
		RoleAnalyzeAction:  "analyzeBtn",
		RoleLoading:        "loading",
		RoleResult:         "resultSection",
		RoleRejection:      "rejectionMessage",
		RoleProfile:        "cvData",
		RoleAnalyzeTab:     "analyzeTabBtn",
		RoleWarehouseTab:   "warehouseTabBtn",
		RoleAnalyzePanel:   "analyzeTab",
		RoleWarehousePanel: "warehouseTab",
		RoleSearchInput:    "searchInput",
		RoleRefreshAction:  "refreshBtn",
		RoleList:           "cvList",
		RoleSmartInput:     "smartSearchInput",
		RoleSmartAction:    "smartSearchBtn",
	}
}

func knownRole(role Role) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
