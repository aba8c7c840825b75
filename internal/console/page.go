package console

import (
	"html/template"
)

// Region is the observable state of one element of the surface.
type Region struct {
	Hidden   bool          `json:"hidden"`
	Disabled bool          `json:"disabled"`
	Active   bool          `json:"active"`
	Label    string        `json:"label,omitempty"`
	Value    string        `json:"value,omitempty"`
	HTML     template.HTML `json:"html,omitempty"`
}

// Snapshot is a copy of the surface keyed by element id.
type Snapshot struct {
	View         string            `json:"view"`
	Regions      map[string]Region `json:"regions"`
	Notices      []string          `json:"notices,omitempty"`
	Prompt       string            `json:"prompt,omitempty"`
	ScrollTarget string            `json:"scroll_target,omitempty"`
	// Busy is set while a collaborator call or a debounced search is
	// outstanding. Hosts keep reading the surface until it clears.
	Busy bool `json:"busy"`
}

// Page holds the surface state. It is only touched from the loop goroutine.
type Page struct {
	layout       Layout
	regions      map[Role]*Region
	notices      []string
	prompt       string
	scrollTarget Role
}

const smartSearchLabel = "Smart Search"

func newPage(layout Layout) *Page {
	p := &Page{
		layout:  layout,
		regions: make(map[Role]*Region, len(Roles)),
	}
	for _, role := range Roles {
		p.regions[role] = &Region{}
	}

	p.regions[RoleFilePreview].Hidden = true
	p.regions[RoleAnalyzeAction].Disabled = true
	p.regions[RoleLoading].Hidden = true
	p.regions[RoleResult].Hidden = true
	p.regions[RoleRejection].Hidden = true
	p.regions[RoleProfile].Hidden = true
	p.regions[RoleAnalyzeTab].Active = true
	p.regions[RoleAnalyzePanel].Active = true
	p.regions[RoleWarehousePanel].Hidden = true
	p.regions[RoleSmartAction].Label = smartSearchLabel
	return p
}

func (p *Page) show(role Role)     { p.regions[role].Hidden = false }
func (p *Page) hide(role Role)     { p.regions[role].Hidden = true }
func (p *Page) enable(role Role)   { p.regions[role].Disabled = false }
func (p *Page) disable(role Role)  { p.regions[role].Disabled = true }
func (p *Page) activate(role Role) { p.regions[role].Active = true }

func (p *Page) deactivate(role Role) { p.regions[role].Active = false }

func (p *Page) setHTML(role Role, html template.HTML) {
	p.regions[role].HTML = html
}

func (p *Page) setLabel(role Role, label string) {
	p.regions[role].Label = label
}

func (p *Page) setValue(role Role, value string) {
	p.regions[role].Value = value
}

func (p *Page) value(role Role) string {
	return p.regions[role].Value
}

func (p *Page) notify(message string) {
	p.notices = append(p.notices, message)
}

func (p *Page) scrollTo(role Role) {
	p.scrollTarget = role
}

// snapshot copies the surface. Notices and the scroll target are consumed
// by the read so each is delivered to the host once.
func (p *Page) snapshot(view ViewState) Snapshot {
	s := Snapshot{
		View:    view.String(),
		Regions: make(map[string]Region, len(p.regions)),
		Notices: p.notices,
		Prompt:  p.prompt,
	}
	for role, r := range p.regions {
		s.Regions[p.layout[role]] = *r
	}
	if p.scrollTarget != "" {
		s.ScrollTarget = p.layout[p.scrollTarget]
	}
	p.notices = nil
	p.prompt = ""
	p.scrollTarget = ""
	return s
}
