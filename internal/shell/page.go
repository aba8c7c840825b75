package shell

import (
	"alfredoptarigan/cv-warehouse/internal/console"
)

type pageData struct {
	layout   console.Layout
	snapshot console.Snapshot
}

type regionView struct {
	ID string
	console.Region
}

// R looks up the element bound to role together with its current state.
func (p pageData) R(role string) regionView {
	id := p.layout[console.Role(role)]
	return regionView{ID: id, Region: p.snapshot.Regions[id]}
}

func (p pageData) Notices() []string {
	return p.snapshot.Notices
}

func (p pageData) ScrollTarget() string {
	return p.snapshot.ScrollTarget
}

func (p pageData) Busy() bool {
	return p.snapshot.Busy
}
