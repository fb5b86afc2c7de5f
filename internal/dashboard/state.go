// Package dashboard holds the per-session view state machine and the
// service that derives funnel metrics and history for rendering.
package dashboard

import (
	"github.com/funnelboard/funnelboard/internal/funnel"
	"github.com/funnelboard/funnelboard/internal/shared"
)

// Tab selects which dashboard view is active.
type Tab string

const (
	TabOverview Tab = "overview"
	TabDetails  Tab = "details"
)

// ParseTab normalizes a wire value to a known tab, falling back to the
// overview.
func ParseTab(value string) Tab {
	if Tab(value) == TabDetails {
		return TabDetails
	}
	return TabOverview
}

// Session keys for the persisted view state.
const (
	sessionKeyEmployee = "dash_employee"
	sessionKeyKPI      = "dash_kpi"
	sessionKeyTab      = "dash_tab"
)

// ViewState is the per-session dashboard state. Transitions return a new
// value; Save writes every field in one request so the session commit
// exposes combined transitions atomically.
type ViewState struct {
	Employee string     `json:"employee"`
	KPI      funnel.KPI `json:"kpi"`
	Tab      Tab        `json:"tab"`
}

// DefaultState is the initial view state for a fresh session.
func DefaultState() ViewState {
	return ViewState{
		Employee: funnel.EmployeeAll,
		KPI:      funnel.KPIImpressions,
		Tab:      TabOverview,
	}
}

// StateFromSession reads the view state, normalizing missing or invalid
// stored values to the defaults. A nil session yields the default state.
func StateFromSession(sess *shared.Session) ViewState {
	if sess == nil {
		return DefaultState()
	}
	return ViewState{
		Employee: funnel.ParseEmployee(sess.Get(sessionKeyEmployee)),
		KPI:      funnel.ParseKPI(sess.Get(sessionKeyKPI)),
		Tab:      ParseTab(sess.Get(sessionKeyTab)),
	}
}

// Save persists the full state into the session value map.
func (st ViewState) Save(sess *shared.Session) {
	if sess == nil {
		return
	}
	sess.Set(sessionKeyEmployee, st.Employee)
	sess.Set(sessionKeyKPI, string(st.KPI))
	sess.Set(sessionKeyTab, string(st.Tab))
}

// SelectEmployee sets the employee filter, leaving tab and KPI untouched.
// Unknown employees normalize to the aggregate.
func (st ViewState) SelectEmployee(employee string) ViewState {
	st.Employee = funnel.ParseEmployee(employee)
	return st
}

// SelectTab switches the active tab directly.
func (st ViewState) SelectTab(tab string) ViewState {
	st.Tab = ParseTab(tab)
	return st
}

// ClickKPI selects a KPI card: it sets the KPI and forces the details tab
// in one transition. Callers persist the result with a single Save so both
// changes are observed together.
func (st ViewState) ClickKPI(kpi string) ViewState {
	st.KPI = funnel.ParseKPI(kpi)
	st.Tab = TabDetails
	return st
}
