package dashboard

import (
	"testing"

	"github.com/funnelboard/funnelboard/internal/funnel"
	"github.com/funnelboard/funnelboard/internal/shared"
)

func TestDefaultState(t *testing.T) {
	st := DefaultState()
	if st.Employee != funnel.EmployeeAll || st.KPI != funnel.KPIImpressions || st.Tab != TabOverview {
		t.Fatalf("unexpected default state %+v", st)
	}
}

func TestStateFromSessionNormalizes(t *testing.T) {
	sess := &shared.Session{}
	sess.Set("dash_employee", "Hacker")
	sess.Set("dash_kpi", "nope")
	sess.Set("dash_tab", "sideways")

	st := StateFromSession(sess)
	if st != DefaultState() {
		t.Fatalf("invalid stored values should normalize to defaults, got %+v", st)
	}

	if got := StateFromSession(nil); got != DefaultState() {
		t.Fatalf("nil session should yield defaults, got %+v", got)
	}
}

func TestSelectEmployeeKeepsOtherFields(t *testing.T) {
	st := DefaultState().ClickKPI("ctr").SelectEmployee("Mateo")
	if st.Employee != "Mateo" {
		t.Fatalf("expected Mateo, got %s", st.Employee)
	}
	if st.KPI != funnel.KPICTR || st.Tab != TabDetails {
		t.Fatalf("selecting an employee must not touch KPI or tab: %+v", st)
	}

	st = st.SelectEmployee("Stranger")
	if st.Employee != funnel.EmployeeAll {
		t.Fatalf("unknown employee should normalize to All, got %s", st.Employee)
	}
}

func TestClickKPICombinedTransition(t *testing.T) {
	st := DefaultState().SelectEmployee("Mateo").ClickKPI("ctr")
	if st.Employee != "Mateo" || st.KPI != funnel.KPICTR || st.Tab != TabDetails {
		t.Fatalf("expected {Mateo ctr details}, got %+v", st)
	}

	st = DefaultState().ClickKPI("garbage")
	if st.KPI != funnel.KPIImpressions || st.Tab != TabDetails {
		t.Fatalf("unknown KPI should normalize but still open details: %+v", st)
	}
}

func TestSelectTab(t *testing.T) {
	st := DefaultState().SelectTab("details")
	if st.Tab != TabDetails {
		t.Fatalf("expected details, got %s", st.Tab)
	}
	if st = st.SelectTab("bogus"); st.Tab != TabOverview {
		t.Fatalf("unknown tab should normalize to overview, got %s", st.Tab)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	sess := &shared.Session{}
	want := DefaultState().SelectEmployee("Valentina").ClickKPI("sql_to_won")
	want.Save(sess)

	if got := StateFromSession(sess); got != want {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, want)
	}
}
