package funnel

// KPI identifies one of the six dashboard KPIs: the raw impression count or
// one of the five stage-to-stage conversion rates. The set is closed; unknown
// wire values normalize to KPIImpressions rather than failing a render.
type KPI string

const (
	KPIImpressions KPI = "impressions"
	KPICTR         KPI = "ctr"
	KPIClickToLead KPI = "click_to_lead"
	KPILeadToMQL   KPI = "lead_to_mql"
	KPIMQLToSQL    KPI = "mql_to_sql"
	KPISQLToWon    KPI = "sql_to_won"
)

// KPIs lists every KPI in card order.
var KPIs = []KPI{KPIImpressions, KPICTR, KPIClickToLead, KPILeadToMQL, KPIMQLToSQL, KPISQLToWon}

// RateKPIs lists the conversion-rate KPIs in their fixed ranking order. The
// order is part of the ranking contract: ties resolve to the earlier entry.
var RateKPIs = []KPI{KPICTR, KPIClickToLead, KPILeadToMQL, KPIMQLToSQL, KPISQLToWon}

// KPIMeta carries the static copy and styling attached to a KPI.
type KPIMeta struct {
	Title    string
	Subtitle string
	Help     string
	Detail   string
	Color    string
}

// Meta returns the static metadata for the KPI. The switch is exhaustive
// over the closed enumeration; unknown values fall back to impressions.
func (k KPI) Meta() KPIMeta {
	switch k {
	case KPICTR:
		return KPIMeta{
			Title:    "CTR",
			Subtitle: "Click / Impression",
			Help:     "Share of impressions that turned into clicks.",
			Detail:   "click-through rate, clicks as a percentage of impressions",
			Color:    StageClick.Color(),
		}
	case KPIClickToLead:
		return KPIMeta{
			Title:    "Click → Lead",
			Subtitle: "Lead / Click",
			Help:     "Share of clicks that became leads.",
			Detail:   "conversion from click to captured lead",
			Color:    StageLead.Color(),
		}
	case KPILeadToMQL:
		return KPIMeta{
			Title:    "Lead → MQL",
			Subtitle: "MQL / Lead",
			Help:     "Share of leads qualified by marketing.",
			Detail:   "conversion from lead to marketing-qualified lead",
			Color:    StageMQL.Color(),
		}
	case KPIMQLToSQL:
		return KPIMeta{
			Title:    "MQL → SQL",
			Subtitle: "SQL / MQL",
			Help:     "Share of MQLs accepted by sales.",
			Detail:   "conversion from marketing-qualified to sales-qualified lead",
			Color:    StageSQL.Color(),
		}
	case KPISQLToWon:
		return KPIMeta{
			Title:    "SQL → Won",
			Subtitle: "Won / SQL",
			Help:     "Share of SQLs closed as won deals.",
			Detail:   "conversion from sales-qualified lead to closed deal",
			Color:    StageWon.Color(),
		}
	default:
		return KPIMeta{
			Title:    "Impressions",
			Subtitle: "Funnel base",
			Help:     "Raw number of ad impressions at the top of the funnel.",
			Detail:   "total impressions feeding the funnel",
			Color:    StageImpression.Color(),
		}
	}
}

// Valid reports whether the value belongs to the closed KPI set.
func (k KPI) Valid() bool {
	switch k {
	case KPIImpressions, KPICTR, KPIClickToLead, KPILeadToMQL, KPIMQLToSQL, KPISQLToWon:
		return true
	}
	return false
}

// IsRate reports whether the KPI is a conversion percentage rather than a
// raw count.
func (k KPI) IsRate() bool {
	return k.Valid() && k != KPIImpressions
}

// ParseKPI normalizes a wire value to a known KPI, falling back to
// impressions for anything outside the set.
func ParseKPI(value string) KPI {
	k := KPI(value)
	if !k.Valid() {
		return KPIImpressions
	}
	return k
}
