// Package dashhttp serves the funnel dashboard pages and state transitions.
package dashhttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/funnelboard/funnelboard/internal/dashboard"
	"github.com/funnelboard/funnelboard/internal/dashboard/export"
	"github.com/funnelboard/funnelboard/internal/dashboard/svg"
	"github.com/funnelboard/funnelboard/internal/dashboard/ui"
	"github.com/funnelboard/funnelboard/internal/funnel"
	"github.com/funnelboard/funnelboard/internal/platform/httpx"
	"github.com/funnelboard/funnelboard/internal/shared"
	"github.com/funnelboard/funnelboard/internal/view"
)

const requestTimeout = 2 * time.Second

// DashboardService defines the data contract used by the handler.
type DashboardService interface {
	GetOverview(employee string) dashboard.Overview
	GetHistory(ctx context.Context, employee string) ([]funnel.MonthlyKpiRow, error)
}

// Handler coordinates HTTP requests for the funnel dashboard.
type Handler struct {
	logger    *slog.Logger
	service   DashboardService
	templates *view.Engine
	funnel    ui.FunnelRenderer
	trend     ui.TrendRenderer
	csrf      *shared.CSRFManager
	csvPool   sync.Pool
	now       func() time.Time
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, service DashboardService, templates *view.Engine, funnelRenderer ui.FunnelRenderer, trendRenderer ui.TrendRenderer, csrf *shared.CSRFManager) *Handler {
	h := &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		funnel:    funnelRenderer,
		trend:     trendRenderer,
		csrf:      csrf,
		now:       time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	state := dashboard.StateFromSession(sess)

	csrfToken := ""
	if h.csrf != nil && sess != nil {
		if token, err := h.csrf.EnsureToken(r.Context(), sess); err == nil {
			csrfToken = token
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	overview := h.service.GetOverview(state.Employee)
	rows, err := h.service.GetHistory(ctx, state.Employee)
	if err != nil {
		h.handleServerError(w, "load history", err)
		return
	}

	vm, err := h.buildViewModel(state, overview, rows)
	if err != nil {
		h.handleServerError(w, "render charts", err)
		return
	}

	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}

	viewData := view.TemplateData{
		Title:       "Marketing Funnel Dashboard",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleSelectEmployee(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	state := dashboard.StateFromSession(sess).SelectEmployee(r.PostFormValue("employee"))
	state.Save(sess)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) handleSelectTab(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	state := dashboard.StateFromSession(sess).SelectTab(r.PostFormValue("tab"))
	state.Save(sess)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleClickKPI applies the combined card transition: KPI selection plus
// the forced switch to the details tab, saved in one session commit.
func (h *Handler) handleClickKPI(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	state := dashboard.StateFromSession(sess).ClickKPI(chi.URLParam(r, "kpi"))
	state.Save(sess)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	state := dashboard.StateFromSession(sess)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	overview := h.service.GetOverview(state.Employee)
	rows, err := h.service.GetHistory(ctx, state.Employee)
	if err != nil {
		h.handleServerError(w, "load history", err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteFunnelCSV(buf, overview.Employee, overview.Counts); err != nil {
		h.handleServerError(w, "write funnel csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteHistoryCSV(buf, rows); err != nil {
		h.handleServerError(w, "write history csv", err)
		return
	}

	filename := fmt.Sprintf("funnel-%s-%s.csv", slug(overview.Employee), h.now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

// handleState exposes the current view state for API consumers.
func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, dashboard.StateFromSession(sess))
}

func (h *Handler) buildViewModel(state dashboard.ViewState, overview dashboard.Overview, rows []funnel.MonthlyKpiRow) (ui.DashboardViewModel, error) {
	meta := state.KPI.Meta()

	funnelSVG, err := h.funnel.Funnel(svg.DefaultWidth, 300, ui.ToFunnelSegments(overview.Counts), svg.FunnelOpts{
		Title:       "Marketing funnel",
		Description: "Stage counts for " + overview.Employee,
	})
	if err != nil {
		return ui.DashboardViewModel{}, err
	}

	points := ui.ToTrendPoints(rows, state.KPI)
	series := make([]float64, 0, len(points))
	labels := make([]string, 0, len(points))
	for _, p := range points {
		series = append(series, p.Value)
		labels = append(labels, p.Month)
	}
	trendSVG, err := h.trend.Line(svg.DefaultWidth, svg.DefaultHeight, series, labels, svg.LineOpts{
		Title:       meta.Title + " trend",
		Description: meta.Title + " across the last months",
		StrokeColor: meta.Color,
		ShowDots:    true,
	})
	if err != nil {
		return ui.DashboardViewModel{}, err
	}

	return ui.DashboardViewModel{
		Employees: funnel.Employees,
		Employee:  overview.Employee,
		KPI:       string(state.KPI),
		KPITitle:  meta.Title,
		Tab: ui.TabState{
			OverviewActive: state.Tab == dashboard.TabOverview,
			DetailsActive:  state.Tab == dashboard.TabDetails,
		},
		Cards:      ui.ToKPICards(overview.Counts, overview.Rates, state.KPI),
		FunnelSVG:  funnelSVG,
		TrendSVG:   trendSVG,
		Insights:   ui.ToInsights(overview.Counts, overview.Rates),
		Objectives: ui.Objectives,
		DetailText: ui.DetailText(overview.Employee, state.KPI),
		History:    ui.ToHistoryRows(rows, state.KPI),
	}, nil
}

func (h *Handler) handleServerError(w http.ResponseWriter, action string, err error) {
	h.logError(action, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(action string, err error) {
	if h.logger != nil {
		h.logger.Error(action, slog.Any("error", err))
	}
}

func slug(value string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, value)
	mapped = strings.Trim(mapped, "-")
	if mapped == "" {
		return "all"
	}
	return mapped
}

// HandleDashboardForTest exposes the dashboard handler for tests.
func (h *Handler) HandleDashboardForTest(w http.ResponseWriter, r *http.Request) {
	h.handleDashboard(w, r)
}

// HandleCSVForTest exposes the CSV handler for tests.
func (h *Handler) HandleCSVForTest(w http.ResponseWriter, r *http.Request) { h.handleCSV(w, r) }

// HandleStateForTest exposes the state API handler for tests.
func (h *Handler) HandleStateForTest(w http.ResponseWriter, r *http.Request) { h.handleState(w, r) }

// HandleClickKPIForTest exposes the card transition handler for tests.
func (h *Handler) HandleClickKPIForTest(w http.ResponseWriter, r *http.Request) {
	h.handleClickKPI(w, r)
}
