package dashhttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/funnelboard/funnelboard/internal/platform/httpx"
	"github.com/funnelboard/funnelboard/internal/shared"
)

// MountRoutes registers the dashboard endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests", "export rate limit exceeded, retry in a minute")
		}),
	)

	r.Get("/dashboard", h.handleDashboard)
	r.Post("/dashboard/employee", h.handleSelectEmployee)
	r.Post("/dashboard/tab", h.handleSelectTab)
	r.Post("/dashboard/kpi/{kpi}", h.handleClickKPI)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/dashboard/export.csv", h.handleCSV)
	})
	r.Get("/api/dashboard/state", h.handleState)
}

func rateLimitKey(r *http.Request) (string, error) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if id := strings.TrimSpace(sess.ID); id != "" {
			return "session:" + id, nil
		}
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
