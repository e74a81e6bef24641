package http

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
	"github.com/couchcryptid/ocean-data-dashboard/internal/render"
)

// InvalidCoordinateNotice is shown when the coordinate form cannot be parsed.
const InvalidCoordinateNotice = "Please enter valid numeric latitude and longitude values."

// pageController implements the main and detail page states.
type pageController struct {
	snapshots     SnapshotService
	store         domain.CoordinateStore
	renderer      *render.Renderer
	metrics       *observability.Metrics
	logger        *slog.Logger
	chartsEnabled bool
}

// handleMain renders the coordinate form, prefilled from the visitor's
// last coordinate when one is stored.
func (pc *pageController) handleMain(w http.ResponseWriter, r *http.Request) {
	visitor := visitorID(w, r)

	var stored *domain.Coordinate
	c, ok, err := pc.store.Get(r.Context(), visitor)
	switch {
	case err != nil:
		pc.storeFailed(r.Context(), "read", err)
	case ok:
		stored = &c
	}

	pc.render(w, r, http.StatusOK, "main", render.MainPage(stored, ""))
}

// handleSubmit validates the form, persists the normalized coordinate, and
// redirects to the oceanographic page.
func (pc *pageController) handleSubmit(w http.ResponseWriter, r *http.Request) {
	visitor := visitorID(w, r)

	if err := r.ParseForm(); err != nil {
		pc.render(w, r, http.StatusBadRequest, "main", render.InvalidFormPage("", "", InvalidCoordinateNotice))
		return
	}
	lat, lon := r.PostFormValue("lat"), r.PostFormValue("lon")

	c, err := domain.ParseCoordinate(lat, lon)
	if err != nil {
		pc.logger.Debug("rejected coordinate input", "req_id", requestID(r.Context()), "error", err)
		pc.render(w, r, http.StatusUnprocessableEntity, "main", render.InvalidFormPage(lat, lon, InvalidCoordinateNotice))
		return
	}

	pc.persist(r.Context(), visitor, c)
	http.Redirect(w, r, detailURL(domain.DomainOceanographic, c), http.StatusSeeOther)
}

// handleDetail renders one domain page. The coordinate comes only from the
// query string; without one every table shows placeholders and no upstream
// request is made.
func (pc *pageController) handleDetail(w http.ResponseWriter, r *http.Request) {
	d, ok := domain.ParseDomain(r.PathValue("domain"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	visitor := visitorID(w, r)

	c, ok := queryCoordinate(r.URL.Query())
	if !ok {
		pc.render(w, r, http.StatusOK, string(d), render.DetailPage(d, nil, nil))
		return
	}

	pc.persist(r.Context(), visitor, c)
	snap := pc.snapshots.Snapshot(r.Context(), c)

	page := render.DetailPage(d, &c, &snap)
	if pc.chartsEnabled {
		page.Charts = pc.charts(r.Context(), d, snap)
	}
	pc.render(w, r, http.StatusOK, string(d), page)
}

// handleSnapshotAPI returns all three views as JSON.
func (pc *pageController) handleSnapshotAPI(w http.ResponseWriter, r *http.Request) {
	c, ok := queryCoordinate(r.URL.Query())
	if !ok {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "lat and lon query parameters must be finite numbers",
		})
		return
	}
	snap := pc.snapshots.Snapshot(r.Context(), c)
	pc.metrics.PageRenders.WithLabelValues("snapshot").Inc()
	sharedobs.WriteJSON(w, http.StatusOK, snap)
}

// charts builds the chart payload. Failures are logged and yield no charts.
func (pc *pageController) charts(ctx context.Context, d domain.Domain, snap domain.Snapshot) template.JS {
	configs, err := render.Charts(d, snap)
	if errors.Is(err, render.ErrNoChartData) {
		return ""
	}
	if err == nil {
		var js template.JS
		if js, err = render.ChartsJSON(configs); err == nil {
			return js
		}
	}
	pc.metrics.ChartFailures.Inc()
	pc.logger.Warn("chart build failed", "req_id", requestID(ctx), "domain", d, "error", err)
	return ""
}

func (pc *pageController) render(w http.ResponseWriter, r *http.Request, status int, page string, p render.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pc.renderer.RenderPage(w, p); err != nil {
		pc.logger.Error("render page failed", "req_id", requestID(r.Context()), "page", page, "error", err)
		return
	}
	pc.metrics.PageRenders.WithLabelValues(page).Inc()
}

// persist saves the visitor's coordinate; failures are logged only.
func (pc *pageController) persist(ctx context.Context, visitor string, c domain.Coordinate) {
	if err := pc.store.Set(ctx, visitor, c); err != nil {
		pc.storeFailed(ctx, "write", err)
	}
}

func (pc *pageController) storeFailed(ctx context.Context, op string, err error) {
	pc.metrics.StoreFailures.Inc()
	pc.logger.Warn("coordinate store failed", "req_id", requestID(ctx), "op", op, "error", err)
}

// queryCoordinate reads lat and lon from the query. Missing or unparseable
// values count as absent.
func queryCoordinate(q url.Values) (domain.Coordinate, bool) {
	if !q.Has("lat") || !q.Has("lon") {
		return domain.Coordinate{}, false
	}
	c, err := domain.ParseCoordinate(q.Get("lat"), q.Get("lon"))
	if err != nil {
		return domain.Coordinate{}, false
	}
	return c, true
}

func detailURL(d domain.Domain, c domain.Coordinate) string {
	return "/" + string(d) + "?" + c.Query().Encode()
}
