package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/lunar-api/internal/almanac"
	"github.com/zapponejosh/lunar-api/internal/calendar"
	"github.com/zapponejosh/lunar-api/internal/database"
	"github.com/zapponejosh/lunar-api/internal/ganzhi"
	"github.com/zapponejosh/lunar-api/internal/logger"
	"github.com/zapponejosh/lunar-api/internal/lunar"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	engine *calendar.Engine
	health HealthChecker
	source string
	now    func() time.Time
	logger *slog.Logger
}

// NewHandlers creates handlers over engine. health may be nil when no
// database backs the almanac; source names the almanac for /health.
func NewHandlers(engine *calendar.Engine, health HealthChecker, source string, logger *slog.Logger) *Handlers {
	return &Handlers{
		engine: engine,
		health: health,
		source: source,
		now:    time.Now,
		logger: logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.health != nil {
		if err := h.health.Health(ctx); err != nil {
			h.logger.Warn("health check failed", slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, ErrorInfo{Message: "Database unhealthy", Code: "HEALTH_CHECK_FAILED"})
			return
		}
	}

	table := h.engine.Table()
	WriteSuccess(w, map[string]any{
		"status":   "healthy",
		"almanac":  h.source,
		"min_year": table.MinYear(),
		"max_year": table.MaxYear(),
	})
}

// GetToday handles GET /api/v1/calendar/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	today := h.now()
	h.writeCalendar(w, r, calendar.Input{
		Year:  strconv.Itoa(today.Year()),
		Month: strconv.Itoa(int(today.Month())),
		Day:   strconv.Itoa(today.Day()),
	})
}

// GetCalendar handles GET /api/v1/calendar/{YYYY-MM-DD}
func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	in, ok := parseDateParam(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	h.writeCalendar(w, r, in)
}

// writeCalendar fills time and reference from the query string, builds
// the calendar and writes its snapshot.
func (h *Handlers) writeCalendar(w http.ResponseWriter, r *http.Request, in calendar.Input) {
	q := r.URL.Query()
	in.Time = q.Get("time")
	in.Reference = q.Get("reference")

	cal, err := h.engine.New(r.Context(), in)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}

	WriteSuccess(w, cal.Snapshot())
}

// GetLunar handles GET /api/v1/lunar/{year}/{month}/{day}?leap=true
func (h *Handlers) GetLunar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var parts [3]int
	for i, name := range []string{"year", "month", "day"} {
		n, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			WriteError(w, http.StatusBadRequest, ErrorInfo{Message: "Lunar " + name + " must be a number", Code: "VALIDATION_ERROR", Field: name})
			return
		}
		parts[i] = n
	}

	leap := false
	if v := q.Get("leap"); v != "" {
		var err error
		if leap, err = strconv.ParseBool(v); err != nil {
			WriteError(w, http.StatusBadRequest, ErrorInfo{Message: "leap must be true or false", Code: "VALIDATION_ERROR", Field: "leap"})
			return
		}
	}

	cal, err := h.engine.LunarToSolar(ctx, parts[0], parts[1], parts[2], leap)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	if err := cal.SetTime(q.Get("time")); err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	if err := cal.SetReference(q.Get("reference")); err != nil {
		h.writeCalendarError(w, r, err)
		return
	}

	WriteSuccess(w, cal.Snapshot())
}

// GetSolarTerms handles GET /api/v1/solar-terms/{YYYY-MM-DD}
func (h *Handlers) GetSolarTerms(w http.ResponseWriter, r *http.Request) {
	in, ok := parseDateParam(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	in.Time = "0"

	cal, err := h.engine.New(r.Context(), in)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{
		"date":       cal.Core().Date().String(),
		"solarTerms": cal.SolarTermDistance(),
	})
}

// TenGodResponse is the body of GET /api/v1/ten-god.
type TenGodResponse struct {
	Reference string        `json:"reference"`
	Target    string        `json:"target"`
	TenGod    ganzhi.TenGod `json:"tenGod"`
	Short     string        `json:"short"`
}

// GetTenGod handles GET /api/v1/ten-god?reference=壬&target=庚
func (h *Handlers) GetTenGod(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ref, ok, err := calendar.ParseReference(q.Get("reference"))
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	if !ok {
		WriteError(w, http.StatusBadRequest, ErrorInfo{Message: calendar.ErrMissingReferenceStem.Error(), Code: "MISSING_REFERENCE", Field: "reference"})
		return
	}

	target, ok, err := calendar.ParseReference(q.Get("target"))
	if err != nil || !ok {
		WriteError(w, http.StatusBadRequest, ErrorInfo{Message: "target must be a stem or stem+branch pair", Code: "VALIDATION_ERROR", Field: "target"})
		return
	}

	god := h.engine.TenGod(ref, target)
	WriteSuccess(w, TenGodResponse{
		Reference: ref.String(),
		Target:    target.String(),
		TenGod:    god,
		Short:     god.Short(),
	})
}

// parseDateParam splits a YYYY-MM-DD path value into calendar input. Range
// checks are left to the normalizer.
func parseDateParam(w http.ResponseWriter, v string) (calendar.Input, bool) {
	parts := strings.Split(v, "-")
	if len(parts) != 3 {
		WriteError(w, http.StatusBadRequest, ErrorInfo{Message: "Invalid date format: " + v + ". Use YYYY-MM-DD", Code: "VALIDATION_ERROR", Field: "date"})
		return calendar.Input{}, false
	}
	return calendar.Input{Year: parts[0], Month: parts[1], Day: parts[2]}, true
}

// writeCalendarError maps domain errors to HTTP statuses: bad input and
// unsupported dates are 400, missing almanac data is 404.
func (h *Handlers) writeCalendarError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation  *calendar.ValidationError
		unsupported *lunar.UnsupportedYearError
		leap        *lunar.UnsupportedLeapMonthError
		lunarDate   *lunar.DateError
	)

	switch {
	case errors.As(err, &validation):
		WriteError(w, http.StatusBadRequest, ErrorInfo{Message: validation.Error(), Code: "VALIDATION_ERROR", Field: validation.Field})
	case errors.As(err, &unsupported):
		WriteError(w, http.StatusBadRequest, ErrorInfo{Message: unsupported.Error(), Code: "UNSUPPORTED_YEAR", Field: "year"})
	case errors.As(err, &leap):
		WriteError(w, http.StatusBadRequest, ErrorInfo{Message: leap.Error(), Code: "UNSUPPORTED_LEAP_MONTH", Field: "leap"})
	case errors.As(err, &lunarDate):
		WriteError(w, http.StatusBadRequest, ErrorInfo{Message: lunarDate.Error(), Code: "VALIDATION_ERROR"})
	case errors.Is(err, almanac.ErrNoRecords), database.IsNotFound(err):
		WriteNotFound(w, "No solar term data for this date")
	default:
		logger.Error(r.Context(), "calendar request failed", err, slog.String("path", r.URL.Path))
		WriteInternalError(w, "Failed to compute calendar")
	}
}
