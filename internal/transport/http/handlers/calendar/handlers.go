package calendarhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/calendar"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
)

type Clock interface {
	Today() time.Time
	Advance(ctx context.Context, step calendar.Step) (calendar.Result, error)
}

type Handler struct {
	Clock Clock
}

func NewHandler(clock Clock) *Handler {
	return &Handler{Clock: clock}
}

type advanceRequest struct {
	Step string `json:"step"`
}

type advanceResponse struct {
	calendar.Result
	Warning string `json:"warning,omitempty"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/calendar", h.handleShow)
	r.With(middleware.RequirePermission(auth.PermCalendarAdvance)).Post("/calendar", h.handleAdvance)
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"date": h.Clock.Today().Format(time.DateOnly)}, middleware.GetRequestID(r.Context()))
}

// handleAdvance moves the date. Listener failures do not undo the move, so
// they come back as a warning alongside the new date.
func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload advanceRequest
	if err := api.Decode(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	step, err := calendar.ParseStep(payload.Step)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	result, err := h.Clock.Advance(r.Context(), step)
	if err != nil && result.To.IsZero() {
		api.FailError(w, err, reqID)
		return
	}
	resp := advanceResponse{Result: result}
	if err != nil {
		resp.Warning = err.Error()
	}
	api.Success(w, resp, reqID)
}
