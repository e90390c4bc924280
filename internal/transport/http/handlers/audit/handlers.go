package audithandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Lister interface {
	List(ctx context.Context, filter audit.Filter, limit int) ([]audit.Event, error)
}

type Handler struct {
	Events Lister
}

func NewHandler(events Lister) *Handler {
	return &Handler{Events: events}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	q := r.URL.Query()
	filter := audit.Filter{
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
	}
	events, err := h.Events.List(r.Context(), filter, 0)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	page := shared.Window(events, shared.ParsePagination(r, 100, 500))
	w.Header().Set("X-Total-Count", strconv.Itoa(page.Total))
	api.Success(w, page, reqID)
}
