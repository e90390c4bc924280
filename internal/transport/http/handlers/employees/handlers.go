package employeehandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/employee"
	"hrpay/internal/domain/promotion"
	"hrpay/internal/domain/scale"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type People interface {
	Get(ctx context.Context, id int) (employee.Employee, error)
	List(ctx context.Context) ([]employee.Employee, error)
	Create(ctx context.Context, in employee.NewEmployee) (employee.Employee, error)
}

type Promotions interface {
	Propose(ctx context.Context, id int, title string, point int) (promotion.Result, error)
	Confirm(ctx context.Context, username string) (promotion.Result, error)
	Reject(ctx context.Context, username string) (promotion.Result, error)
}

type Handler struct {
	People     People
	Promotions Promotions
	Scales     *scale.Table
}

func NewHandler(people People, promotions Promotions, scales *scale.Table) *Handler {
	return &Handler{People: people, Promotions: promotions, Scales: scales}
}

type proposeRequest struct {
	JobTitle   string `json:"jobTitle"`
	ScalePoint int    `json:"scalePoint"`
}

type ladder struct {
	JobTitle string        `json:"jobTitle"`
	Entries  []scale.Entry `json:"entries"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/scales", h.handleScales)
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesCreate)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/{id}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermPromotionWrite)).Post("/{id}/promotion", h.handlePropose)
	})
	r.With(middleware.RequirePermission(auth.PermPromotionAnswer)).Post("/me/promotion/confirm", h.handleConfirm)
	r.With(middleware.RequirePermission(auth.PermPromotionAnswer)).Post("/me/promotion/reject", h.handleReject)
}

func (h *Handler) handleScales(w http.ResponseWriter, r *http.Request) {
	entries := h.Scales.Entries()
	byTitle := map[string]int{}
	out := []ladder{}
	for _, e := range entries {
		i, ok := byTitle[e.JobTitle]
		if !ok {
			i = len(out)
			byTitle[e.JobTitle] = i
			out = append(out, ladder{JobTitle: e.JobTitle})
		}
		out[i].Entries = append(out[i].Entries, e)
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	records, err := h.People.List(r.Context())
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, shared.Window(records, shared.ParsePagination(r, 50, 200)), reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var in employee.NewEmployee
	if err := api.Decode(r, &in); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	created, err := h.People.Create(r.Context(), in)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	record, err := h.People.Get(r.Context(), id)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handlePropose(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := pathID(r)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	var payload proposeRequest
	if err := api.Decode(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	result, err := h.Promotions.Propose(r.Context(), id, payload.JobTitle, payload.ScalePoint)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, h.Promotions.Confirm)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, h.Promotions.Reject)
}

func (h *Handler) answer(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (promotion.Result, error)) {
	reqID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	result, err := fn(r.Context(), id.Username)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperr.Validation("id", "must be a number")
	}
	return id, nil
}
