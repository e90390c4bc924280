package payrollhandler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/employee"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/progression"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
)

// Runner performs the payroll operations that are recorded as jobs.
type Runner interface {
	Today() time.Time
	RunPayroll(ctx context.Context, date time.Time) (payroll.Report, error)
	RunProgression(ctx context.Context) (progression.Summary, error)
	SubmitClaim(ctx context.Context, username string, hours decimal.Decimal) (payroll.Claim, error)
}

type Payslips interface {
	ForEmployee(ctx context.Context, id int, period payroll.Period) ([]payroll.Payslip, error)
	Find(ctx context.Context, id int, period payroll.Period) (payroll.Payslip, error)
}

type EmployeeFinder interface {
	GetByUsername(ctx context.Context, username string) (employee.Employee, error)
}

type Renderer interface {
	Bytes(p payroll.Payslip) ([]byte, error)
}

type History interface {
	History(limit int) []jobs.Run
}

type Handler struct {
	Runner    Runner
	Payslips  Payslips
	Employees EmployeeFinder
	PDF       Renderer
	Jobs      History
}

func NewHandler(runner Runner, payslips Payslips, employees EmployeeFinder, pdf Renderer, history History) *Handler {
	return &Handler{Runner: runner, Payslips: payslips, Employees: employees, PDF: pdf, Jobs: history}
}

type claimRequest struct {
	Hours decimal.Decimal `json:"hours"`
}

type runRequest struct {
	Date string `json:"date"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermClaimsSubmit)).Post("/me/claims", h.handleSubmitClaim)
	r.With(middleware.RequirePermission(auth.PermPayslipsOwn)).Get("/me/payslips", h.handleOwnPayslips)
	r.With(middleware.RequirePermission(auth.PermPayslipsAll)).Get("/payslips/{id}", h.handleEmployeePayslips)
	r.With(middleware.RequireAuth).Get("/payslips/{id}/{period}/pdf", h.handlePDF)
	r.With(middleware.RequirePermission(auth.PermPayrollRun)).Post("/payroll/run", h.handleRunPayroll)
	r.With(middleware.RequirePermission(auth.PermPayrollRun)).Post("/progression/run", h.handleRunProgression)
	r.With(middleware.RequirePermission(auth.PermPayrollRun)).Get("/jobs", h.handleJobs)
}

func (h *Handler) handleSubmitClaim(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload claimRequest
	if err := api.Decode(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	id, _ := middleware.GetIdentity(r.Context())
	claim, err := h.Runner.SubmitClaim(r.Context(), id.Username, payload.Hours)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, claim, reqID)
}

func (h *Handler) handleOwnPayslips(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, _ := middleware.GetIdentity(r.Context())
	record, err := h.Employees.GetByUsername(r.Context(), id.Username)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.listPayslips(w, r, record.ID)
}

func (h *Handler) handleEmployeePayslips(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.FailError(w, apperr.Validation("id", "must be a number"), middleware.GetRequestID(r.Context()))
		return
	}
	h.listPayslips(w, r, id)
}

func (h *Handler) listPayslips(w http.ResponseWriter, r *http.Request, employeeID int) {
	reqID := middleware.GetRequestID(r.Context())
	period := payroll.PeriodOf(h.Runner.Today())
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := payroll.ParsePeriod(raw)
		if err != nil {
			api.FailError(w, err, reqID)
			return
		}
		period = parsed
	}
	slips, err := h.Payslips.ForEmployee(r.Context(), employeeID, period)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	if slips == nil {
		slips = []payroll.Payslip{}
	}
	api.Success(w, slips, reqID)
}

// handlePDF serves one payslip as PDF. The period segment is MM-YYYY since
// a slash cannot appear in a path segment.
func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.FailError(w, apperr.Validation("id", "must be a number"), reqID)
		return
	}
	period, err := payroll.ParsePeriod(strings.ReplaceAll(chi.URLParam(r, "period"), "-", "/"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}

	ident, _ := middleware.GetIdentity(r.Context())
	if !auth.HasPermission(ident.Role, auth.PermPayslipsAll) {
		own, err := h.Employees.GetByUsername(r.Context(), ident.Username)
		if err != nil || own.ID != employeeID {
			api.FailError(w, auth.ErrForbidden, reqID)
			return
		}
	}

	slip, err := h.Payslips.Find(r.Context(), employeeID, period)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	doc, err := h.PDF.Bytes(slip)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payslip-"+strconv.Itoa(employeeID)+"-"+strings.ReplaceAll(period.String(), "/", "-")+".pdf")
	_, _ = w.Write(doc)
}

func (h *Handler) handleRunPayroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload runRequest
	if r.ContentLength != 0 {
		if err := api.Decode(r, &payload); err != nil {
			api.FailError(w, err, reqID)
			return
		}
	}
	date := h.Runner.Today()
	if payload.Date != "" {
		parsed, err := time.Parse(time.DateOnly, payload.Date)
		if err != nil {
			api.FailError(w, apperr.Validation("date", "must be YYYY-MM-DD"), reqID)
			return
		}
		date = parsed
	}
	report, err := h.Runner.RunPayroll(r.Context(), date)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, report, reqID)
}

func (h *Handler) handleRunProgression(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	summary, err := h.Runner.RunProgression(r.Context())
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	api.Success(w, h.Jobs.History(limit), middleware.GetRequestID(r.Context()))
}
