package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/calendar"
	"hrpay/internal/domain/employee"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/progression"
	"hrpay/internal/domain/promotion"
	"hrpay/internal/domain/scale"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/crypto"
	"hrpay/internal/platform/db"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/metrics"
)

const companyName = "University Of Limerick"

// App holds every service of one process, built once from Config.
type App struct {
	Config config.Config
	DB     *gorm.DB

	Scales      *scale.Table
	Employees   *employee.Repository
	Statuses    employee.StatusStore
	Auth        *auth.Service
	People      *employee.Service
	Promotion   *promotion.Service
	Progression *progression.Engine
	Claims      *payroll.ClaimService
	Payroll     *payroll.Service
	PDF         *payroll.PDFRenderer
	Calendar    *calendar.Clock
	Audit       *audit.Service
	Jobs        *jobs.Service
	Metrics     *metrics.Collector
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		slog.Warn("security.jwt_secret not set; tokens will not survive a restart")
	}
	a := &App{Config: cfg, Jobs: jobs.New(200), Metrics: metrics.New()}

	table, err := scale.Load(cfg.Path(config.ScalesFile))
	if err != nil {
		return nil, err
	}
	a.Scales = table

	var (
		store    employee.StoreAPI
		statuses employee.StatusStore
	)
	switch cfg.StorageDriver {
	case config.DriverCSV:
		store = employee.NewCSVStore(cfg.Path(config.EmployeesFile))
		statuses = employee.NewCSVStatusStore(cfg.Path(config.StatusFile))
	default:
		gdb, err := db.Open(cfg)
		if err != nil {
			return nil, err
		}
		if err := employee.Migrate(gdb); err != nil {
			_ = db.Close(gdb)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.DB = gdb
		store = employee.NewSQLStore(gdb)
		statuses = employee.NewSQLStatusStore(gdb)
	}
	a.Employees = employee.NewRepository(store)
	a.Statuses = statuses

	a.Auth = auth.NewService(auth.NewCSVStore(cfg.Path(config.LoginsFile)))
	if err := db.Seed(ctx, a.Auth, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	a.Audit = audit.New(cfg.Path(config.AuditFile))
	a.People = employee.NewService(a.Employees, statuses, table, a.Auth)
	a.Promotion = promotion.NewService(a.Employees, table, a.Audit)
	a.Progression = progression.NewEngine(a.Employees, table)

	claims := payroll.NewClaimStore(cfg.Path(config.ClaimsFile))
	payslips := payroll.NewPayslipStore(cfg.Path(config.PayslipsFile))
	a.Claims = payroll.NewClaimService(claims, a.Employees, statuses, table)
	a.Payroll = payroll.NewService(a.Employees, statuses, table, claims, payslips)

	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.PDF = payroll.NewPDFRenderer(cfg.Path(config.PDFDir), companyName, sealer)

	clock, err := calendar.Open(cfg.Path(config.CalendarFile), calendar.Rules{
		PayDay:           cfg.PayDay,
		ProgressionMonth: cfg.ProgressionMonth,
	}, time.Now)
	if err != nil {
		a.Close()
		return nil, err
	}
	clock.Subscribe(a.onCalendarEvent)
	a.Calendar = clock
	return a, nil
}

// Start runs background jobs. On the wall clock the payday and progression
// rules become cron schedules; on the simulated calendar a start on payday
// generates that month's payslips.
func (a *App) Start(ctx context.Context) error {
	if a.Config.Realtime {
		payday := fmt.Sprintf("0 0 %d * *", a.Config.PayDay)
		progressionSpec := fmt.Sprintf("0 0 1 %d *", int(a.Config.ProgressionMonth))
		if err := a.Jobs.Schedule(payday, jobs.JobPayslipGeneration, func(ctx context.Context) (any, error) {
			return a.generate(ctx, time.Now())
		}); err != nil {
			return err
		}
		if err := a.Jobs.Schedule(progressionSpec, jobs.JobProgression, func(ctx context.Context) (any, error) {
			return a.progress(ctx)
		}); err != nil {
			return err
		}
		slog.Info("realtime schedules installed", "payslips", payday, "progression", progressionSpec)
	}
	a.Jobs.Start(ctx)
	if !a.Config.Realtime {
		if _, err := a.Calendar.Resume(ctx); err != nil {
			slog.Warn("payday on startup failed", "err", err)
		}
	}
	return nil
}

func (a *App) Close() {
	if err := db.Close(a.DB); err != nil {
		slog.Warn("database close failed", "err", err)
	}
}

// Today is the date payroll operations run against.
func (a *App) Today() time.Time {
	if a.Config.Realtime {
		return time.Now()
	}
	return a.Calendar.Today()
}

// RunPayroll runs a payslip generation pass for the month of date and
// records it in the job history.
func (a *App) RunPayroll(ctx context.Context, date time.Time) (payroll.Report, error) {
	out, err := a.Jobs.RunNow(ctx, jobs.JobPayslipGeneration, func(ctx context.Context) (any, error) {
		return a.generate(ctx, date)
	})
	report, _ := out.(payroll.Report)
	return report, err
}

func (a *App) RunProgression(ctx context.Context) (progression.Summary, error) {
	out, err := a.Jobs.RunNow(ctx, jobs.JobProgression, func(ctx context.Context) (any, error) {
		return a.progress(ctx)
	})
	summary, _ := out.(progression.Summary)
	return summary, err
}

// SubmitClaim files a claim dated today.
func (a *App) SubmitClaim(ctx context.Context, username string, hours decimal.Decimal) (payroll.Claim, error) {
	claim, err := a.Claims.Submit(ctx, username, hours, a.Today())
	if err == nil {
		a.Metrics.ClaimSubmitted()
	}
	return claim, err
}

func (a *App) generate(ctx context.Context, date time.Time) (payroll.Report, error) {
	report, err := a.Payroll.Generate(ctx, date)
	if err != nil {
		return report, err
	}
	a.Metrics.GenerationRun(len(report.Written), len(report.NoClaim))
	return report, nil
}

func (a *App) progress(ctx context.Context) (progression.Summary, error) {
	summary, err := a.Progression.Run(ctx)
	if err != nil {
		return summary, err
	}
	a.Metrics.ProgressionRun()
	return summary, nil
}

func (a *App) onCalendarEvent(ctx context.Context, evt calendar.Event) error {
	switch evt.Kind {
	case calendar.EventProgression:
		_, err := a.RunProgression(ctx)
		return err
	case calendar.EventPayday:
		_, err := a.RunPayroll(ctx, evt.Date)
		return err
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
