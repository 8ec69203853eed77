package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/nexushr/workforce-backend-go/internal/config"
	"github.com/nexushr/workforce-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	cfg *config.Config,
	tokenAuth *jwtauth.JWTAuth,
	punchHandler PunchHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	approvalHandler ApprovalHandler,
	payrollHandler PayrollHandler,
	fundHandler FundHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/punches", func(r chi.Router) {
				r.Post("/", punchHandler.Submit)
				r.Get("/today", punchHandler.TodayState)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)

				// HR/admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePrivileged)
					r.Post("/sweep", attendanceHandler.Sweep)
					r.Patch("/{id}/status", attendanceHandler.ChangeStatus)
					r.Get("/{id}/logs", attendanceHandler.ChangeLogs)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/", leaveHandler.ListMine)
				r.Get("/balance", leaveHandler.Balance)

				// HR/admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePrivileged)
					r.Get("/pending", leaveHandler.ListPending)
					r.Patch("/{id}/decision", leaveHandler.Decide)
					r.Get("/balance/{employeeID}", leaveHandler.Balance)
				})
			})

			// HR/admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePrivileged)
				r.Route("/approvals", func(r chi.Router) {
					r.Post("/", approvalHandler.Approve)
					r.Get("/{year}/{month}", approvalHandler.Get)
				})
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/slips", payrollHandler.MySlips)

				// HR/admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePrivileged)
					r.Post("/generate", payrollHandler.Generate)
					r.Get("/", payrollHandler.History)
					r.Get("/{id}", payrollHandler.Slip)
					r.Post("/{id}/pay", fundHandler.PaySalary)
				})
			})

			// HR/admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePrivileged)
				r.Route("/funds", func(r chi.Router) {
					r.Get("/summary", fundHandler.Summary)
					r.Route("/transactions", func(r chi.Router) {
						r.Post("/", fundHandler.PostTransaction)
						r.Get("/", fundHandler.ListTransactions)
					})
					r.Route("/expenses", func(r chi.Router) {
						r.Post("/", fundHandler.AddExpense)
						r.Get("/", fundHandler.ListExpenses)
						r.Delete("/{id}", fundHandler.DeleteExpense)
					})
					r.Post("/projects/{projectID}/payments", fundHandler.RecordClientPayment)
				})
			})
		})
	})
	return r
}
