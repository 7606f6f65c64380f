package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/ksusheel25/hr-management-system/internal/domain/user"
	"github.com/ksusheel25/hr-management-system/internal/handler/http/middleware"
	"github.com/ksusheel25/hr-management-system/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Biometric    BiometricHandler
	Leave        LeaveHandler
	Shift        ShiftHandler
	WorkPolicy   WorkPolicyHandler
	Notification NotificationHandler
}

func NewRouter(jwtService jwt.Service, env string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-management-system"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/{employeeID}/check-in", h.Attendance.CheckIn)
				r.Post("/{employeeID}/check-out", h.Attendance.CheckOut)
				r.Get("/my", h.Attendance.MyAttendance)
			})

			// Device gateways push with a DEVICE principal
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleDevice, user.RoleAdmin))
				r.Post("/biometric/{companyID}/events", h.Biometric.ReceiveEvent)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/my", h.Leave.ListMine)
				r.Delete("/{requestID}", h.Leave.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleManager, user.RoleAdmin))
					r.Get("/pending", h.Leave.ListPending)
					r.Post("/{requestID}/approve", h.Leave.Approve)
					r.Post("/{requestID}/reject", h.Leave.Reject)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)
				r.Get("/{shiftID}", h.Shift.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleAdmin))
					r.Post("/", h.Shift.Create)
					r.Put("/{shiftID}", h.Shift.Update)
					r.Delete("/{shiftID}", h.Shift.Delete)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleAdmin))
				r.Put("/employees/{employeeID}/shift", h.Shift.Assign)
			})

			r.Route("/work-policy", func(r chi.Router) {
				r.Get("/", h.WorkPolicy.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleAdmin))
					r.Put("/", h.WorkPolicy.Update)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.ListMine)
				r.Post("/{notificationID}/read", h.Notification.MarkRead)
			})
		})
	})
	return r
}
