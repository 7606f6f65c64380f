package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ksusheel25/hr-management-system/internal/config"
	appHTTP "github.com/ksusheel25/hr-management-system/internal/handler/http"
	"github.com/ksusheel25/hr-management-system/internal/pkg/cron"
	"github.com/ksusheel25/hr-management-system/internal/pkg/database"
	"github.com/ksusheel25/hr-management-system/internal/pkg/jwt"
	"github.com/ksusheel25/hr-management-system/internal/pkg/lock"
	"github.com/ksusheel25/hr-management-system/internal/repository/postgresql"
	attendanceService "github.com/ksusheel25/hr-management-system/internal/service/attendance"
	authService "github.com/ksusheel25/hr-management-system/internal/service/auth"
	biometricService "github.com/ksusheel25/hr-management-system/internal/service/biometric"
	leaveService "github.com/ksusheel25/hr-management-system/internal/service/leave"
	notificationService "github.com/ksusheel25/hr-management-system/internal/service/notification"
	shiftService "github.com/ksusheel25/hr-management-system/internal/service/shift"
	workpolicyService "github.com/ksusheel25/hr-management-system/internal/service/workpolicy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	eventRepo := postgresql.NewAttendanceEventRepository(db)
	summaryRepo := postgresql.NewDailySummaryRepository(db)
	presenceRepo := postgresql.NewOfficePresenceRepository(db)
	policyRepo := postgresql.NewWorkPolicyRepository(db)
	biometricRepo := postgresql.NewBiometricLogRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	var lockManager lock.Manager
	switch cfg.Lock.Backend {
	case "postgres":
		lockManager = lock.NewPostgresManager(db)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Lock.RedisAddr,
			DB:   cfg.Lock.RedisDB,
		})
		lockManager = lock.NewRedisManager(client, cfg.Lock.LeaseTTL)
	case "memory":
		lockManager = lock.NewMemoryManager()
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	authSvc := authService.NewAuthService(userRepo, jwtService)
	sessionSvc := attendanceService.NewSessionService(db, eventRepo, summaryRepo, policyRepo, employeeRepo, holidayRepo, leaveRequestRepo)
	policySvc := workpolicyService.NewWorkPolicyService(policyRepo)
	biometricSvc := biometricService.NewBiometricService(db, biometricRepo, eventRepo, presenceRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, leaveBalanceRepo, employeeRepo, notificationSvc, slog.Default())
	shiftSvc := shiftService.NewShiftService(shiftRepo, employeeRepo)

	jobs := cron.NewAttendanceJobs(db, companyRepo, employeeRepo, eventRepo, summaryRepo,
		policyRepo, presenceRepo, holidayRepo, leaveRequestRepo, lockManager)
	scheduler := cron.NewScheduler()
	if err := jobs.RegisterJobs(scheduler, cfg.Jobs.ReconcileAt, cfg.Jobs.FinalizeAt); err != nil {
		fmt.Println("Error registering jobs:", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, cfg.App.Env, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Attendance:   appHTTP.NewAttendanceHandler(sessionSvc),
		Biometric:    appHTTP.NewBiometricHandler(biometricSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Shift:        appHTTP.NewShiftHandler(shiftSvc),
		WorkPolicy:   appHTTP.NewWorkPolicyHandler(policySvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server_started", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server_shutting_down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server_shutdown_failed", "error", err)
	}
}
