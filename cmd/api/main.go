package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stafflane/backoffice-go/internal/config"
	appHTTP "github.com/stafflane/backoffice-go/internal/handler/http"
	"github.com/stafflane/backoffice-go/internal/pkg/cron"
	"github.com/stafflane/backoffice-go/internal/pkg/database"
	"github.com/stafflane/backoffice-go/internal/pkg/jwt"
	"github.com/stafflane/backoffice-go/internal/pkg/locker"
	"github.com/stafflane/backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/stafflane/backoffice-go/internal/service/attendance"
	reportService "github.com/stafflane/backoffice-go/internal/service/report"
	scheduleService "github.com/stafflane/backoffice-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}

	db, err := database.NewPostgreSQLDB(database.Config{
		DSN:      cfg.DatabaseURL(),
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftConfigRepo := postgresql.NewShiftConfigRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	shortLeaveRepo := postgresql.NewShortLeaveRepository(db)
	eventRepo := postgresql.NewEventRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	redisClient := locker.NewRedisClient(cfg.RedisAddr())
	jobLocker := locker.New(redisClient)

	policy := cfg.Attendance.Policy()
	weekendDays := cfg.Attendance.WeekendDays

	attendanceSvc := attendanceService.NewService(
		db,
		attendanceRepo,
		employeeRepo,
		shiftConfigRepo,
		leaveRepo,
		shortLeaveRepo,
		eventRepo,
		policy,
		weekendDays,
		loc,
	)
	reportSvc := reportService.NewService(
		attendanceRepo,
		employeeRepo,
		leaveRepo,
		eventRepo,
		weekendDays,
		loc,
	)
	scheduleSvc := scheduleService.NewService(shiftConfigRepo, loc)

	jobs := cron.NewAttendanceJobs(attendanceRepo, shiftConfigRepo, shortLeaveRepo, jobLocker, policy, loc)
	scheduler := cron.NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	jobsHandler := appHTTP.NewJobsHandler(jobs.Backfill)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		attendanceHandler,
		reportHandler,
		scheduleHandler,
		jobsHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
