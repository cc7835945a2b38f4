package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/config"
	appHTTP "github.com/kriyahr/workforce-backend-go/internal/handler/http"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/cron"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/jwt"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/mailer"
	"github.com/kriyahr/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kriyahr/workforce-backend-go/internal/service/attendance"
	authService "github.com/kriyahr/workforce-backend-go/internal/service/auth"
	complianceService "github.com/kriyahr/workforce-backend-go/internal/service/compliance"
	"github.com/kriyahr/workforce-backend-go/internal/service/settings"
	taskService "github.com/kriyahr/workforce-backend-go/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)
	absenceAlertRepo := postgresql.NewAbsenceAlertRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	mail, err := mailer.New(cfg.SMTP)
	if err != nil {
		fmt.Println("Error configuring mailer:", err)
		return
	}
	if mail == nil {
		slog.Warn("SMTP is not configured, compliance notifications will be skipped")
	}

	settingsProvider := settings.NewProvider(settingRepo)

	authSvc := authService.NewService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewService(attendanceRepo)
	complianceSvc := complianceService.NewService(
		attendanceRepo,
		employeeRepo,
		holidayRepo,
		leaveRepo,
		absenceAlertRepo,
		settingsProvider,
		mail,
		txManager,
	)
	taskSvc := taskService.NewService(taskRepo, employeeRepo, mail)

	if cfg.Scheduler.Enabled {
		loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
		if err != nil {
			fmt.Println("Error loading scheduler timezone:", err)
			return
		}
		scheduler := cron.NewScheduler(loc)
		jobs := cron.NewComplianceJobs(complianceSvc, taskSvc)
		if err := jobs.RegisterJobs(scheduler); err != nil {
			fmt.Println("Error registering scheduler jobs:", err)
			return
		}
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		slog.Info("Scheduler is disabled, compliance jobs will not run")
	}

	authHandler := appHTTP.NewAuthHandler(authSvc)
	settingHandler := appHTTP.NewSettingHandler(settingsProvider)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidayRepo)

	router := appHTTP.NewRouter(jwtService, authHandler, settingHandler, attendanceHandler, holidayHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	log.Fatal(http.ListenAndServe(addr, router))
}
