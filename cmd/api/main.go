package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/nexushr/workforce-backend-go/internal/config"
	appHTTP "github.com/nexushr/workforce-backend-go/internal/handler/http"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
	"github.com/nexushr/workforce-backend-go/internal/repository/postgresql"
	approvalService "github.com/nexushr/workforce-backend-go/internal/service/approval"
	attendanceService "github.com/nexushr/workforce-backend-go/internal/service/attendance"
	fundService "github.com/nexushr/workforce-backend-go/internal/service/fund"
	geofenceService "github.com/nexushr/workforce-backend-go/internal/service/geofence"
	leaveService "github.com/nexushr/workforce-backend-go/internal/service/leave"
	payrollService "github.com/nexushr/workforce-backend-go/internal/service/payroll"
	punchService "github.com/nexushr/workforce-backend-go/internal/service/punch"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	geofenceRepo := postgresql.NewGeofenceConfigRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	statusLogRepo := postgresql.NewStatusChangeLogRepository(db)
	leaveAppRepo := postgresql.NewLeaveApplicationRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	fundsRepo := postgresql.NewFundsRepository(db)
	fundTxnRepo := postgresql.NewFundTransactionRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	seq := postgresql.NewSequenceGenerator(db)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	geofenceValidator := geofenceService.NewValidator(geofenceRepo, cfg.Geofence)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		statusLogRepo,
		punchRepo,
		breakRepo,
		employeeRepo,
		holidayRepo,
		seq,
		cfg.Attendance,
	)
	punchSvc := punchService.NewPunchService(
		db,
		punchRepo,
		breakRepo,
		employeeRepo,
		attendanceRepo,
		attendanceSvc,
		geofenceValidator,
		seq,
		cfg.Attendance,
	)
	leaveSvc := leaveService.NewLeaveService(
		db,
		leaveAppRepo,
		leaveBalanceRepo,
		attendanceRepo,
		employeeRepo,
		holidayRepo,
		seq,
	)
	approvalSvc := approvalService.NewApprovalService(
		db,
		approvalRepo,
		attendanceRepo,
		employeeRepo,
		attendanceSvc,
		seq,
	)
	payrollSvc := payrollService.NewPayrollService(
		db,
		salaryRepo,
		approvalRepo,
		attendanceRepo,
		employeeRepo,
		fundsRepo,
		fundTxnRepo,
		seq,
		cfg.Payroll,
	)
	fundSvc := fundService.NewFundService(
		db,
		fundsRepo,
		fundTxnRepo,
		expenseRepo,
		projectRepo,
		salaryRepo,
		seq,
	)

	punchHandler := appHTTP.NewPunchHandler(punchSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	approvalHandler := appHTTP.NewApprovalHandler(approvalSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	fundHandler := appHTTP.NewFundHandler(fundSvc)

	router := appHTTP.NewRouter(
		cfg,
		tokenAuth,
		punchHandler,
		attendanceHandler,
		leaveHandler,
		approvalHandler,
		payrollHandler,
		fundHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
