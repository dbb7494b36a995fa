package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"hrms/config"
	"hrms/config/middleware"
	_ "hrms/docs"
	"hrms/handlers"
	"hrms/pkg/paseto"
	"hrms/repository"
)

// SetupRoutes wires every repository, handler and middleware onto the
// Fiber app.
func SetupRoutes(app *fiber.App, db *config.Database, cfg *config.AppConfig, tokenMaker *paseto.Maker) {
	log.Println("Registering application routes...")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)
	performanceRepo := repository.NewPerformanceRepository(db)
	recruitmentRepo := repository.NewRecruitmentRepository(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, employeeRepo, tokenMaker)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, employeeRepo)
	leaveHandler := handlers.NewLeaveHandler(leaveRepo, employeeRepo)
	payrollHandler := handlers.NewPayrollHandler(payrollRepo, attendanceRepo, employeeRepo)
	performanceHandler := handlers.NewPerformanceHandler(performanceRepo, employeeRepo)
	recruitmentHandler := handlers.NewRecruitmentHandler(recruitmentRepo)
	calendarHandler := handlers.NewCalendarHandler(cfg.WorkdayRule)

	authRequired := middleware.AuthMiddleware(tokenMaker, userRepo)
	hrStaff := middleware.RoleMiddleware("admin", "hr")
	managerial := middleware.RoleMiddleware("admin", "hr", "manager")

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HRMS API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")

	// Authentication
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authRequired, authHandler.Me)
	authGroup.Put("/change-password", authRequired, authHandler.ChangePassword)

	// Employees
	employeeGroup := api.Group("/employees", authRequired)
	employeeGroup.Get("/", employeeHandler.GetAllEmployees)
	employeeGroup.Get("/department/:department", employeeHandler.GetEmployeesByDepartment)
	employeeGroup.Get("/:id", employeeHandler.GetEmployeeByID)
	employeeGroup.Post("/", hrStaff, employeeHandler.CreateEmployee)
	employeeGroup.Put("/:id", hrStaff, employeeHandler.UpdateEmployee)
	employeeGroup.Delete("/:id", middleware.AdminMiddleware(), employeeHandler.DeleteEmployee)

	// Attendance
	attendanceGroup := api.Group("/attendance", authRequired)
	attendanceGroup.Post("/checkin", attendanceHandler.CheckIn)
	attendanceGroup.Post("/checkout", attendanceHandler.CheckOut)
	attendanceGroup.Post("/scan", attendanceHandler.ScanQRCode)
	attendanceGroup.Get("/today", attendanceHandler.GetToday)
	attendanceGroup.Get("/user/:id", attendanceHandler.GetHistory)
	attendanceGroup.Get("/report", managerial, attendanceHandler.GetReport)
	attendanceGroup.Get("/qrcode", hrStaff, attendanceHandler.GenerateQRCode)

	// Leaves
	leaveGroup := api.Group("/leaves", authRequired)
	leaveGroup.Post("/", leaveHandler.ApplyLeave)
	leaveGroup.Get("/user/:id", leaveHandler.GetEmployeeLeaves)
	leaveGroup.Get("/pending", managerial, leaveHandler.GetPendingLeaves)
	leaveGroup.Put("/:id/approve", managerial, leaveHandler.ApproveLeave)
	leaveGroup.Put("/:id/reject", managerial, leaveHandler.RejectLeave)
	leaveGroup.Put("/:id/cancel", leaveHandler.CancelLeave)
	leaveGroup.Get("/balance/:id", leaveHandler.GetLeaveBalance)

	// Payroll
	payrollGroup := api.Group("/payroll", authRequired)
	payrollGroup.Post("/calculate", hrStaff, payrollHandler.CalculatePayroll)
	payrollGroup.Post("/generate", hrStaff, payrollHandler.GeneratePayroll)
	payrollGroup.Put("/:id", hrStaff, payrollHandler.UpdatePayroll)
	payrollGroup.Get("/employee/:id", payrollHandler.GetEmployeePayrolls)
	payrollGroup.Get("/monthly/:month/:year", hrStaff, payrollHandler.GetMonthlyPayrolls)

	// Performance
	performanceGroup := api.Group("/performance", authRequired)
	performanceGroup.Post("/evaluation", managerial, performanceHandler.CreateEvaluation)
	performanceGroup.Get("/pending/all", managerial, performanceHandler.GetPendingEvaluations)
	performanceGroup.Get("/employee/:id", performanceHandler.GetEmployeeEvaluations)
	performanceGroup.Get("/analytics/:id", performanceHandler.GetAnalytics)
	performanceGroup.Get("/:id", performanceHandler.GetEvaluation)
	performanceGroup.Put("/:id", managerial, performanceHandler.UpdateEvaluation)
	performanceGroup.Put("/:id/acknowledge", performanceHandler.AcknowledgeEvaluation)

	// Recruitment. Job listings and applications are public so candidates
	// can browse and apply without an account.
	recruitmentGroup := api.Group("/recruitment")
	recruitmentGroup.Get("/jobs", recruitmentHandler.GetJobs)
	recruitmentGroup.Get("/jobs/:id", recruitmentHandler.GetJobByID)
	recruitmentGroup.Post("/jobs", authRequired, hrStaff, recruitmentHandler.CreateJob)
	recruitmentGroup.Put("/jobs/:id", authRequired, hrStaff, recruitmentHandler.UpdateJob)
	recruitmentGroup.Delete("/jobs/:id", authRequired, middleware.AdminMiddleware(), recruitmentHandler.DeleteJob)
	recruitmentGroup.Post("/applications", recruitmentHandler.SubmitApplication)
	recruitmentGroup.Get("/applications/:jobId", authRequired, managerial, recruitmentHandler.GetApplications)
	recruitmentGroup.Put("/applications/:jobId/:appId", authRequired, managerial, recruitmentHandler.UpdateApplication)
	recruitmentGroup.Post("/applications/:jobId/:appId/interview", authRequired, managerial, recruitmentHandler.ScheduleInterview)

	// Calendar
	api.Get("/calendar/workdays", authRequired, calendarHandler.GetWorkdays)

	log.Println("All application routes registered.")
	log.Println("Swagger documentation available at: /docs/index.html")
}
