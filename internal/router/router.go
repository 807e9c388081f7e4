package router

import (
	"time"

	"github.com/redis/go-redis/v9"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/middleware"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/repository/postgres/attendance"
	"hrportal/backend/internal/repository/postgres/employee"
	"hrportal/backend/internal/repository/postgres/leave"
	"hrportal/backend/internal/repository/postgres/user"
	"hrportal/backend/internal/service"
	"hrportal/backend/internal/service/activity"
	attendance_service "hrportal/backend/internal/service/attendance"
	"hrportal/backend/internal/service/identity"
	leave_service "hrportal/backend/internal/service/leave"

	attendance_controller "hrportal/backend/internal/controller/http/v1/attendance"
	auth_controller "hrportal/backend/internal/controller/http/v1/auth"
	dashboard_controller "hrportal/backend/internal/controller/http/v1/dashboard"
	employee_controller "hrportal/backend/internal/controller/http/v1/employee"
	file_controller "hrportal/backend/internal/controller/http/v1/file"
	leave_controller "hrportal/backend/internal/controller/http/v1/leave"
	profile_controller "hrportal/backend/internal/controller/http/v1/profile"
)

type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	redisDB        *redis.Client
	auth           *auth.Auth
	uploadsDir     string
	allowedOrigins []string
	maxUploadBytes int64
	now            func() time.Time
}

// NewRouter creates a Router. now decides the current instant and the
// location work days are cut in.
func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	auth *auth.Auth,
	uploadsDir string,
	allowedOrigins []string,
	maxUploadBytes int64,
	now func() time.Time,
) *Router {
	if maxUploadBytes <= 0 {
		maxUploadBytes = service.MaxImageBytes
	}

	return &Router{
		App:            app,
		postgresDB:     postgresDB,
		redisDB:        redisDB,
		auth:           auth,
		uploadsDir:     uploadsDir,
		allowedOrigins: allowedOrigins,
		maxUploadBytes: maxUploadBytes,
		now:            now,
	}
}

// Init registers every route on the application.
func (r Router) Init() {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware(r.allowedOrigins))

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	employeePostgres := employee.NewRepository(r.postgresDB)
	leavePostgres := leave.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB)

	// - services
	identityService := identity.NewResolver(employeePostgres)
	attendanceService := attendance_service.NewLedger(attendancePostgres, r.now)
	leaveService := leave_service.NewLedger(leavePostgres, r.now)
	activityService := activity.NewFeed(leavePostgres, attendancePostgres, r.now)

	// controller
	authController := auth_controller.NewController(userPostgres, r.auth)
	employeeController := employee_controller.NewController(employeePostgres)
	dashboardController := dashboard_controller.NewController(employeePostgres, leaveService, attendanceService,
		attendancePostgres, activityService, identityService, r.now)
	leaveController := leave_controller.NewController(leaveService, identityService)
	attendanceController := attendance_controller.NewController(attendanceService, employeePostgres, identityService)
	profileController := profile_controller.NewController(employeePostgres, userPostgres, identityService, r.uploadsDir, r.now)
	fileController := file_controller.NewController(r.uploadsDir)

	anyone := middleware.Authenticate(r.auth)
	admin := middleware.Authenticate(r.auth, auth.RoleAdmin)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)
	r.Post("/api/v1/sign-out", authController.SignOut, anyone)
	r.Post("/api/v1/password/reset", authController.ResetPassword, admin)

	r.GET("/media/*filepath", fileController.File)
	r.HEAD("/media/*filepath", fileController.File)

	// #dashboard
	r.Get("/api/v1/dashboard/admin", dashboardController.Admin, admin)
	r.Get("/api/v1/dashboard/employee", dashboardController.Employee, anyone)

	// #employee
	r.Post("/api/v1/employee/create", employeeController.Create, admin)
	r.Get("/api/v1/employee/list", employeeController.GetList, admin)
	r.Get("/api/v1/employee/export", employeeController.Export, admin)
	r.Post("/api/v1/employee/import", employeeController.Import, admin)
	r.Get("/api/v1/employee/qrcode", employeeController.GetQrCode, admin)

	// #leave
	r.Post("/api/v1/leave/apply", leaveController.Apply, anyone)
	r.Get("/api/v1/leave/my", leaveController.GetMyList, anyone)
	r.Get("/api/v1/leave/pending", leaveController.GetPendingList, admin)
	r.Post("/api/v1/leave/:id/approve", leaveController.Approve, admin)
	r.Post("/api/v1/leave/:id/reject", leaveController.Reject, admin)

	// #attendance
	r.Post("/api/v1/attendance", attendanceController.Mark, anyone)
	r.Get("/api/v1/attendance/:month/:year", attendanceController.GetMonth, anyone)
	r.Get("/api/v1/report/attendance/:month/:year", attendanceController.GetReport, anyone)

	// #profile
	r.Patch("/api/v1/profile", profileController.Update, anyone)
	r.Post("/api/v1/profile/password", profileController.ChangePassword, anyone)
	r.Post("/api/v1/profile/image", profileController.UploadImage, middleware.MaxBodySize(r.maxUploadBytes), anyone)
}
