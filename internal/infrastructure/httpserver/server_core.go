package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/internal/core/ports"
	customMiddleware "github.com/talentfold/hr-portal/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	AuthService        ports.AuthService
	EmployeeService    ports.EmployeeService
	DepartmentService  ports.DepartmentService
	TimesheetService   ports.TimesheetService
	LeaveService       ports.LeaveService
	SettingsService    ports.SettingsService
	AuditService       ports.AuditService
	RateLimiterService ports.RateLimiterService
	HolidayProvider    ports.HolidayProvider
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	authSvc        ports.AuthService
	employeeSvc    ports.EmployeeService
	departmentSvc  ports.DepartmentService
	timesheetSvc   ports.TimesheetService
	leaveSvc       ports.LeaveService
	settingsSvc    ports.SettingsService
	auditSvc       ports.AuditService
	holidays       ports.HolidayProvider
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		authSvc:        deps.AuthService,
		employeeSvc:    deps.EmployeeService,
		departmentSvc:  deps.DepartmentService,
		timesheetSvc:   deps.TimesheetService,
		leaveSvc:       deps.LeaveService,
		settingsSvc:    deps.SettingsService,
		auditSvc:       deps.AuditService,
		holidays:       deps.HolidayProvider,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
