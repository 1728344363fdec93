package httpserver

import (
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
)

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")
	auth := api.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/refresh", s.refreshToken)

	protected := api.Group("")
	protected.Use(s.middleware.JWT.RequireJWT())
	protected.Use(s.middleware.RateLimit.Handler())

	protected.POST("/auth/logout", s.logout)
	protected.POST("/auth/password", s.changePassword)

	manage := s.middleware.JWT.RequireRole(employee.RoleAdmin, employee.RoleManager)
	adminOnly := s.middleware.JWT.RequireRole(employee.RoleAdmin)

	employees := protected.Group("/employees")
	employees.GET("/me", s.getOwnProfile)
	employees.GET("", s.listEmployees, manage)
	employees.POST("", s.createEmployee, adminOnly)
	employees.GET("/:id", s.getEmployee, manage)
	employees.PUT("/:id", s.updateEmployee, adminOnly)
	employees.DELETE("/:id", s.deactivateEmployee, adminOnly)
	employees.POST("/sync", s.syncDirectory, adminOnly)

	departments := protected.Group("/departments")
	departments.GET("", s.listDepartments)
	departments.POST("", s.createDepartment, adminOnly)
	departments.GET("/:id", s.getDepartment)
	departments.PUT("/:id", s.updateDepartment, adminOnly)
	departments.DELETE("/:id", s.deleteDepartment, adminOnly)

	timesheets := protected.Group("/timesheets")
	timesheets.GET("", s.listOwnTimesheets)
	timesheets.PUT("", s.upsertTimesheet)
	timesheets.GET("/pending", s.listPendingTimesheets, manage)
	timesheets.GET("/:id", s.getTimesheet)
	timesheets.POST("/:id/submit", s.submitTimesheet)
	timesheets.POST("/:id/decide", s.decideTimesheet, manage)

	leaves := protected.Group("/leaves")
	leaves.GET("", s.listOwnLeaves)
	leaves.POST("", s.createLeaveRequest)
	leaves.GET("/pending", s.listPendingLeaves, manage)
	leaves.GET("/holidays", s.getHolidays)
	leaves.GET("/:id", s.getLeaveRequest)
	leaves.POST("/:id/decide", s.decideLeaveRequest, manage)
	leaves.POST("/:id/cancel", s.cancelLeaveRequest)

	settings := protected.Group("/settings")
	settings.GET("", s.listSettings)
	settings.GET("/:key", s.getSetting)
	settings.PUT("/:key", s.upsertSetting, adminOnly)
	settings.DELETE("/:key", s.deleteSetting, adminOnly)

	auditGroup := protected.Group("/audit")
	auditGroup.GET("/logs", s.getAuditLogs, adminOnly)

	protected.GET("/events", s.streamEvents, manage)
}
