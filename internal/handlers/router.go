package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/config"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

type HandlerManager struct {
	schoolHandler    *SchoolHandler
	yearHandler      *AcademicYearHandler
	deptHandler      *DepartmentHandler
	classHandler     *ClassHandler
	personnelHandler *PersonnelHandler
	userHandler      *UserHandler
	exportHandler    *ExportHandler

	authMiddleware *CasdoorAuthMiddleware
	evaluator      *authz.Evaluator
	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
	directory repositories.UserDirectory,
	registry *authz.Registry,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo, directory, logger)

	return &HandlerManager{
		schoolHandler:    NewSchoolHandler(serviceManager.School(), logger),
		yearHandler:      NewAcademicYearHandler(serviceManager.AcademicYear(), logger),
		deptHandler:      NewDepartmentHandler(serviceManager.Department(), logger),
		classHandler:     NewClassHandler(serviceManager.Class(), logger),
		personnelHandler: NewPersonnelHandler(serviceManager.Personnel(), logger),
		userHandler:      NewUserHandler(serviceManager.User(), logger),
		exportHandler:    NewExportHandler(serviceManager.Export(), logger),
		authMiddleware:   authMiddleware,
		evaluator:        authz.NewEvaluator(registry),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes. Permission gates answer whether the
// role may perform the operation class at all; the services re-check the
// school scope of every entity they touch.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	auth := hm.authMiddleware
	ev := hm.evaluator

	v1 := router.Group("/api/v1")
	v1.Use(auth.AuthMiddleware())
	{
		// School routes. Creation and deletion are system admin only;
		// school principals view and edit their own school.
		schools := v1.Group("/schools")
		{
			schools.POST("", auth.RequirePermission(ev, authz.PermAdminManageSchools), hm.schoolHandler.CreateSchool)
			schools.DELETE("/:id", auth.RequirePermission(ev, authz.PermAdminManageSchools), hm.schoolHandler.DeleteSchool)
			schools.GET("", auth.RequirePermission(ev, authz.PermViewSchool, authz.PermAdminManageSchools), hm.schoolHandler.ListSchools)
			schools.GET("/:id", auth.RequirePermission(ev, authz.PermViewSchool, authz.PermAdminManageSchools), auth.RequireSameSchool("id"), hm.schoolHandler.GetSchool)
			schools.PUT("/:id", auth.RequirePermission(ev, authz.PermUpdateSchool, authz.PermAdminManageSchools), auth.RequireSameSchool("id"), hm.schoolHandler.UpdateSchool)
		}

		// Academic year lifecycle routes
		years := v1.Group("/academic-years")
		{
			years.POST("", auth.RequirePermission(ev, authz.PermCreateAcademicYear, authz.PermAdminManageSchools), hm.yearHandler.CreateYear)
			years.GET("", auth.RequirePermission(ev, authz.PermViewAcademicYear, authz.PermAdminManageSchools), hm.yearHandler.ListYears)
			years.GET("/active", auth.RequirePermission(ev, authz.PermViewAcademicYear, authz.PermAdminManageSchools), hm.yearHandler.GetActiveYear)
			years.GET("/:id", auth.RequirePermission(ev, authz.PermViewAcademicYear, authz.PermAdminManageSchools), hm.yearHandler.GetYear)
			years.PUT("/:id", auth.RequirePermission(ev, authz.PermUpdateAcademicYear, authz.PermAdminManageSchools), hm.yearHandler.UpdateYear)
			years.POST("/:id/activate", auth.RequirePermission(ev, authz.PermUpdateAcademicYear, authz.PermAdminManageSchools), hm.yearHandler.ActivateYear)
			years.POST("/:id/deactivate", auth.RequirePermission(ev, authz.PermUpdateAcademicYear, authz.PermAdminManageSchools), hm.yearHandler.DeactivateYear)
			years.DELETE("/:id", auth.RequirePermission(ev, authz.PermDeleteAcademicYear, authz.PermAdminManageSchools), hm.yearHandler.DeleteYear)
		}

		// Department routes
		departments := v1.Group("/departments")
		{
			departments.POST("", auth.RequirePermission(ev, authz.PermCreateDepartment, authz.PermAdminManageSchools), hm.deptHandler.CreateDepartment)
			departments.GET("", auth.RequirePermission(ev, authz.PermViewDepartment, authz.PermAdminManageSchools), hm.deptHandler.ListDepartments)
			departments.GET("/:id", auth.RequirePermission(ev, authz.PermViewDepartment, authz.PermAdminManageSchools), hm.deptHandler.GetDepartment)
			departments.PUT("/:id", auth.RequirePermission(ev, authz.PermUpdateDepartment, authz.PermAdminManageSchools), hm.deptHandler.UpdateDepartment)
			departments.DELETE("/:id", auth.RequirePermission(ev, authz.PermDeleteDepartment, authz.PermAdminManageSchools), hm.deptHandler.DeleteDepartment)
		}

		// Class routes
		classes := v1.Group("/classes")
		{
			classes.POST("", auth.RequirePermission(ev, authz.PermCreateClass, authz.PermAdminManageSchools), hm.classHandler.CreateClass)
			classes.GET("", auth.RequirePermission(ev, authz.PermViewClass, authz.PermAdminManageSchools), hm.classHandler.ListClasses)
			classes.GET("/:id", auth.RequirePermission(ev, authz.PermViewClass, authz.PermAdminManageSchools), hm.classHandler.GetClass)
			classes.PUT("/:id", auth.RequirePermission(ev, authz.PermUpdateClass, authz.PermAdminManageSchools), hm.classHandler.UpdateClass)
			classes.DELETE("/:id", auth.RequirePermission(ev, authz.PermDeleteClass, authz.PermAdminManageSchools), hm.classHandler.DeleteClass)
		}

		// Personnel record routes
		personnel := v1.Group("/personnel")
		{
			personnel.POST("", auth.RequirePermission(ev, authz.PermCreatePersonnel, authz.PermAdminManageSchools), hm.personnelHandler.CreateRecord)
			personnel.GET("", auth.RequirePermission(ev, authz.PermViewPersonnel, authz.PermAdminManageSchools), hm.personnelHandler.ListRecords)
			personnel.GET("/:id", auth.RequirePermission(ev, authz.PermViewPersonnel, authz.PermAdminManageSchools), hm.personnelHandler.GetRecord)
			personnel.PUT("/:id", auth.RequirePermission(ev, authz.PermUpdatePersonnel, authz.PermAdminManageSchools), hm.personnelHandler.UpdateRecord)
			personnel.DELETE("/:id", auth.RequirePermission(ev, authz.PermDeletePersonnel, authz.PermAdminManageSchools), hm.personnelHandler.DeleteRecord)
		}

		// Evaluation routes
		evaluations := v1.Group("/evaluations")
		{
			evaluations.POST("", auth.RequirePermission(ev, authz.PermCreateEvaluation, authz.PermAdminManageSchools), hm.personnelHandler.CreateEvaluation)
			evaluations.GET("", auth.RequirePermission(ev, authz.PermViewEvaluation, authz.PermAdminManageSchools), hm.personnelHandler.ListEvaluations)
			evaluations.GET("/:id", auth.RequirePermission(ev, authz.PermViewEvaluation, authz.PermAdminManageSchools), hm.personnelHandler.GetEvaluation)
			evaluations.PUT("/:id", auth.RequirePermission(ev, authz.PermUpdateEvaluation, authz.PermAdminManageSchools), hm.personnelHandler.UpdateEvaluation)
			evaluations.DELETE("/:id", auth.RequirePermission(ev, authz.PermDeleteEvaluation, authz.PermAdminManageSchools), hm.personnelHandler.DeleteEvaluation)
		}

		// User routes. Reads and profile updates allow self-service; the
		// management routes need the user permissions.
		users := v1.Group("/users")
		{
			users.GET("/me", hm.userHandler.GetCurrentUser)
			users.POST("", auth.RequirePermission(ev, authz.PermCreateUser, authz.PermAdminManageUsers), hm.userHandler.CreateUser)
			users.GET("", auth.RequirePermission(ev, authz.PermViewUser, authz.PermAdminManageUsers), hm.userHandler.ListUsers)
			users.GET("/:id", auth.RequirePermissionOrOwner(ev, "id", authz.PermViewUser, authz.PermAdminManageUsers), hm.userHandler.GetUser)
			users.PUT("/:id", auth.RequirePermission(ev, authz.PermUpdateUser, authz.PermAdminManageUsers), hm.userHandler.UpdateUser)
			users.PUT("/:id/profile", auth.RequirePermissionOrOwner(ev, "id", authz.PermUpdateUser, authz.PermAdminManageUsers), hm.userHandler.UpdateProfile)
			users.DELETE("/:id", auth.RequirePermission(ev, authz.PermDeleteUser, authz.PermAdminManageUsers), hm.userHandler.DeleteUser)
		}

		// Export routes
		exports := v1.Group("/exports")
		exports.Use(auth.RequirePermission(ev, authz.PermExportReport, authz.PermAdminViewSystem))
		{
			exports.GET("/evaluations/:academic_year_id", hm.exportHandler.ExportEvaluations)
			exports.GET("/personnel", hm.exportHandler.ExportPersonnel)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "school-service",
		})
	})
}
