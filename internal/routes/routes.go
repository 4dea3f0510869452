package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	authControllers "github.com/ophthalmoai/saas-backend/internal/auth/controllers"
	authServices "github.com/ophthalmoai/saas-backend/internal/auth/services"
	"github.com/ophthalmoai/saas-backend/internal/common/middlewares"
	masterControllers "github.com/ophthalmoai/saas-backend/internal/master/controllers"
	masterServices "github.com/ophthalmoai/saas-backend/internal/master/services"
	patientControllers "github.com/ophthalmoai/saas-backend/internal/patients/controllers"
	patientServices "github.com/ophthalmoai/saas-backend/internal/patients/services"
	reportingControllers "github.com/ophthalmoai/saas-backend/internal/reporting/controllers"
	reportingServices "github.com/ophthalmoai/saas-backend/internal/reporting/services"
	"github.com/ophthalmoai/saas-backend/pkg/utils"
	"github.com/ophthalmoai/saas-backend/ws"
)

// Init wires services, controllers and route groups.
func Init(e *echo.Echo, db *sql.DB) {
	authService := authServices.NewAuthService(db)
	patientService := patientServices.NewPatientService(db)
	lookupService := patientServices.NewLookupService(db)
	reportingService := reportingServices.NewReportingService(db)
	masterService := masterServices.NewMasterService(db)
	settingsService := masterServices.NewSettingsService(db)

	authController := authControllers.NewAuthController(authService)
	patientController := patientControllers.NewPatientController(patientService, lookupService)
	reportingController := reportingControllers.NewReportingController(reportingService)
	masterController := masterControllers.NewMasterController(masterService)
	settingsController := masterControllers.NewSettingsController(settingsService)

	api := e.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.POST("/login", authController.Login) // no JWT
	auth.GET("/menu", authController.Menu, middlewares.JWTMiddleware())

	// Patients (hospital scoped, any logged-in hospital role)
	patients := api.Group("/patients", middlewares.JWTMiddleware(),
		middlewares.RequireRole(utils.RoleHospitalAdmin, utils.RoleStaff))
	patients.POST("", patientController.Create)
	patients.GET("", patientController.List)
	patients.PUT("/convert", patientController.Convert)
	patients.GET("/export", patientController.ExportRoster)
	patients.GET("/pending", patientController.Pending)
	patients.GET("/pending/export", patientController.ExportPending)
	patients.GET("/masterdata", patientController.Masterdata)

	// Reporting
	reports := api.Group("/reports", middlewares.JWTMiddleware(),
		middlewares.RequireRole(utils.RoleHospitalAdmin, utils.RoleStaff))
	reports.GET("/dashboard", reportingController.Dashboard)
	reports.GET("/conversion", reportingController.Conversion)
	reports.GET("/doctors", reportingController.Doctors)
	reports.GET("/demographics", reportingController.Demographics)
	reports.GET("/revenue", reportingController.Revenue,
		middlewares.RequireRole(utils.RoleHospitalAdmin))

	// Master control panel
	master := api.Group("/master", middlewares.JWTMiddleware(),
		middlewares.RequireRole(utils.RoleMaster))
	master.POST("/hospitals", masterController.CreateHospital)
	master.GET("/hospitals", masterController.ListHospitals)
	master.PUT("/hospitals/toggle", masterController.ToggleSubscription)
	master.POST("/admins", masterController.CreateHospitalAdmin)

	// Hospital settings and master data
	settings := api.Group("/settings", middlewares.JWTMiddleware(),
		middlewares.RequireRole(utils.RoleMaster, utils.RoleHospitalAdmin))
	settings.GET("/hospital", settingsController.GetHospital)
	settings.PUT("/hospital", settingsController.UpdateHospital)
	settings.GET("/doctors", settingsController.ListDoctors)
	settings.POST("/doctors", settingsController.AddDoctor)
	settings.DELETE("/doctors", settingsController.DeleteDoctor)
	settings.GET("/counsellors", settingsController.ListCounsellors)
	settings.POST("/counsellors", settingsController.AddCounsellor)
	settings.DELETE("/counsellors", settingsController.DeleteCounsellor)
	settings.GET("/procedures", settingsController.ListProcedures)
	settings.POST("/procedures", settingsController.AddProcedure)
	settings.DELETE("/procedures", settingsController.DeleteProcedure)
	settings.GET("/iols", settingsController.ListIOLTypes)
	settings.POST("/iols", settingsController.AddIOLType)
	settings.DELETE("/iols", settingsController.DeleteIOLType)

	// Live refresh feed
	api.GET("/ws", ws.ServeWS(ws.HubInstance))
}
