package main

import (
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"smartclinic/cmd/internal/cache"
	"smartclinic/cmd/internal/config"
	"smartclinic/cmd/internal/domain/sqlite"
	"smartclinic/cmd/internal/domain/sqlite/repository"
	"smartclinic/cmd/internal/routes"
	"smartclinic/cmd/internal/service"
	"smartclinic/cmd/internal/utils/validators"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	err := godotenv.Load()
	if err != nil {
		log.Fatal("failed to load .env file", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("failed to load configuration", err)
	}

	// Init SQLite
	db, err := sqlite.Init(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Availability cache is optional; services take a nil cache to mean off.
	var availability *cache.AvailabilityCache
	if cfg.Cache.Enabled {
		availability, err = cache.NewAvailabilityCache(cfg.Cache.Size)
		if err != nil {
			log.Fatal("failed to initialize availability cache", err)
		}
	}

	// Getting repositories
	adminRepo := repository.NewAdminRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Getting services
	tokenService := service.NewTokenService(adminRepo, doctorRepo, patientRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	adminService := service.NewAdminService(adminRepo, tokenService, validate)
	doctorService := service.NewDoctorService(doctorRepo, apptRepo, uow, tokenService, validate, availability)
	patientService := service.NewPatientService(patientRepo, apptRepo, tokenService, validate)
	apptService := service.NewAppointmentService(apptRepo, doctorRepo, patientRepo, uow, validate, availability)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, validate)

	// Getting routes
	adminRoutes := routes.NewAdminDefault(adminService)
	doctorRoutes := routes.NewDoctorDefault(doctorService, tokenService)
	patientRoutes := routes.NewPatientDefault(patientService, tokenService)
	apptRoutes := routes.NewAppointmentDefault(apptService, tokenService)
	prescriptionRoutes := routes.NewPrescriptionDefault(prescriptionService, apptService, tokenService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Admin
	e.POST("/api/admin/login", adminRoutes.Login)

	// Doctors
	e.GET("/api/doctors", doctorRoutes.GetDoctors)
	e.GET("/api/doctors/filter", doctorRoutes.Filter)
	e.GET("/api/doctors/:id/availability", doctorRoutes.GetAvailability)
	e.POST("/api/doctors", doctorRoutes.CreateDoctor)
	e.PUT("/api/doctors", doctorRoutes.UpdateDoctor)
	e.DELETE("/api/doctors/:id", doctorRoutes.DeleteDoctor)
	e.POST("/api/doctors/login", doctorRoutes.Login)

	// Patients
	e.POST("/api/patients", patientRoutes.Register)
	e.POST("/api/patients/login", patientRoutes.Login)
	e.GET("/api/patients/me", patientRoutes.GetDetails)
	e.GET("/api/patients/me/appointments", patientRoutes.GetOwnAppointments)
	e.GET("/api/patients/:id/appointments", patientRoutes.GetPatientAppointments)

	// Appointments
	e.GET("/api/appointments", apptRoutes.GetAppointments)
	e.POST("/api/appointments", apptRoutes.BookAppointment)
	e.PUT("/api/appointments/:id", apptRoutes.UpdateAppointment)
	e.DELETE("/api/appointments/:id", apptRoutes.CancelAppointment)
	e.PUT("/api/appointments/:id/status/:status", apptRoutes.ChangeStatus)

	// Prescriptions
	e.POST("/api/prescriptions", prescriptionRoutes.SavePrescription)
	e.GET("/api/prescriptions/:appointmentId", prescriptionRoutes.GetPrescription)

	err = e.Start(":" + cfg.HTTP.Port)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("slotlabel", validators.IsSlotLabel)
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
	_ = validate.RegisterValidation("digits", validators.IsDigits)
}
