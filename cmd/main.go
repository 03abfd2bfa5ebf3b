package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/cancel_appointment"
	checkBookingHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/check_booking"
	completeAppointmentHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/get_available_slots"
	getMentorHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/get_mentor"
	getMentorsHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/get_mentors"
	getMentorAppointmentsHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/get_mentor_appointments"
	getStudentAppointmentsHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/get_student_appointments"
	replaceAvailabilityHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/replace_availability"
	upsertMentorHandler "github.com/m04kA/SMC-MentorBookingService/internal/api/handlers/upsert_mentor"
	"github.com/m04kA/SMC-MentorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorBookingService/internal/config"
	"github.com/m04kA/SMC-MentorBookingService/internal/infra/migrations"
	appointmentRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/availability"
	mentorRepo "github.com/m04kA/SMC-MentorBookingService/internal/infra/storage/mentor"
	userServiceClient "github.com/m04kA/SMC-MentorBookingService/internal/integrations/userservice"
	appointmentsService "github.com/m04kA/SMC-MentorBookingService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-MentorBookingService/internal/service/availability"
	mentorsService "github.com/m04kA/SMC-MentorBookingService/internal/service/mentors"
	checkBookingUC "github.com/m04kA/SMC-MentorBookingService/internal/usecase/check_booking"
	createAppointmentUC "github.com/m04kA/SMC-MentorBookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-MentorBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MentorBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorBookingService/pkg/logger"
	"github.com/m04kA/SMC-MentorBookingService/pkg/metrics"
	"github.com/m04kA/SMC-MentorBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log = log.With("service", cfg.Metrics.ServiceName)
	defer log.Close()

	log.Info("Starting SMC-MentorBookingService...")
	log.Info("Configuration loaded from %s (default timezone=%s)", configPath, cfg.Booking.DefaultTimezone)

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Migrations.Enabled {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории и менеджер транзакций
	mentorRepository := mentorRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB).WithMaxRetries(cfg.Booking.SerializableRetries)

	// Инициализируем сервисы
	mentorSvc := mentorsService.NewService(mentorRepository, cfg.Booking.DefaultTimezone, log)
	availabilitySvc := availabilityService.NewService(mentorRepository, availabilityRepository, txMgr, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		mentorRepository,
		availabilityRepository,
		appointmentRepository,
		getAvailableSlotsUC.Config{
			DefaultTimezone:        cfg.Booking.DefaultTimezone,
			DefaultDurationMinutes: cfg.Booking.DefaultDurationMinutes,
			AdvanceBookingDays:     cfg.Booking.AdvanceBookingDays,
			MinNoticeMinutes:       cfg.Booking.MinNoticeMinutes,
		},
		log,
	)

	checkBookingUseCase := checkBookingUC.NewUseCase(
		mentorRepository,
		availabilityRepository,
		appointmentRepository,
		metricsCollector,
		checkBookingUC.Config{
			DefaultTimezone:        cfg.Booking.DefaultTimezone,
			DefaultDurationMinutes: cfg.Booking.DefaultDurationMinutes,
		},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		mentorRepository,
		availabilityRepository,
		appointmentRepository,
		userClient,
		txMgr,
		metricsCollector,
		createAppointmentUC.Config{
			DefaultTimezone:        cfg.Booking.DefaultTimezone,
			DefaultDurationMinutes: cfg.Booking.DefaultDurationMinutes,
			AdvanceBookingDays:     cfg.Booking.AdvanceBookingDays,
			MinNoticeMinutes:       cfg.Booking.MinNoticeMinutes,
		},
		log,
	)

	// Инициализируем handlers
	getMentors := getMentorsHandler.NewHandler(mentorSvc, log)
	getMentor := getMentorHandler.NewHandler(mentorSvc, log)
	upsertMentor := upsertMentorHandler.NewHandler(mentorSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	replaceAvailability := replaceAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkBooking := checkBookingHandler.NewHandler(checkBookingUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	getMentorAppointments := getMentorAppointmentsHandler.NewHandler(appointmentSvc, log)
	getStudentAppointments := getStudentAppointmentsHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/mentors", getMentors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}", getMentor.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}/booking-check", checkBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Профиль и расписание ментора ---
	protected.HandleFunc("/mentors/{mentorId}", upsertMentor.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/mentors/{mentorId}/availability", replaceAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/mentors/{mentorId}/appointments", getMentorAppointments.Handle).Methods(http.MethodGet)

	// --- Встречи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/students/{studentId}/appointments", getStudentAppointments.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
