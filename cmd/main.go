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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	adminLoginHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/admin_login"
	changeAppointmentStatusHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/change_appointment_status"
	createAppointmentHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/create_appointment"
	createClientHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/create_client"
	createShiftHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/create_shift"
	deleteShiftHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/delete_shift"
	getAppointmentHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_appointment"
	getAvailabilityRulesHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_availability_rules"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_available_slots"
	listAppointmentsHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/list_appointments"
	listClientsHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/list_clients"
	listShiftsHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/list_shifts"
	lookupClientHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/lookup_client"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBooking/internal/availability"
	"github.com/m04kA/SMC-CleaningBooking/internal/config"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	availabilityCache "github.com/m04kA/SMC-CleaningBooking/internal/infra/cache/availability"
	adminRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/admin"
	appointmentRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/client"
	shiftRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/shift"
	appointmentsService "github.com/m04kA/SMC-CleaningBooking/internal/service/appointments"
	authService "github.com/m04kA/SMC-CleaningBooking/internal/service/auth"
	clientsService "github.com/m04kA/SMC-CleaningBooking/internal/service/clients"
	shiftsService "github.com/m04kA/SMC-CleaningBooking/internal/service/shifts"
	createAppointmentUC "github.com/m04kA/SMC-CleaningBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
	"github.com/m04kA/SMC-CleaningBooking/pkg/metrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/txmanager"
)

// slotsCache общий интерфейс RedisCache и NopCache
type slotsCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, date time.Time, minutes int) ([]domain.Slot, bool, error)
	Set(ctx context.Context, gen int64, date time.Time, minutes int, slots []domain.Slot) error
	Invalidate(ctx context.Context) error
}

// bookingMetrics метрики, которые пишут usecases
type bookingMetrics interface {
	ObserveAvailability(slots int, cached bool, duration time.Duration)
	IncBookingConflict()
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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
	defer log.Close()

	log.Info("Starting SMC-CleaningBooking...")

	// Метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		ucMetrics        bookingMetrics = metrics.Nop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		ucMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// При выключенных метриках обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кеш свободных слотов
	var cache slotsCache = availabilityCache.NopCache{}
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			// Без кеша сервис работает, просто считает слоты на каждый запрос
			log.Warn("Redis unavailable at %s, availability cache disabled: %v", cfg.Cache.Addr, err)
		} else {
			cache = availabilityCache.NewRedisCache(redisClient, cfg.Cache.TTL())
			log.Info("Availability cache enabled (redis=%s, ttl=%s)", cfg.Cache.Addr, cfg.Cache.TTL())
		}
	}

	// Репозитории
	shiftRepository := shiftRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	adminRepository := adminRepo.NewRepository(wrappedDB)

	// Движок свободных слотов
	engine, err := availability.NewEngine(availability.Rules{
		TravelBufferMinutes: cfg.Availability.TravelBufferMinutes,
		StepMinutes:         cfg.Availability.StepMinutes,
		AnchorMinMinutes:    cfg.Availability.AnchorMinMinutes,
		IgnoreShiftEdgeGaps: cfg.Availability.IgnoreShiftEdgeGaps,
	})
	if err != nil {
		log.Fatal("Invalid availability rules: %v", err)
	}
	log.Info("Availability engine: buffer=%dm, step=%dm, anchor=%dm, ignore_shift_edge_gaps=%t",
		cfg.Availability.TravelBufferMinutes, cfg.Availability.StepMinutes,
		cfg.Availability.AnchorMinMinutes, cfg.Availability.IgnoreShiftEdgeGaps)

	// Сервисы
	shiftSvc := shiftsService.NewService(shiftRepository, appointmentRepository, cache, txMgr, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, cache, txMgr, log)
	clientSvc := clientsService.NewService(clientRepository, log)
	authSvc := authService.NewService(adminRepository, authService.Config{
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: cfg.Auth.TokenTTL(),
		Issuer:   cfg.Auth.Issuer,
	}, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		shiftRepository,
		appointmentRepository,
		engine,
		cache,
		txMgr,
		ucMetrics,
		cfg.Availability.LookaheadDays,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		shiftRepository,
		clientRepository,
		engine,
		cache,
		txMgr,
		ucMetrics,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailabilityRules := getAvailabilityRulesHandler.NewHandler(getAvailableSlotsUseCase)
	createClient := createClientHandler.NewHandler(clientSvc, log)
	lookupClient := lookupClientHandler.NewHandler(clientSvc, log)
	listClients := listClientsHandler.NewHandler(clientSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := changeAppointmentStatusHandler.NewHandler(appointmentSvc, changeAppointmentStatusHandler.ActionConfirm, log)
	cancelAppointment := changeAppointmentStatusHandler.NewHandler(appointmentSvc, changeAppointmentStatusHandler.ActionCancel, log)
	completeAppointment := changeAppointmentStatusHandler.NewHandler(appointmentSvc, changeAppointmentStatusHandler.ActionComplete, log)
	listShifts := listShiftsHandler.NewHandler(shiftSvc, log)
	createShift := createShiftHandler.NewHandler(shiftSvc, log)
	deleteShift := deleteShiftHandler.NewHandler(shiftSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)

	// Лимит на публичные POST
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			cfg.RateLimit.IdleTTL(),
			cfg.RateLimit.TrustForwarded,
		)
		limit = rateLimiter.LimitFunc
		log.Info("Rate limiting enabled: %.2f req/s, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Свободные слоты и параметры их расчёта
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/rules", getAvailabilityRules.Handle).Methods(http.MethodGet)

	// Клиенты: анкета из калькулятора и поиск вернувшегося клиента
	api.Handle("/clients", limit(createClient.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/clients/lookup", lookupClient.Handle).Methods(http.MethodGet)

	// Запись на уборку
	api.Handle("/appointments", limit(createAppointment.Handle)).Methods(http.MethodPost)

	// Вход администратора
	api.Handle("/admin/login", limit(adminLogin.Handle)).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(authSvc, log))

	// --- Смены ---
	admin.HandleFunc("/shifts", listShifts.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/shifts", createShift.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/shifts/{shiftId:[0-9]+}", deleteShift.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId:[0-9]+}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId:[0-9]+}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Клиенты ---
	admin.HandleFunc("/clients", listClients.Handle).Methods(http.MethodGet)

	// CORS для фронтенда
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
