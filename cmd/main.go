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

	createReservationHandler "github.com/golfops/GP-TeeSheetService/internal/api/handlers/create_reservation"
	destroyReservationHandler "github.com/golfops/GP-TeeSheetService/internal/api/handlers/destroy_reservation"
	getReservationHandler "github.com/golfops/GP-TeeSheetService/internal/api/handlers/get_reservation"
	getTeeSheetHandler "github.com/golfops/GP-TeeSheetService/internal/api/handlers/get_tee_sheet"
	updateReservationHandler "github.com/golfops/GP-TeeSheetService/internal/api/handlers/update_reservation"
	"github.com/golfops/GP-TeeSheetService/internal/api/middleware"
	"github.com/golfops/GP-TeeSheetService/internal/config"
	courseRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/course"
	golferRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/golfer"
	propertyRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/property"
	reservationRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/reservation"
	cloverClient "github.com/golfops/GP-TeeSheetService/internal/integrations/clover"
	weatherClient "github.com/golfops/GP-TeeSheetService/internal/integrations/weather"
	golfersService "github.com/golfops/GP-TeeSheetService/internal/service/golfers"
	reservationsService "github.com/golfops/GP-TeeSheetService/internal/service/reservations"
	createReservationUC "github.com/golfops/GP-TeeSheetService/internal/usecase/create_reservation"
	generateTeeSheetUC "github.com/golfops/GP-TeeSheetService/internal/usecase/generate_tee_sheet"
	updateReservationUC "github.com/golfops/GP-TeeSheetService/internal/usecase/update_reservation"
	"github.com/golfops/GP-TeeSheetService/pkg/dbmetrics"
	"github.com/golfops/GP-TeeSheetService/pkg/logger"
	"github.com/golfops/GP-TeeSheetService/pkg/metrics"
	"github.com/golfops/GP-TeeSheetService/pkg/simpletxmanager"
	"github.com/golfops/GP-TeeSheetService/pkg/txmanager"
)

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

	log.Info("Starting GP-TeeSheetService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	clover := cloverClient.NewClient(
		cfg.Clover.BaseURL,
		cfg.Clover.APIToken,
		time.Duration(cfg.Clover.Timeout)*time.Second,
		log,
	)
	log.Info("Clover client initialized (base_url=%s, timeout=%ds)", cfg.Clover.BaseURL, cfg.Clover.Timeout)

	var weather generateTeeSheetUC.WeatherClient
	if cfg.Weather.Enabled {
		weather = weatherClient.NewClient(
			cfg.Weather.BaseURL,
			cfg.Weather.APIKey,
			time.Duration(cfg.Weather.Timeout)*time.Second,
			log,
		)
		log.Info("Weather client initialized (base_url=%s, timeout=%ds)", cfg.Weather.BaseURL, cfg.Weather.Timeout)
	} else {
		log.Info("Weather integration disabled, tee sheets will be generated without forecast")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		golferRepository      *golferRepo.Repository
		courseRepository      *courseRepo.Repository
		propertyRepository    *propertyRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		golferRepository = golferRepo.NewRepository(wrappedDB)
		courseRepository = courseRepo.NewRepository(wrappedDB)
		propertyRepository = propertyRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		golferRepository = golferRepo.NewRepository(db)
		courseRepository = courseRepo.NewRepository(db)
		propertyRepository = propertyRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	golferSvc := golfersService.NewService(golferRepository, log)
	reservationSvc := reservationsService.NewService(reservationRepository, txMgr, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		courseRepository,
		reservationRepository,
		golferRepository,
		golferSvc,
		txMgr,
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		propertyRepository,
		clover,
		txMgr,
		log,
	)

	generateTeeSheetUseCase := generateTeeSheetUC.NewUseCase(
		courseRepository,
		reservationRepository,
		weather,
		generateTeeSheetUC.NewPlaceholderCache(),
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	destroyReservation := destroyReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getTeeSheet := getTeeSheetHandler.NewHandler(generateTeeSheetUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Генерация tee sheet на указанную дату
	api.HandleFunc("/golf_courses/{golfCourseId}/tee_sheet", getTeeSheet.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT Bearer token)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// Создание бронирования на тии-тайм
	protected.HandleFunc("/tee_times/{teeTimeIdentifier}/reservations",
		createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Обновление бронирования (атрибуты и оплата слота)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)

	// Удаление бронирования
	protected.HandleFunc("/reservations/{reservationId}", destroyReservation.Handle).Methods(http.MethodDelete)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
