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

	bulkUpdateHandler "github.com/bedbees/BB-CalendarService/internal/api/handlers/bulk_update"
	getCalendarHandler "github.com/bedbees/BB-CalendarService/internal/api/handlers/get_calendar"
	updateDayHandler "github.com/bedbees/BB-CalendarService/internal/api/handlers/update_day"
	updateDayRoomsHandler "github.com/bedbees/BB-CalendarService/internal/api/handlers/update_day_rooms"
	"github.com/bedbees/BB-CalendarService/internal/api/middleware"
	"github.com/bedbees/BB-CalendarService/internal/config"
	auditRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/audit"
	availabilityRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/availability"
	inventoryRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/inventory"
	listingRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/listing"
	calendarService "github.com/bedbees/BB-CalendarService/internal/service/calendar"
	bulkUpdateUC "github.com/bedbees/BB-CalendarService/internal/usecase/bulk_update"
	updateDayRoomsUC "github.com/bedbees/BB-CalendarService/internal/usecase/update_day_rooms"
	"github.com/bedbees/BB-CalendarService/pkg/dbmetrics"
	"github.com/bedbees/BB-CalendarService/pkg/logger"
	"github.com/bedbees/BB-CalendarService/pkg/metrics"
	"github.com/bedbees/BB-CalendarService/pkg/simpletxmanager"
	"github.com/bedbees/BB-CalendarService/pkg/txmanager"
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

	log.Info("Starting BB-CalendarService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		listingRepository      *listingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		inventoryRepository    *inventoryRepo.Repository
		auditRepository        *auditRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		listingRepository = listingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		inventoryRepository = inventoryRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		listingRepository = listingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		inventoryRepository = inventoryRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(
		listingRepository,
		availabilityRepository,
		inventoryRepository,
		log,
	)

	// Инициализируем use cases
	updateDayRoomsUseCase := updateDayRoomsUC.NewUseCase(
		listingRepository,
		inventoryRepository,
		calendarSvc,
		txMgr,
		log,
	)

	bulkUpdateUseCase := bulkUpdateUC.NewUseCase(
		listingRepository,
		availabilityRepository,
		inventoryRepository,
		auditRepository,
		calendarSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	updateDay := updateDayHandler.NewHandler(calendarSvc, log)
	updateDayRooms := updateDayRoomsHandler.NewHandler(updateDayRoomsUseCase, log)
	bulkUpdate := bulkUpdateHandler.NewHandler(bulkUpdateUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Календарь листинга за период
	protected.HandleFunc("/listings/{listingId}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Обновление одного дня на уровне листинга
	protected.HandleFunc("/listings/{listingId}/calendar/day", updateDay.Handle).Methods(http.MethodPatch)

	// Обновление инвентаря комнат на одну дату
	protected.HandleFunc("/listings/{listingId}/calendar/day/rooms", updateDayRooms.Handle).Methods(http.MethodPatch)

	// Пакетное обновление календаря за период
	protected.HandleFunc("/listings/{listingId}/calendar/bulk", bulkUpdate.Handle).Methods(http.MethodPost)

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
