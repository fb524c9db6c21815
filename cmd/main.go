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

	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
	findBestSlotsHandler "github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers/find_best_slots"
	getBookingHandler "github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers/get_booking"
	getDayScheduleHandler "github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers/get_day_schedule"
	proposeSwapsHandler "github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers/propose_swaps"
	suggestRelocationsHandler "github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers/suggest_relocations"
	"github.com/m04kA/SMC-SlotOptimizer/internal/api/middleware"
	"github.com/m04kA/SMC-SlotOptimizer/internal/config"
	bookingRepo "github.com/m04kA/SMC-SlotOptimizer/internal/infra/storage/booking"
	therapistRepo "github.com/m04kA/SMC-SlotOptimizer/internal/infra/storage/therapist"
	"github.com/m04kA/SMC-SlotOptimizer/internal/integrations/matchingoptimizer"
	scheduleService "github.com/m04kA/SMC-SlotOptimizer/internal/service/schedule"
	findBestSlotsUC "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/find_best_slots"
	proposeSwapsUC "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/propose_swaps"
	suggestRelocationsUC "github.com/m04kA/SMC-SlotOptimizer/internal/usecase/suggest_relocations"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/logger"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/metrics"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/txmanager"
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
	defer log.Close()

	log.Info("Starting SMC-SlotOptimizer...")
	log.Info("Configuration loaded from %s", configPath)

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории и сервисы
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	therapistRepository := therapistRepo.NewRepository(wrappedDB)
	scheduleSvc := scheduleService.NewService(bookingRepository, therapistRepository, txMgr, log)

	// Движок подбора слотов
	engine, err := cfg.Engine.NewEngine()
	if err != nil {
		log.Fatal("Failed to build slot engine: %v", err)
	}
	defaults := cfg.Engine.Params()
	log.Info("Slot engine initialized (rule=%s, step=%dm, workers=%d, minGap=%dm, day=%s-%s)",
		cfg.Engine.Rule, cfg.Engine.StepMinutes, cfg.Engine.Workers, defaults.MinGapMinutes, defaults.DayStart, defaults.DayEnd)

	// Интеграция с оптимизатором размещения (необязательная)
	var optimizer suggestRelocationsUC.OptimizerClient
	if cfg.MatchingOptimizer.Enabled {
		optimizer = matchingoptimizer.NewClient(
			cfg.MatchingOptimizer.URL,
			time.Duration(cfg.MatchingOptimizer.Timeout)*time.Second,
			log,
		)
		log.Info("Matching optimizer client initialized (url=%s, timeout=%ds)",
			cfg.MatchingOptimizer.URL, cfg.MatchingOptimizer.Timeout)
	}

	// Инициализируем use cases
	findBestSlotsUseCase := findBestSlotsUC.NewUseCase(scheduleSvc, engine, defaults, metricsCollector, log)
	proposeSwapsUseCase := proposeSwapsUC.NewUseCase(
		scheduleSvc,
		engine,
		defaults,
		proposeSwapsUC.Limits{
			MaxTherapists:           cfg.Engine.MaxTherapists,
			MaxBookingsPerTherapist: cfg.Engine.MaxBookingsPerTherapist,
		},
		metricsCollector,
		log,
	)
	suggestRelocationsUseCase := suggestRelocationsUC.NewUseCase(scheduleSvc, optimizer, defaults, log)

	// Инициализируем handlers
	findBestSlots := findBestSlotsHandler.NewHandler(findBestSlotsUseCase, log)
	proposeSwaps := proposeSwapsHandler.NewHandler(proposeSwapsUseCase, log)
	suggestRelocations := suggestRelocationsHandler.NewHandler(suggestRelocationsUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(scheduleSvc, log)
	getBooking := getBookingHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			log.Error("GET /healthz - Database unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(cfg.RequestTimeout()))

	// --- Лёгкие операции ---
	// Лучшие слоты по расписанию из запроса
	api.HandleFunc("/slots/best", findBestSlots.HandleInline).Methods(http.MethodPost)

	// Лучшие слоты по расписанию из БД
	api.HandleFunc("/days/{date}/slots", findBestSlots.HandleByDate).Methods(http.MethodGet)

	// Расписание дня
	api.HandleFunc("/days/{date}/bookings", getDaySchedule.Handle).Methods(http.MethodGet)

	// Бронирование по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// --- Тяжёлые операции (с ограничением частоты) ---
	heavy := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, metricsCollector, log)
		heavy.Use(limiter.Middleware)
		log.Info("Rate limit enabled for heavy routes (rps=%.2f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Предложения обменов по расписанию из запроса
	heavy.HandleFunc("/swaps/proposals", proposeSwaps.HandleInline).Methods(http.MethodPost)

	// Предложения обменов по расписанию из БД
	heavy.HandleFunc("/days/{date}/swaps", proposeSwaps.HandleByDate).Methods(http.MethodGet)

	// Размещение с переносами через внешний оптимизатор
	heavy.HandleFunc("/days/{date}/relocations", suggestRelocations.Handle).Methods(http.MethodPost)

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
