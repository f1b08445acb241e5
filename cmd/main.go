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

	cancelBookingHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/create_booking"
	createRoomHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/create_room"
	exportCalendarHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/export_calendar"
	getBookingHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/get_booking"
	getRoomBookingsHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/get_room_bookings"
	getRoomsHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/get_rooms"
	listBookingsHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/list_bookings"
	moveBookingHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/move_booking"
	updatePriceHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/update_price"
	updateRoomPricingHandler "github.com/m04kA/Hotel-BookingService/internal/api/handlers/update_room_pricing"
	"github.com/m04kA/Hotel-BookingService/internal/api/middleware"
	"github.com/m04kA/Hotel-BookingService/internal/config"
	"github.com/m04kA/Hotel-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/room"
	"github.com/m04kA/Hotel-BookingService/internal/integrations/mailer"
	bookingsService "github.com/m04kA/Hotel-BookingService/internal/service/bookings"
	roomsService "github.com/m04kA/Hotel-BookingService/internal/service/rooms"
	checkAvailabilityUC "github.com/m04kA/Hotel-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/Hotel-BookingService/internal/usecase/create_booking"
	moveBookingUC "github.com/m04kA/Hotel-BookingService/internal/usecase/move_booking"
	"github.com/m04kA/Hotel-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Hotel-BookingService/pkg/logger"
	"github.com/m04kA/Hotel-BookingService/pkg/metrics"
	"github.com/m04kA/Hotel-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/Hotel-BookingService/pkg/txmanager"
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

	log.Info("Starting Hotel-BookingService...")
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

	// Инициализируем публикацию событий
	type EventPublisher interface {
		PublishBookingCreated(ctx context.Context, event events.BookingCreatedEvent) error
		PublishBookingCancelled(ctx context.Context, event events.BookingCancelledEvent) error
		PublishBookingMoved(ctx context.Context, event events.BookingMovedEvent) error
	}
	var publisher EventPublisher = events.NopPublisher{}

	if cfg.Events.Enabled {
		rabbitPublisher, err := events.NewPublisher(cfg.Events.URL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
		log.Info("Event publisher connected to RabbitMQ")
	} else {
		log.Info("Event publishing disabled")
	}

	// Инициализируем почтовый клиент
	type Mailer interface {
		SendWithGracefulDegradation(ctx context.Context, email mailer.EmailRequest) error
	}
	var mailerClient Mailer = mailer.NopClient{}

	if cfg.Mailer.Enabled {
		mailerClient = mailer.NewClient(
			cfg.Mailer.URL,
			time.Duration(cfg.Mailer.Timeout)*time.Second,
			log,
		)
		log.Info("Mailer client initialized (URL=%s timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)
	} else {
		log.Info("Mailer disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		roomRepository    *roomRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		roomRepository,
		publisher,
		mailerClient,
		cfg.Pricing.FreeCancellationDays,
		cfg.Pricing.VATRate,
		log,
	)
	roomSvc := roomsService.NewService(roomRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		txMgr,
		publisher,
		mailerClient,
		cfg.Pricing.VATRate,
		cfg.Pricing.BookingNumberStart,
		log,
	)
	moveBookingUseCase := moveBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		txMgr,
		publisher,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		roomRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	moveBooking := moveBookingHandler.NewHandler(moveBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updatePrice := updatePriceHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getRoomBookings := getRoomBookingsHandler.NewHandler(bookingSvc, log)
	getRooms := getRoomsHandler.NewHandler(roomSvc, log)
	createRoom := createRoomHandler.NewHandler(roomSvc, log)
	updateRoomPricing := updateRoomPricingHandler.NewHandler(roomSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(bookingSvc, roomSvc, log)

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

	// Создание бронирования (виджет на сайте отеля)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования гостем
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Список комнат
	api.HandleFunc("/rooms", getRooms.Handle).Methods(http.MethodGet)

	// Проверка доступности комнаты на даты
	api.HandleFunc("/rooms/{roomId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Экспорт занятости комнаты для внешних календарей
	api.HandleFunc("/rooms/{roomId}/calendar.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header, админка)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Список бронирований с фильтрацией
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение цены бронирования
	protected.HandleFunc("/bookings/{bookingId}/price", updatePrice.Handle).Methods(http.MethodPatch)

	// Перенос бронирования (drag-and-drop в календаре)
	protected.HandleFunc("/bookings/{bookingId}/move", moveBooking.Handle).Methods(http.MethodPatch)

	// --- Комнаты ---
	// Создание комнаты
	protected.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)

	// Бронирования комнаты (сетка календаря)
	protected.HandleFunc("/rooms/{roomId}/bookings", getRoomBookings.Handle).Methods(http.MethodGet)

	// Обновление тарифов комнаты
	protected.HandleFunc("/rooms/{roomId}/pricing", updateRoomPricing.Handle).Methods(http.MethodPut)

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
