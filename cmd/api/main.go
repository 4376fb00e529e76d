package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/reservaya/api/internal/app"
	"github.com/reservaya/api/internal/auth"
	"github.com/reservaya/api/internal/catalog"
	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/config"
	"github.com/reservaya/api/internal/directions"
	"github.com/reservaya/api/internal/events"
	"github.com/reservaya/api/internal/jobs"
	"github.com/reservaya/api/internal/mail"
	"github.com/reservaya/api/internal/notify"
	"github.com/reservaya/api/internal/storage/memory"
	"github.com/reservaya/api/internal/storage/postgres"
	"github.com/reservaya/api/internal/storage/redis"
	transporthttp "github.com/reservaya/api/internal/transport/http"
	"github.com/reservaya/api/migrations"
)

const shutdownTimeout = 10 * time.Second

type repositories struct {
	reservations app.ReservationRepository
	operator     app.OperatorRepository
	tables       app.TableRepository
	users        app.UserRepository
	menu         app.MenuRepository
}

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	clk := clock.NewSystem()
	var checks []transporthttp.HealthCheck

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repos := repositories{
		reservations: memory.NewReservationRepository(),
		operator:     memory.NewOperatorRepository(),
		tables:       memory.NewTableRepository(),
		users:        memory.NewUserRepository(),
		menu:         memory.NewMenuRepository(catalog.DefaultMenu()),
	}
	if cfg.StorageDriver == config.DriverPostgres {
		pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(startupCtx); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		if err := migrations.Apply(startupCtx, pool); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		repos = repositories{
			reservations: postgres.NewReservationRepository(pool),
			operator:     postgres.NewOperatorRepository(pool),
			tables:       postgres.NewTableRepository(pool),
			users:        postgres.NewUserRepository(pool),
			menu:         postgres.NewMenuRepository(pool),
		}
		checks = append(checks, transporthttp.HealthCheck{Name: "postgres", Check: pool.Ping})
	}
	logger.Printf("storage driver=%s", cfg.StorageDriver)

	var favoritesStore app.FavoritesStore = memory.NewFavoritesStore()
	if cfg.RedisAddr != "" {
		client, err := redis.Dial(startupCtx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		favoritesStore = redis.NewFavoritesStore(client)
		checks = append(checks, transporthttp.HealthCheck{Name: "redis", Check: redisPing(client)})
	} else {
		logger.Printf("WARN: REDIS_ADDR not set, favorites are kept in memory")
	}

	ledger := notify.NewLedger(clk, cfg.NotificationCapacity)
	notifier := notify.NewNotifier(ledger)

	runCtx, stopRun := context.WithCancel(context.Background())
	defer stopRun()

	var bus events.Publisher
	if cfg.RabbitMQURL != "" {
		amqpBus, err := events.DialAMQP(events.AMQPConfig{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("connect to rabbitmq: %v", err)
		}
		defer amqpBus.Close()
		go func() {
			if err := amqpBus.Consume(runCtx, notifier.Handle, logger); err != nil {
				logger.Printf("ERROR: event consumer stopped: %v", err)
			}
		}()
		bus = amqpBus
	} else {
		bus = events.NewLocal(notifier.Handle)
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		logger.Printf("WARN: JWT_SECRET not set, tokens will not survive a restart")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("generate jwt secret: %v", err)
		}
	}
	tokens := auth.NewIssuer(secret, cfg.TokenTTL, clk)

	var mailer app.Mailer = mail.LogMailer{Logger: logger}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPUser,
		})
	}

	cat := catalog.New(catalog.WithMenu(repos.menu), catalog.WithLogger(logger))
	reservationSvc := app.NewReservationService(repos.reservations, clk,
		app.WithReservationEvents(bus),
		app.WithReservationLogger(logger),
	)
	operatorSvc := app.NewOperatorService(repos.operator, clk,
		app.WithOperatorEvents(bus),
		app.WithOperatorLogger(logger),
		app.WithLocation(cfg.Location),
	)
	sessionSvc := app.NewSessionService(cat, reservationSvc,
		app.WithSessionTTL(cfg.SessionTTL),
		app.WithMaxSessions(cfg.MaxSessions),
		app.WithSessionClock(clk),
	)
	authSvc := app.NewAuthService(repos.users, tokens, mailer, clk, logger)

	var directionOpts []directions.Option
	if cfg.MapboxBaseURL != "" {
		directionOpts = append(directionOpts, directions.WithBaseURL(cfg.MapboxBaseURL))
	}
	if cfg.MapboxToken == "" {
		logger.Printf("WARN: MAPBOX_ACCESS_TOKEN not set, /api/directions will answer 503")
	}

	var scheduler *cron.Cron
	if cfg.ExpirePendingSchedule != "" {
		scheduler, err = jobs.ScheduleExpiry(cfg.ExpirePendingSchedule, operatorSvc, logger)
		if err != nil {
			log.Fatalf("schedule expiry: %v", err)
		}
		scheduler.Start()
		logger.Printf("pending expiry scheduled spec=%q", cfg.ExpirePendingSchedule)
	}

	handler := transporthttp.NewRouter(transporthttp.Deps{
		Reservations:  reservationSvc,
		Auth:          authSvc,
		Resets:        authSvc,
		Catalog:       cat,
		Directions:    directions.NewClient(cfg.MapboxToken, directionOpts...),
		Notifications: ledger,
		Favorites:     app.NewFavoritesService(favoritesStore, cat),
		Tokens:        tokens,
		Sessions:      sessionSvc,
		Operator:      operatorSvc,
		Tables:        app.NewTableService(repos.tables, clk),
		Menu:          app.NewMenuService(repos.menu),
		Clock:         clk,
		Location:      cfg.Location,
		Checks:        checks,
		Logger:        logger,
	}, transporthttp.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		ProtectedPaths: cfg.ProtectedPaths,
		LoginPath:      cfg.LoginPath,
		AuthCookie:     cfg.AuthCookie,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	stopRun()
	log.Printf("server stopped")
}

func redisPing(client *goredis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
