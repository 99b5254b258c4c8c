package main

import (
	"context"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/ribgsilva/meditate/app/api/docs"
	"github.com/ribgsilva/meditate/app/api/handlers"
	"github.com/ribgsilva/meditate/business/v1/note"
	"github.com/ribgsilva/meditate/business/v1/session"
	"github.com/ribgsilva/meditate/persistence/v1/schema"
	"github.com/ribgsilva/meditate/platform/database"
	"github.com/ribgsilva/meditate/platform/env"
	"github.com/ribgsilva/meditate/platform/logger"
	"github.com/ribgsilva/meditate/platform/notify"
	"github.com/ribgsilva/meditate/platform/web/middleware"
	"github.com/ribgsilva/meditate/sys"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/gin-swagger/swaggerFiles"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

// @title Meditate Notes API
// @version 1.0
// @description Service to write, follow and delete short tagged notes.
// @contact.name Gabriel Ribeiro Silva
func main() {
	log, err := logger.New("Notes-API")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer func(log *zap.SugaredLogger) {
		_ = log.Sync()
	}(log)

	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =======================================================================================================
	// Setup max procs
	if _, err := maxprocs.Set(); err != nil {
		return fmt.Errorf("maxprocs: %w", err)
	}
	log.Infow("startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	// =======================================================================================================
	// Setup configs
	sys.Configs.Http.Port = env.OrDefault(log, "HTTP_PORT", "8080")
	sys.Configs.Http.ReadTimeout = env.DurationDefault(log, "HTTP_READ_TIMEOUT", "5s")
	sys.Configs.Http.IdleTimeout = env.DurationDefault(log, "HTTP_IDLE_TIMEOUT", "120s")
	// zero keeps /v1/notes/stream open
	sys.Configs.Http.WriteTimeout = env.DurationDefault(log, "HTTP_WRITE_TIMEOUT", "0s")
	sys.Configs.Http.ShutdownTimeout = env.DurationDefault(log, "HTTP_SHUTDOWN_TIMEOUT", "60s")
	sys.Configs.Swagger.Protocol = env.OrDefault(log, "SWAGGER_PROTOCOL", "http")
	sys.Configs.Swagger.Host = env.OrDefault(log, "SWAGGER_HOST", "localhost:"+sys.Configs.Http.Port)
	sys.Configs.Database.Driver = env.OrDefault(log, "DATABASE_DRIVER", database.DriverSQLite)
	sys.Configs.Database.ConnectionURL = env.OrDefault(log, "DATABASE_CONNECTION_URL", "file:notes.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	sys.Configs.Database.PingTimeout = env.DurationDefault(log, "DATABASE_PING_TIMEOUT", "2s")
	sys.Configs.Database.OperationTimeout = env.DurationDefault(log, "DATABASE_OPERATION_TIMEOUT", "5s")
	sys.Configs.Redis.Enabled = env.BoolDefault(log, "REDIS_ENABLED", "f")
	sys.Configs.Redis.ConnectionURL = env.OrDefault(log, "REDIS_CONNECTION_URL", "localhost:6379")
	sys.Configs.Redis.User = env.OrDefault(log, "REDIS_USER", "")
	sys.Configs.Redis.Pass = env.OrDefault(log, "REDIS_PASS", "")
	sys.Configs.Redis.Channel = env.OrDefault(log, "REDIS_CHANNEL", notify.DefaultChannel)
	sys.Configs.Redis.PingTimeout = env.DurationDefault(log, "REDIS_PING_TIMEOUT", "2s")
	sys.Configs.Redis.OperationTimeout = env.DurationDefault(log, "REDIS_OPERATION_TIMEOUT", "2s")
	sys.Configs.NewRelic.AppName = env.OrDefault(log, "NEW_RELIC_APP_NAME", "notes-api")
	sys.Configs.NewRelic.Licence = env.OrDefault(log, "NEW_RELIC_LICENCE", "")
	sys.Configs.NewRelic.Enabled = env.BoolDefault(log, "NEW_RELIC_ENABLED", "f")
	sys.Configs.NewRelic.ConnectionTimeout = env.DurationDefault(log, "NEW_RELIC_CONNECTION_TIMEOUT", "10s")
	sys.Configs.NewRelic.ShutdownTimeout = env.DurationDefault(log, "NEW_RELIC_SHUTDOWN_TIMEOUT", "10s")

	// =======================================================================================================
	// Setup static resources

	// logger
	sys.R.Log = log

	// database
	db, err := database.Open(context.Background(), sys.Configs.Database.Driver, sys.Configs.Database.ConnectionURL, sys.Configs.Database.PingTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("could not close db conn gracefully: %s", err)
		}
	}()
	sys.R.Database = db

	if err := schema.Create(context.Background()); err != nil {
		return err
	}

	// change notification, redis when several processes share the database
	sys.R.Notifier = notify.NewLocal()
	if sys.Configs.Redis.Enabled {
		// doing in a func, so I can use defer to cancel the contexts
		var rdb *redis.Client
		if err := func() error {
			rdb = redis.NewClient(&redis.Options{
				Addr:     sys.Configs.Redis.ConnectionURL,
				Username: sys.Configs.Redis.User,
				Password: sys.Configs.Redis.Pass,
			})
			rdsCtx, rdsCancel := context.WithTimeout(context.Background(), sys.Configs.Redis.PingTimeout)
			defer rdsCancel()
			if err := rdb.Ping(rdsCtx).Err(); err != nil {
				return fmt.Errorf("could not connect to redis: %w", err)
			}
			return nil
		}(); err != nil {
			return err
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("could not close redis conn gracefully: %s", err)
			}
		}()

		sys.R.Redis = rdb
		sys.R.Notifier = notify.NewRedis(rdb, sys.Configs.Redis.Channel, log)
	}

	// session
	s, err := session.New(context.Background(), note.Store{}, session.WithLogger(log))
	if err != nil {
		return err
	}
	defer s.Close()

	// =======================================================================================================
	// NR

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(sys.Configs.NewRelic.AppName),
		newrelic.ConfigLicense(sys.Configs.NewRelic.Licence),
		newrelic.ConfigEnabled(sys.Configs.NewRelic.Enabled),
	)
	if err != nil {
		return err
	}
	if sys.Configs.NewRelic.Enabled {
		if err := nrApp.WaitForConnection(sys.Configs.NewRelic.ConnectionTimeout); err != nil {
			return err
		}
	}
	defer nrApp.Shutdown(sys.Configs.NewRelic.ShutdownTimeout)

	// =======================================================================================================
	// Router configuration

	router := gin.New()
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/v1/healthcheck"},
	}), gin.Recovery(), middleware.RequestID(), nrgin.Middleware(nrApp))

	handlers.MapDefaults(router)
	handlers.MapApi(router, s)

	docs.SwaggerInfo.Host = sys.Configs.Swagger.Host
	url := ginSwagger.URL(fmt.Sprintf("%s://%s/swagger/doc.json", sys.Configs.Swagger.Protocol, sys.Configs.Swagger.Host))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// =======================================================================================================
	// App start and shutdown

	svr := &http.Server{
		Addr:         fmt.Sprintf(":%s", sys.Configs.Http.Port),
		Handler:      router,
		ReadTimeout:  sys.Configs.Http.ReadTimeout,
		WriteTimeout: sys.Configs.Http.WriteTimeout,
		IdleTimeout:  sys.Configs.Http.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("started http server")
		serverErrors <- svr.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// ends the open note streams, Shutdown does not wait for them otherwise
		s.Close()

		ctx, cancel := context.WithTimeout(context.Background(), sys.Configs.Http.ShutdownTimeout)
		defer cancel()

		if err := svr.Shutdown(ctx); err != nil {
			_ = svr.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
