package main

import (
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/ribgsilva/meditate/app/api/handlers"
	"github.com/ribgsilva/meditate/app/messaging/consumers/v1/notes"
	"github.com/ribgsilva/meditate/persistence/v1/schema"
	"github.com/ribgsilva/meditate/platform/database"
	"github.com/ribgsilva/meditate/platform/env"
	"github.com/ribgsilva/meditate/platform/logger"
	"github.com/ribgsilva/meditate/platform/notify"
	"github.com/ribgsilva/meditate/sys"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"gocloud.dev/pubsub/awssnssqs"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

func main() {

	log, err := logger.New("Notes-Messaging")
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
	sys.Configs.Http.Port = env.OrDefault(log, "HTTP_PORT", "8081")
	sys.Configs.Database.Driver = env.OrDefault(log, "DATABASE_DRIVER", database.DriverMySQL)
	sys.Configs.Database.ConnectionURL = env.OrDefault(log, "DATABASE_CONNECTION_URL", "root:admin@tcp(localhost:3306)/note")
	sys.Configs.Database.PingTimeout = env.DurationDefault(log, "DATABASE_PING_TIMEOUT", "2s")
	sys.Configs.Database.OperationTimeout = env.DurationDefault(log, "DATABASE_OPERATION_TIMEOUT", "5s")
	sys.Configs.Redis.ConnectionURL = env.OrDefault(log, "REDIS_CONNECTION_URL", "localhost:6379")
	sys.Configs.Redis.User = env.OrDefault(log, "REDIS_USER", "")
	sys.Configs.Redis.Pass = env.OrDefault(log, "REDIS_PASS", "")
	sys.Configs.Redis.Channel = env.OrDefault(log, "REDIS_CHANNEL", notify.DefaultChannel)
	sys.Configs.Redis.PingTimeout = env.DurationDefault(log, "REDIS_PING_TIMEOUT", "2s")
	sys.Configs.Redis.OperationTimeout = env.DurationDefault(log, "REDIS_OPERATION_TIMEOUT", "2s")
	sys.Configs.NewRelic.AppName = env.OrDefault(log, "NEW_RELIC_APP_NAME", "notes-messaging")
	sys.Configs.NewRelic.Licence = env.OrDefault(log, "NEW_RELIC_LICENCE", "")
	sys.Configs.NewRelic.Enabled = env.BoolDefault(log, "NEW_RELIC_ENABLED", "f")
	sys.Configs.NewRelic.ConnectionTimeout = env.DurationDefault(log, "NEW_RELIC_CONNECTION_TIMEOUT", "10s")
	sys.Configs.NewRelic.ShutdownTimeout = env.DurationDefault(log, "NEW_RELIC_SHUTDOWN_TIMEOUT", "10s")
	sys.Configs.Messaging.TopicName = env.Must(log, "MESSAGING_TOPIC_NAME")
	sys.Configs.Messaging.MaxWorkers = env.IntDefault(log, "MESSAGING_MAX_WORKERS", "1")
	sys.Configs.Messaging.WaitTime = env.DurationDefault(log, "MESSAGING_WAIT_TIME", "10s")
	sys.Configs.Messaging.ShutdownTimeout = env.DurationDefault(log, "MESSAGING_SHUTDOWN_TIMEOUT", "10s")

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

	// redis, the api processes learn about the notes written here through it
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
	// Messaging configuration

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return err
	}

	sqsCli := sqs.NewFromConfig(cfg)

	subscription := awssnssqs.OpenSubscriptionV2(
		context.Background(),
		sqsCli,
		sys.Configs.Messaging.TopicName,
		&awssnssqs.SubscriptionOptions{
			Raw:      true,
			WaitTime: sys.Configs.Messaging.WaitTime,
		})

	defer func() {
		stdCtx, stdCancel := context.WithTimeout(context.Background(), sys.Configs.Messaging.ShutdownTimeout)
		defer stdCancel()

		if err := subscription.Shutdown(stdCtx); err != nil {
			log.Errorf("could not stop subscription gracefully: %s", err)
		}
	}()

	// =======================================================================================================
	// Router configuration

	router := gin.New()
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/v1/healthcheck"},
	}), gin.Recovery(), nrgin.Middleware(nrApp))

	handlers.MapDefaults(router)

	// =======================================================================================================
	// App start and shutdown

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%s", sys.Configs.Http.Port),
		Handler: router,
	}

	go func() {
		log.Info("started healthcheck http server")
		if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("error in server http server: %s", err)
		}
	}()
	defer func() {
		_ = svr.Close()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	withCancel, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	go func() {
		sig := <-shutdown
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)
		cancelFunc()
	}()

	if err := notes.Consume(withCancel, subscription, sys.Configs.Messaging.MaxWorkers); err != nil {
		return fmt.Errorf("listener error: %w", err)
	}

	return nil
}
