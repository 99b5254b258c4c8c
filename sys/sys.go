package sys

import (
	"database/sql"
	"github.com/go-redis/redis/v8"
	"github.com/ribgsilva/meditate/platform/notify"
	"go.uber.org/zap"
	"time"
)

// Configs contains all the configs gathered from env vars
var Configs struct {
	Http struct {
		Port            string
		ShutdownTimeout time.Duration
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		IdleTimeout     time.Duration
	}
	Swagger struct {
		Protocol string
		Host     string
	}
	Database struct {
		Driver           string
		ConnectionURL    string
		PingTimeout      time.Duration
		OperationTimeout time.Duration
	}
	Redis struct {
		Enabled          bool
		ConnectionURL    string
		User             string
		Pass             string
		Channel          string
		PingTimeout      time.Duration
		OperationTimeout time.Duration
	}
	Messaging struct {
		TopicName       string
		MaxWorkers      int
		WaitTime        time.Duration
		ShutdownTimeout time.Duration
	}
	NewRelic struct {
		AppName           string
		Licence           string
		Enabled           bool
		ConnectionTimeout time.Duration
		ShutdownTimeout   time.Duration
	}
}

// R holds static resources across the project
var R struct {
	Log      *zap.SugaredLogger
	Redis    *redis.Client
	Database *sql.DB
	Notifier notify.Notifier
}
