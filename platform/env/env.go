package env

import (
	"go.uber.org/zap"
	"os"
)

// OrDefault return the value of the env var, or def when it is unset or empty
func OrDefault(log *zap.SugaredLogger, env, def string) string {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	log.Debugw("env var not set, using default", "env", env, "default", def)
	return def
}

// Must return the value of the env var, stopping the process when it is missing
func Must(log *zap.SugaredLogger, env string) string {
	v, ok := os.LookupEnv(env)
	if !ok || v == "" {
		log.Fatalw("required env var not set", "env", env)
	}
	return v
}
