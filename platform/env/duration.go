package env

import (
	"go.uber.org/zap"
	"time"
)

// DurationDefault return the result of searching an env var as a time.Duration, falling back to def when the value does not parse
func DurationDefault(log *zap.SugaredLogger, env, def string) time.Duration {
	orDefault := OrDefault(log, env, def)
	d, err := time.ParseDuration(orDefault)
	if err != nil {
		log.Warnw("error parsing env var as duration", "env", env, "value", orDefault, "err", err)
		d, _ = time.ParseDuration(def)
	}
	return d
}
