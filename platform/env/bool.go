package env

import (
	"go.uber.org/zap"
	"strconv"
)

// BoolDefault return the result of searching an env var as bool. Accepts what strconv.ParseBool accepts ("t", "f", "true", "0"...)
func BoolDefault(log *zap.SugaredLogger, env, def string) bool {
	orDefault := OrDefault(log, env, def)
	b, err := strconv.ParseBool(orDefault)
	if err != nil {
		log.Warnw("error parsing env var as bool", "env", env, "value", orDefault, "err", err)
		b, _ = strconv.ParseBool(def)
	}
	return b
}
