package env

import (
	"go.uber.org/zap"
	"strconv"
)

// IntDefault return the result of searching an env var, if the env var value is empty, return a default value as int
func IntDefault(log *zap.SugaredLogger, env, def string) int {
	orDefault := OrDefault(log, env, def)
	i, err := strconv.Atoi(orDefault)
	if err != nil {
		log.Warnw("error parsing env var as int", "env", env, "value", orDefault, "err", err)
		i, _ = strconv.Atoi(def)
	}
	return i
}
