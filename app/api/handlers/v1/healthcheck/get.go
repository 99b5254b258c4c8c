package healthcheck

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/meditate/platform/web/handler"
	"github.com/ribgsilva/meditate/sys"
	"net/http"
)

type Status struct {
	Status string `json:"status" example:"ok"`
}

// Get godoc
// @Summary Healthcheck
// @Description Reports whether the database answers
// @Tags Health
// @Produce json
// @Success 200 {object} healthcheck.Status
// @Failure 503 {object} handler.Error
// @Router /v1/healthcheck [get]
func Get(ctx *gin.Context) handler.Result {
	pingCtx, pingCancel := context.WithTimeout(ctx.Request.Context(), sys.Configs.Database.PingTimeout)
	defer pingCancel()

	if err := sys.R.Database.PingContext(pingCtx); err != nil {
		return handler.Result{
			Status: http.StatusServiceUnavailable,
			Body:   handler.Error{Message: "database unavailable"},
		}
	}

	return handler.Result{
		Status: http.StatusOK,
		Body:   Status{Status: "ok"},
	}
}
