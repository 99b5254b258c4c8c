package notes

import (
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/meditate/business/v1/session"
	"github.com/ribgsilva/meditate/platform/web/handler"
	"net/http"
)

// List godoc
// @Summary List notes
// @Description All notes, newest first
// @Tags Note
// @Produce json
// @Success 200 {array} note.Note
// @Router /v1/notes [get]
func List(s *session.Session) func(ctx *gin.Context) handler.Result {
	return func(_ *gin.Context) handler.Result {
		return handler.Result{
			Status: http.StatusOK,
			Body:   s.Notes(),
		}
	}
}
