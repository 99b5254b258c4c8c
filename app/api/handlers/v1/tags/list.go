package tags

import (
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/meditate/business/v1/note"
	"github.com/ribgsilva/meditate/platform/web/handler"
	"net/http"
)

// List godoc
// @Summary List tags
// @Description The tags a note can carry
// @Tags Tag
// @Produce json
// @Success 200 {array} string
// @Router /v1/tags [get]
func List(_ *gin.Context) handler.Result {
	return handler.Result{
		Status: http.StatusOK,
		Body:   note.Tags,
	}
}
