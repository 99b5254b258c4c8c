package notes

import (
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/meditate/business/v1/note"
	"github.com/ribgsilva/meditate/business/v1/session"
	"github.com/ribgsilva/meditate/platform/web/handler"
	"net/http"
	"strings"
)

type CreateRequest struct {
	Content string `json:"content" example:"the sea was calm today"`
	Tag     string `json:"tag" example:"reflection"`
}

// Create godoc
// @Summary Create a note
// @Description Queues a new note. It shows up in the list once stored.
// @Tags Note
// @Accept json
// @Produce json
// @Param note body notes.CreateRequest true "Note"
// @Success 202 {object} handler.Accepted
// @Failure 400 {object} handler.Error
// @Router /v1/notes [post]
func Create(s *session.Session) func(ctx *gin.Context) handler.Result {
	return func(ctx *gin.Context) handler.Result {
		var req CreateRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return handler.Result{
				Status: http.StatusBadRequest,
				Body:   handler.Error{Message: "invalid body"},
			}
		}

		if strings.TrimSpace(req.Content) == "" {
			return handler.Result{
				Status: http.StatusBadRequest,
				Body:   handler.Error{Message: "content is required"},
			}
		}

		if req.Tag == "" {
			req.Tag = note.DefaultTag
		}
		if !note.ValidTag(req.Tag) {
			return handler.Result{
				Status: http.StatusBadRequest,
				Body:   handler.Error{Message: "unknown tag"},
			}
		}

		s.AddNote(req.Content, req.Tag)

		return handler.Result{
			Status: http.StatusAccepted,
			Body:   handler.Accepted{Status: "accepted"},
		}
	}
}
