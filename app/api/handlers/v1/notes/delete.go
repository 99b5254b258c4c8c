package notes

import (
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/meditate/business/v1/note"
	"github.com/ribgsilva/meditate/business/v1/session"
	"github.com/ribgsilva/meditate/platform/web/handler"
	"net/http"
	"strconv"
)

// Delete godoc
// @Summary Delete a note
// @Description Queues the removal of a note. Deleting a missing note is accepted too.
// @Tags Note
// @Produce json
// @Param id path string true "Note id"
// @Success 202 {object} handler.Accepted
// @Failure 400 {object} handler.Error
// @Router /v1/notes/{id} [delete]
func Delete(s *session.Session) func(ctx *gin.Context) handler.Result {
	return func(ctx *gin.Context) handler.Result {
		id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
		if err != nil || id == 0 {
			return handler.Result{
				Status: http.StatusBadRequest,
				Body:   handler.Error{Message: "invalid id"},
			}
		}

		s.RemoveNote(note.Note{Id: id})

		return handler.Result{
			Status: http.StatusAccepted,
			Body:   handler.Accepted{Status: "accepted"},
		}
	}
}
