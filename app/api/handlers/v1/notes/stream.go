package notes

import (
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/meditate/business/v1/session"
	"io"
)

// Stream godoc
// @Summary Follow notes
// @Description Server sent events. Every "notes" event carries the full list, newest first. The first one is sent right away.
// @Tags Note
// @Produce text/event-stream
// @Success 200 {array} note.Note
// @Router /v1/notes/stream [get]
func Stream(s *session.Session) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		updates := s.Watch(ctx.Request.Context())

		ctx.Header("Cache-Control", "no-cache")
		ctx.Header("Connection", "keep-alive")
		ctx.Stream(func(w io.Writer) bool {
			notes, ok := <-updates
			if !ok {
				return false
			}
			ctx.SSEvent("notes", notes)
			return true
		})
	}
}
