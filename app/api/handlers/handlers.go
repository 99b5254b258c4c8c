package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/meditate/app/api/handlers/v1/healthcheck"
	"github.com/ribgsilva/meditate/app/api/handlers/v1/notes"
	"github.com/ribgsilva/meditate/app/api/handlers/v1/tags"
	"github.com/ribgsilva/meditate/business/v1/session"
	"github.com/ribgsilva/meditate/platform/web/handler"
)

func MapDefaults(r *gin.Engine) {
	r.GET("/v1/healthcheck", handler.Wrapper(healthcheck.Get))
}

func MapApi(r *gin.Engine, s *session.Session) {
	r.GET("/v1/tags", handler.Wrapper(tags.List))
	r.GET("/v1/notes", handler.Wrapper(notes.List(s)))
	r.POST("/v1/notes", handler.Wrapper(notes.Create(s)))
	r.DELETE("/v1/notes/:id", handler.Wrapper(notes.Delete(s)))
	r.GET("/v1/notes/stream", notes.Stream(s))
}
