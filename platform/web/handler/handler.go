package handler

import (
	"github.com/gin-gonic/gin"
)

// Result is what a handler answers: the status and an optional json body
type Result struct {
	Status int
	Body   any
}

// Error is the body of every failed request
type Error struct {
	Message string `json:"message" example:"invalid id"`
}

// Accepted is the body returned when a request was queued and will only be visible later
type Accepted struct {
	Status string `json:"status" example:"accepted"`
}

// Wrapper adapts a handler returning a Result to a gin.HandlerFunc
func Wrapper(h func(ctx *gin.Context) Result) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r := h(ctx)
		if r.Body == nil {
			ctx.Status(r.Status)
			return
		}
		ctx.JSON(r.Status, r.Body)
	}
}
