package http

import "github.com/gin-gonic/gin"

// Register wires the friend-request routes. The whole group is expected to
// sit behind the token middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.POST("/reject", h.Reject)
	rg.POST("/accept", h.Accept)
	rg.POST("/search", h.Search)
}
