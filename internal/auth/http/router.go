package http

import "github.com/gin-gonic/gin"

// Register wires the account routes. Signup, login and logout are public;
// profile routes sit behind the token middleware.
func (h *Handler) Register(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/signup", h.Signup)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)

	protected := rg.Group("", requireAuth)
	protected.GET("/user-info", h.UserInfo)
	protected.POST("/update-profile", h.UpdateProfile)
}
