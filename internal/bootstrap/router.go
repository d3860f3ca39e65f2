package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/wavechat/wavechat-backend/internal/api/http"
	"github.com/wavechat/wavechat-backend/internal/api/http/middleware"
	authhttp "github.com/wavechat/wavechat-backend/internal/auth/http"
	authmw "github.com/wavechat/wavechat-backend/internal/auth/middleware"
	friendshttp "github.com/wavechat/wavechat-backend/internal/friends/http"
	"github.com/wavechat/wavechat-backend/internal/friends/service"
	"github.com/wavechat/wavechat-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Origin      string
	JWTSecret   string
	TokenTTL    time.Duration
	Redis       *redis.Client
}

func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	// Cookie auth requires credentialed CORS, so the origin must be explicit.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{dep.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.Redis)
	friendService := service.NewFriendService(userRepo)
	requireAuth := authmw.RequireAuth(dep.JWTSecret)

	api := r.Group("/api/v1")

	accountHandler := authhttp.New(userRepo, dep.JWTSecret, dep.TokenTTL)
	accountHandler.Register(api.Group("/auth"), requireAuth)

	friendHandler := friendshttp.New(friendService)
	friendHandler.Register(api.Group("/friend-requests", requireAuth))

	return r
}
