package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authservice "github.com/shelfmark/shelfmark/internal/auth/service"
	bookservice "github.com/shelfmark/shelfmark/internal/books/service"

	"github.com/shelfmark/shelfmark/internal/config"
	"github.com/shelfmark/shelfmark/internal/transport/http/middleware"
)

func NewRouter(
	cfg *config.Config,
	log *zap.Logger,
	authSvc authservice.AuthService,
	bookSvc bookservice.BookService,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RateLimitPerIP(50, 100, 10_000, time.Hour))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	ah := &authHandler{svc: authSvc, cfg: cfg}
	bh := &bookHandler{svc: bookSvc}

	auth := router.Group("/auth")
	{
		auth.POST("/register", ah.register)
		auth.POST("/login", ah.login)
		auth.POST("/token", ah.token)
		auth.DELETE("/logout", ah.logout)
	}

	users := router.Group("/users")
	{
		users.GET("/me", ah.me)
	}

	books := router.Group("/books", ah.requireAccess)
	{
		books.GET("/isbn/:isbn", bh.getByISBN)
		books.GET("/category/:category", bh.getByCategory)
		books.POST("/search", bh.search)
		books.GET("/all", bh.listAll)
		books.POST("", ah.requireAdmin, bh.create)
	}

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
