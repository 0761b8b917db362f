package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"packline_back_end/internal/handlers"
	"packline_back_end/internal/middleware"
)

// RegisterRoutes câble l'API : lectures publiques sous /api, écritures
// sous /api/admin derrière JWT + liste blanche.
func RegisterRoutes(r *gin.Engine, h handlers.Set, rdb *redis.Client) {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		// --- Vitrine publique ---
		api.GET("/categories", h.Categories.ListPublic)
		api.GET("/products", h.Products.List)
		api.GET("/products/search", h.Products.Search)
		api.GET("/products/:id", h.Products.Get)
		api.GET("/products/:id/qrcode", h.Products.QRCode)
		api.GET("/hero", h.Hero.ListActive)
		api.GET("/about", h.Content.GetAbout)
		api.GET("/contact", h.Content.GetContact)
		api.POST("/contact/message", h.Content.SendMessage)

		// --- Authentification ---
		api.POST("/auth/login", middleware.LoginRateLimit(rdb), h.Auth.Login)
		api.POST("/auth/forgot-password", h.Auth.ForgotPassword)
		api.POST("/auth/reset-password", h.Auth.ResetPassword)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.GET("/me", h.Auth.Me)

		admin.GET("/categories", h.Categories.List)
		admin.GET("/categories/:slug", h.Categories.Get)
		admin.POST("/categories", h.Categories.Create)
		admin.PUT("/categories/:slug", h.Categories.Update)
		admin.POST("/categories/:slug/image", h.Categories.UploadImage)
		admin.PATCH("/categories/:slug/active", h.Categories.ToggleActive)
		admin.DELETE("/categories/:slug", h.Categories.Delete)

		admin.GET("/products", h.Products.Grouped)
		admin.POST("/products", h.Products.Create)
		admin.PATCH("/products/:id", h.Products.Update)
		admin.POST("/products/:id/images", h.Products.UploadImage)
		admin.DELETE("/products/:id/images", h.Products.RemoveImage)
		admin.DELETE("/products/:id", h.Products.Delete)

		admin.GET("/hero", h.Hero.List)
		admin.POST("/hero", h.Hero.Create)
		admin.PATCH("/hero/:id", h.Hero.EditDraft)
		admin.POST("/hero/:id/image", h.Hero.UploadDraftImage)
		admin.POST("/hero/:id/save", h.Hero.SaveDraft)
		admin.DELETE("/hero/:id", h.Hero.Delete)

		admin.PUT("/about", h.Content.SaveAbout)
		admin.PUT("/contact", h.Content.SaveContact)
	}
}
