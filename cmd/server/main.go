package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"packline_back_end/internal/cache"
	"packline_back_end/internal/config"
	"packline_back_end/internal/database"
	"packline_back_end/internal/handlers"
	"packline_back_end/internal/repository"
	"packline_back_end/internal/routes"
	"packline_back_end/internal/services"
	"packline_back_end/internal/utils"
)

func main() {
	config.Load()
	database.ConnectDatabases()
	defer database.CloseScylla()

	catalog, err := database.GetCatalogSession()
	if err != nil {
		log.Fatalf("❌ Session catalogue indisponible: %v", err)
	}
	admins, err := database.GetAdminsSession()
	if err != nil {
		log.Fatalf("❌ Session admins indisponible: %v", err)
	}

	assets := services.NewMinioAssetStore(database.MinIO,
		os.Getenv("MINIO_ENDPOINT"),
		os.Getenv("MINIO_BUCKET"),
		os.Getenv("MINIO_USE_SSL") == "true")

	categories := repository.NewScyllaCategoryRepository(catalog)
	products := repository.NewScyllaProductRepository(catalog)
	hero := repository.NewScyllaHeroRepository(catalog)
	content := repository.NewScyllaContentRepository(catalog)
	store := cache.New(database.Redis)

	h := handlers.Set{
		Auth: &handlers.AuthHandler{
			Admins: repository.NewScyllaAdminRepository(admins),
			Mailer: utils.SMTPMailer{},
		},
		Categories: &handlers.CategoryHandler{
			Repo:     categories,
			Products: products,
			Assets:   assets,
			Cache:    store,
		},
		Products: &handlers.ProductHandler{
			Repo:       products,
			Categories: categories,
			Assets:     assets,
			Cache:      store,
		},
		Hero: &handlers.HeroHandler{
			Repo:   hero,
			Assets: assets,
			Cache:  store,
			Drafts: services.NewHeroDraftManager(),
		},
		Content: &handlers.ContentHandler{
			Repo:   content,
			Mailer: utils.SMTPMailer{},
		},
	}

	r := gin.Default()
	routes.RegisterRoutes(r, h, database.Redis)

	port := config.Getenv("PORT", "8080")
	log.Println("🚀 Serveur démarré sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}
