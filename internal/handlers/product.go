package handlers

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"packline_back_end/internal/cache"
	"packline_back_end/internal/models"
	"packline_back_end/internal/repository"
	"packline_back_end/internal/services"
)

type ProductHandler struct {
	Repo       repository.ProductRepository
	Categories repository.CategoryRepository
	Assets     services.AssetStore
	Cache      *cache.Store
}

func validPriceType(t string) bool {
	return t == models.PriceTypeStarting || t == models.PriceTypeFixed || t == models.PriceTypeOnRequest
}

// 🔵 PUBLIC : liste des produits, filtrable par ?category=
func (h *ProductHandler) List(c *gin.Context) {
	ctx := context.Background()
	category := c.Query("category")

	var products []models.Product
	if !h.Cache.GetJSON(ctx, cache.KeyProductsAll, &products) {
		var err error
		products, err = h.Repo.List(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
			return
		}
		h.Cache.SetJSON(ctx, cache.KeyProductsAll, products, cache.ListCacheTTL)
	}

	filtered := services.FilterByCategory(products, category)
	if filtered == nil {
		filtered = []models.Product{}
	}
	c.JSON(http.StatusOK, filtered)
}

// 🔵 Recherche de la barre de navigation : sous-chaîne sur le nom,
// 5 résultats maximum.
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")

	products, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	results := services.SearchProductsByName(products, query, services.SearchResultLimit)
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	p, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// 🔵 QR code pointant vers la fiche produit publique (PNG 256px)
func (h *ProductHandler) QRCode(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	p, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}

	png, err := qrcode.Encode(base+"/products/"+p.ID.String(), qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// 🔵 ADMIN : produits regroupés par catégorie (catégories vides incluses)
func (h *ProductHandler) Grouped(c *gin.Context) {
	ctx := c.Request.Context()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories: " + err.Error()})
		return
	}
	products, err := h.Repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.GroupByCategory(cats, products))
}

type productInput struct {
	Name            string             `json:"name"`
	Category        string             `json:"category"`
	PriceType       string             `json:"priceType"`
	Price           *float64           `json:"price"`
	MinimumOrderQty int                `json:"minimumOrderQty"`
	Description     string             `json:"description"`
	Attributes      []models.Attribute `json:"attributes"`
	Images          []string           `json:"images"`
	IsActive        *bool              `json:"isActive"`
}

// 🟢 Créer un produit. Création en deux temps : le document d'abord
// (images vides), les images ensuite via l'endpoint d'upload — la clé
// de stockage a besoin de l'identifiant.
func (h *ProductHandler) Create(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Name == "" || input.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'category' sont obligatoires"})
		return
	}
	if !validPriceType(input.PriceType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priceType doit être 'starting', 'fixed' ou 'on_request'"})
		return
	}
	if input.PriceType != models.PriceTypeOnRequest && input.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un prix est obligatoire sauf pour les tarifs sur demande"})
		return
	}
	if len(input.Images) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les images s'ajoutent après création, via l'upload dédié"})
		return
	}

	p := models.Product{
		Name:            input.Name,
		Category:        input.Category,
		PriceType:       input.PriceType,
		MinimumOrderQty: input.MinimumOrderQty,
		Description:     input.Description,
		Attributes:      input.Attributes,
		Images:          []string{},
		IsActive:        true,
	}
	if input.PriceType != models.PriceTypeOnRequest {
		p.Price = input.Price
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if p.Attributes == nil {
		p.Attributes = []models.Attribute{}
	}

	ctx := c.Request.Context()
	if err := h.Repo.Create(ctx, &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	h.Cache.Del(ctx, cache.KeyProductsAll, cache.KeyCategoriesActive)
	c.JSON(http.StatusCreated, gin.H{"id": p.ID.String()})
}

// 🟡 Mise à jour partielle. Passer priceType à on_request remet le prix
// à null, la grille ne doit jamais afficher un prix obsolète.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input struct {
		Name            *string             `json:"name"`
		Category        *string             `json:"category"`
		PriceType       *string             `json:"priceType"`
		Price           *float64            `json:"price"`
		MinimumOrderQty *int                `json:"minimumOrderQty"`
		Description     *string             `json:"description"`
		Attributes      *[]models.Attribute `json:"attributes"`
		IsActive        *bool               `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.PriceType != nil && !validPriceType(*input.PriceType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priceType doit être 'starting', 'fixed' ou 'on_request'"})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Repo.Get(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	patch := repository.ProductPatch{
		Name:            input.Name,
		Category:        input.Category,
		PriceType:       input.PriceType,
		Price:           input.Price,
		MinimumOrderQty: input.MinimumOrderQty,
		Description:     input.Description,
		Attributes:      input.Attributes,
		IsActive:        input.IsActive,
	}
	if input.PriceType != nil && *input.PriceType == models.PriceTypeOnRequest {
		patch.Price = nil
		patch.ClearPrice = true
	}

	if err := h.Repo.Update(ctx, id, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit: " + err.Error()})
		return
	}

	h.Cache.Del(ctx, cache.KeyProductsAll, cache.KeyCategoriesActive)
	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour avec succès"})
}

// 🟡 Ajouter une image : la limite de 4 est vérifiée AVANT l'upload
// pour ne pas stocker un binaire jamais référencé.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	p, err := h.Repo.Get(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if len(p.Images) >= models.MaxProductImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un produit ne peut pas avoir plus de 4 images"})
		return
	}

	url, err := h.Assets.Upload(ctx, services.ProductImageKey(p.ID.String(), header.Filename),
		file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image: " + err.Error()})
		return
	}

	images := append(append([]string{}, p.Images...), url)
	if err := h.Repo.Update(ctx, id, repository.ProductPatch{Images: &images}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit: " + err.Error()})
		return
	}

	h.Cache.Del(ctx, cache.KeyProductsAll)
	c.JSON(http.StatusOK, gin.H{"image_url": url, "images": images})
}

// 🟡 Retirer une image : le binaire d'abord, puis le document
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'url' est obligatoire"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.Repo.Get(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	images := []string{}
	found := false
	for _, img := range p.Images {
		if img == input.URL {
			found = true
			continue
		}
		images = append(images, img)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cette image n'appartient pas au produit"})
		return
	}

	if err := h.Assets.RemoveByURL(ctx, input.URL); err != nil {
		log.Printf("⚠️ Image produit déjà supprimée ou introuvable: %v", err)
	}

	if err := h.Repo.Update(ctx, id, repository.ProductPatch{Images: &images}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit: " + err.Error()})
		return
	}

	h.Cache.Del(ctx, cache.KeyProductsAll)
	c.JSON(http.StatusOK, gin.H{"images": images})
}

// 🔴 Supprimer un produit : le namespace d'images entier part avec
// le document.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.Repo.Get(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if err := h.Assets.RemoveAll(ctx, services.ProductNamespace(p.ID.String())); err != nil {
		log.Printf("⚠️ Nettoyage des images du produit %s incomplet: %v", p.ID, err)
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	h.Cache.Del(ctx, cache.KeyProductsAll, cache.KeyCategoriesActive)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}
