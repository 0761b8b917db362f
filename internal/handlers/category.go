package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"packline_back_end/internal/cache"
	"packline_back_end/internal/models"
	"packline_back_end/internal/repository"
	"packline_back_end/internal/services"
	"packline_back_end/internal/utils"
)

type CategoryHandler struct {
	Repo     repository.CategoryRepository
	Products repository.ProductRepository
	Assets   services.AssetStore
	Cache    *cache.Store
}

// 🔵 PUBLIC : catégories actives ayant au moins un produit
func (h *CategoryHandler) ListPublic(c *gin.Context) {
	ctx := context.Background()

	var cached []models.Category
	if h.Cache.GetJSON(ctx, cache.KeyCategoriesActive, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	cats, err := h.Repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories: " + err.Error()})
		return
	}
	products, err := h.Products.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	visible := services.ActiveCategoriesWithProducts(cats, products)

	h.Cache.SetJSON(ctx, cache.KeyCategoriesActive, visible, cache.ListCacheTTL)
	c.JSON(http.StatusOK, visible)
}

// 🔵 ADMIN : toutes les catégories, triées par ordre croissant
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories: " + err.Error()})
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	c.JSON(http.StatusOK, cats)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.Repo.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégorie: " + err.Error()})
		return
	}
	if cat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// 🟢 Créer une catégorie (multipart : champs + image obligatoire).
// Le slug devient la clé du document et ne changera plus.
func (h *CategoryHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	slug := c.PostForm("slug")
	order := 0
	if raw := c.PostForm("order"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'order' doit être un entier"})
			return
		}
		order = parsed
	}

	// Validation complète avant le moindre appel distant :
	// nom, slug et exactement une image.
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de dériver un slug depuis ce nom"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Une image est obligatoire pour une catégorie"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()

	cat := models.Category{
		ID:       slug,
		Name:     name,
		Slug:     slug,
		Order:    order,
		IsActive: true,
	}

	// Document d'abord, image ensuite : une collision de slug ne doit
	// pas écraser l'image de la catégorie existante.
	if err := h.Repo.Create(ctx, cat); err != nil {
		if err == repository.ErrAlreadyExists {
			c.JSON(http.StatusConflict, gin.H{"error": "Ce slug existe déjà, choisissez un autre nom"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie: " + err.Error()})
		return
	}

	url, err := h.Assets.Upload(ctx, services.CategoryImageKey(slug), file, header.Size,
		header.Header.Get("Content-Type"))
	if err != nil {
		// Le document existe sans image : récupérable via le formulaire d'édition
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image: " + err.Error()})
		return
	}

	if err := h.Repo.Update(ctx, slug, repository.CategoryPatch{Image: &url}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie: " + err.Error()})
		return
	}

	h.Cache.Del(ctx, cache.KeyCategoriesAll, cache.KeyCategoriesActive)

	c.JSON(http.StatusCreated, gin.H{"id": slug, "image": url})
}

// 🟡 Mettre à jour nom/ordre. Le slug (clé) n'est pas modifiable.
func (h *CategoryHandler) Update(c *gin.Context) {
	slug := c.Param("slug")

	var input struct {
		Name  *string `json:"name"`
		Order *int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Name == nil && input.Order == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune donnée à mettre à jour"})
		return
	}

	ctx := c.Request.Context()
	patch := repository.CategoryPatch{Name: input.Name, Order: input.Order}
	if err := h.Repo.Update(ctx, slug, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	h.Cache.Del(ctx, cache.KeyCategoriesAll, cache.KeyCategoriesActive)
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie mise à jour avec succès"})
}

// 🟡 Remplacer l'image : la clé de stockage est le namespace nu, le
// nouvel upload écrase l'ancien binaire.
func (h *CategoryHandler) UploadImage(c *gin.Context) {
	slug := c.Param("slug")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()

	cat, err := h.Repo.Get(ctx, slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégorie: " + err.Error()})
		return
	}
	if cat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	url, err := h.Assets.Upload(ctx, services.CategoryImageKey(slug), file, header.Size,
		header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image: " + err.Error()})
		return
	}

	if err := h.Repo.Update(ctx, slug, repository.CategoryPatch{Image: &url}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie: " + err.Error()})
		return
	}

	h.Cache.Del(ctx, cache.KeyCategoriesAll, cache.KeyCategoriesActive)
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// 🟡 Activer/désactiver : ne touche qu'au champ is_active
func (h *CategoryHandler) ToggleActive(c *gin.Context) {
	slug := c.Param("slug")

	var input struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'isActive' est obligatoire"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Repo.SetActive(ctx, slug, *input.IsActive); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	h.Cache.Del(ctx, cache.KeyCategoriesAll, cache.KeyCategoriesActive)
	c.JSON(http.StatusOK, gin.H{"message": "Visibilité mise à jour"})
}

// 🔴 Supprimer : le document d'abord, puis l'image en cascade.
// Les deux étapes ne sont pas transactionnelles ; un échec de la
// suppression d'image laisse un binaire orphelin (assumé).
func (h *CategoryHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	cat, err := h.Repo.Get(ctx, slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégorie: " + err.Error()})
		return
	}
	if cat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	if err := h.Repo.Delete(ctx, slug); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	if cat.Image != nil && *cat.Image != "" {
		if err := h.Assets.RemoveByURL(ctx, *cat.Image); err != nil {
			log.Printf("⚠️ Image de catégorie déjà supprimée ou introuvable: %v", err)
		}
	}

	h.Cache.Del(ctx, cache.KeyCategoriesAll, cache.KeyCategoriesActive)
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée avec succès"})
}
