package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"packline_back_end/internal/cache"
	"packline_back_end/internal/models"
	"packline_back_end/internal/repository"
	"packline_back_end/internal/services"
)

type HeroHandler struct {
	Repo   repository.HeroRepository
	Assets services.AssetStore
	Cache  *cache.Store
	Drafts *services.HeroDraftManager
}

// 🔵 PUBLIC : slides actifs triés par ordre
func (h *HeroHandler) ListActive(c *gin.Context) {
	ctx := context.Background()

	var cached []models.HeroSlide
	if h.Cache.GetJSON(ctx, cache.KeyHeroActive, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	slides, err := h.Repo.ListActive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture slides: " + err.Error()})
		return
	}
	if slides == nil {
		slides = []models.HeroSlide{}
	}

	h.Cache.SetJSON(ctx, cache.KeyHeroActive, slides, cache.ListCacheTTL)
	c.JSON(http.StatusOK, slides)
}

// 🔵 ADMIN : relit tous les slides et réamorce l'éditeur. Les brouillons
// en cours sont jetés : recharger la page = repartir de l'enregistré.
func (h *HeroHandler) List(c *gin.Context) {
	slides, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture slides: " + err.Error()})
		return
	}
	if slides == nil {
		slides = []models.HeroSlide{}
	}

	h.Drafts.Seed(slides)

	states := make(map[string]services.HeroDraftState, len(slides))
	for _, s := range slides {
		if state, err := h.Drafts.State(s.ID); err == nil {
			states[s.ID.String()] = state
		}
	}
	c.JSON(http.StatusOK, gin.H{"slides": slides, "drafts": states})
}

// 🟢 Créer un slide : actif d'emblée, sans image, placé en fin de liste
func (h *HeroHandler) Create(c *gin.Context) {
	var input struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'title' est obligatoire"})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture slides: " + err.Error()})
		return
	}

	slide := models.HeroSlide{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Image:    "",
		Order:    len(existing) + 1,
		IsActive: true,
	}
	if err := h.Repo.Create(ctx, &slide); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création slide: " + err.Error()})
		return
	}

	h.Cache.Del(ctx, cache.KeyHeroActive)
	c.JSON(http.StatusCreated, slide)
}

// 🟡 Éditer le brouillon d'un slide. Rien n'est persisté : seul
// l'enregistrement explicite touche le store.
func (h *HeroHandler) EditDraft(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input struct {
		Title    *string `json:"title"`
		Subtitle *string `json:"subtitle"`
		Order    *int    `json:"order"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	state, err := h.Drafts.Edit(id, repository.HeroPatch{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Order:    input.Order,
		IsActive: input.IsActive,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brouillon introuvable, rechargez la liste des slides"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// 🟡 Uploader l'image d'un brouillon : le binaire est persisté tout de
// suite (clé écrasante hero/<id>), mais le document distant ne référence
// la nouvelle URL qu'à l'enregistrement.
func (h *HeroHandler) UploadDraftImage(c *gin.Context) {
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
	url, err := h.Assets.Upload(ctx, services.HeroImageKey(id.String()), file, header.Size,
		header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image: " + err.Error()})
		return
	}

	state, err := h.Drafts.SetImage(id, url)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brouillon introuvable, rechargez la liste des slides"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// 🟡 Enregistrer un brouillon : refusé si rien n'a changé ou si un
// enregistrement est déjà en vol. Après écriture, le slide est relu
// depuis le store et les deux copies resynchronisées.
func (h *HeroHandler) SaveDraft(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	draft, err := h.Drafts.BeginSave(id)
	switch err {
	case nil:
	case services.ErrDraftNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Brouillon introuvable, rechargez la liste des slides"})
		return
	case services.ErrDraftClean:
		c.JSON(http.StatusConflict, gin.H{"error": "Aucune modification à enregistrer"})
		return
	case services.ErrSaveInFlight:
		c.JSON(http.StatusConflict, gin.H{"error": "Un enregistrement est déjà en cours pour ce slide"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	patch := repository.HeroPatch{
		Title:    &draft.Title,
		Subtitle: &draft.Subtitle,
		Image:    &draft.Image,
		Order:    &draft.Order,
		IsActive: &draft.IsActive,
	}
	if err := h.Repo.Update(ctx, id, patch); err != nil {
		h.Drafts.FinishSave(id, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement slide: " + err.Error()})
		return
	}

	refreshed, err := h.Repo.Get(ctx, id)
	h.Drafts.FinishSave(id, refreshed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur relecture slide: " + err.Error()})
		return
	}
	if refreshed == nil {
		// Slide supprimé entre l'écriture et la relecture : le brouillon
		// n'a plus d'objet.
		h.Drafts.Forget(id)
		h.Cache.Del(ctx, cache.KeyHeroActive)
		c.JSON(http.StatusNotFound, gin.H{"error": "Slide introuvable"})
		return
	}

	h.Cache.Del(ctx, cache.KeyHeroActive)
	c.JSON(http.StatusOK, gin.H{"message": "Slide enregistré", "slide": refreshed})
}

// 🔴 Supprimer un slide : document, image et brouillon
func (h *HeroHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx := c.Request.Context()
	slide, err := h.Repo.Get(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture slide: " + err.Error()})
		return
	}
	if slide == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Slide introuvable"})
		return
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	if slide.Image != "" {
		if err := h.Assets.RemoveByURL(ctx, slide.Image); err != nil {
			log.Printf("⚠️ Image du slide %s déjà supprimée ou introuvable: %v", id, err)
		}
	}
	h.Drafts.Forget(id)

	h.Cache.Del(ctx, cache.KeyHeroActive)
	c.JSON(http.StatusOK, gin.H{"message": "Slide supprimé avec succès"})
}
