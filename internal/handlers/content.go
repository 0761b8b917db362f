package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"packline_back_end/internal/models"
	"packline_back_end/internal/repository"
	"packline_back_end/internal/utils"
)

type ContentHandler struct {
	Repo   repository.ContentRepository
	Mailer utils.Mailer
}

// 🔵 Contenu de la page À propos (document unique)
func (h *ContentHandler) GetAbout(c *gin.Context) {
	about, err := h.Repo.GetAbout(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture contenu: " + err.Error()})
		return
	}
	if about == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contenu 'À propos' non renseigné"})
		return
	}
	c.JSON(http.StatusOK, about)
}

// 🟡 Remplacer le document À propos entier (pas de patch partiel : le
// formulaire admin renvoie toujours le contenu complet)
func (h *ContentHandler) SaveAbout(c *gin.Context) {
	var input models.AboutContent
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Heading == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'heading' est obligatoire"})
		return
	}

	if err := h.Repo.SaveAbout(c.Request.Context(), input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement contenu: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contenu 'À propos' enregistré"})
}

// 🔵 Coordonnées de contact (document unique)
func (h *ContentHandler) GetContact(c *gin.Context) {
	info, err := h.Repo.GetContact(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture contact: " + err.Error()})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coordonnées de contact non renseignées"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// 🟡 Enregistrer les coordonnées. mapLat/mapLng arrivent en texte depuis
// le formulaire ; une valeur non exploitable retombe sur les coordonnées
// par défaut plutôt que de rejeter la requête.
func (h *ContentHandler) SaveContact(c *gin.Context) {
	var input struct {
		CompanyName string `json:"companyName"`
		Address     string `json:"address"`
		Phone1      string `json:"phone1"`
		Phone2      string `json:"phone2"`
		Whatsapp    string `json:"whatsapp"`
		Email1      string `json:"email1"`
		Email2      string `json:"email2"`
		MapLat      string `json:"mapLat"`
		MapLng      string `json:"mapLng"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.CompanyName == "" || input.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'companyName' et 'address' sont obligatoires"})
		return
	}

	lat, err := strconv.ParseFloat(input.MapLat, 64)
	if err != nil {
		lat = models.DefaultMapLat
	}
	lng, err := strconv.ParseFloat(input.MapLng, 64)
	if err != nil {
		lng = models.DefaultMapLng
	}

	info := models.ContactInfo{
		CompanyName: input.CompanyName,
		Address:     input.Address,
		Phone1:      input.Phone1,
		Phone2:      input.Phone2,
		Whatsapp:    input.Whatsapp,
		Email1:      input.Email1,
		Email2:      input.Email2,
		MapLat:      lat,
		MapLng:      lng,
	}
	if err := h.Repo.SaveContact(c.Request.Context(), info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement contact: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coordonnées enregistrées"})
}

// 🔵 PUBLIC : formulaire de contact, relayé par e-mail à l'équipe
func (h *ContentHandler) SendMessage(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom, email et message sont obligatoires"})
		return
	}

	to := os.Getenv("CONTACT_INBOX")
	if info, err := h.Repo.GetContact(c.Request.Context()); err == nil && info != nil && info.Email1 != "" {
		to = info.Email1
	}
	if to == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Aucune adresse de réception configurée"})
		return
	}

	body := utils.ContactMessageHTML(input.Name, input.Email, input.Message)
	if err := h.Mailer.Send(to, "Nouveau message depuis le site", body); err != nil {
		log.Printf("❌ Envoi du message de contact impossible: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'envoyer le message, réessayez plus tard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message envoyé, nous revenons vers vous rapidement"})
}
