package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"packline_back_end/internal/auth"
	"packline_back_end/internal/repository"
	"packline_back_end/internal/utils"
)

type AuthHandler struct {
	Admins repository.AdminRepository
	Mailer utils.Mailer
}

// Login : email/mot de passe uniquement. La liste blanche est vérifiée
// AVANT le mot de passe, avec un message distinct : un email hors liste
// n'est pas une erreur d'identifiants.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !auth.IsAuthorized(input.Email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cet email n'est pas autorisé sur le back-office"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.Get(ctx, input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, admin.PasswordHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"email": admin.Email,
		"name":  admin.Name,
		"role":  "admin",
	})
}

// ForgotPassword envoie un lien de réinitialisation par e-mail. La
// réponse est la même que l'email existe ou non : pas de sonde de
// comptes via ce formulaire.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'email' est obligatoire"})
		return
	}

	generic := gin.H{"message": "Si ce compte existe, un e-mail de réinitialisation a été envoyé"}

	if !auth.IsAuthorized(input.Email) {
		c.JSON(http.StatusOK, generic)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.Get(ctx, input.Email)
	if err != nil || admin == nil {
		c.JSON(http.StatusOK, generic)
		return
	}

	token, err := utils.GeneratePasswordResetToken(admin.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du lien"})
		return
	}

	base := os.Getenv("ADMIN_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	link := base + "/admin/reset-password?token=" + url.QueryEscape(token)

	body := utils.PasswordResetHTML(admin.Name, link)
	if err := h.Mailer.Send(admin.Email, "Réinitialisation de votre mot de passe", body); err != nil {
		log.Printf("❌ Envoi du mail de réinitialisation impossible: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'envoyer l'e-mail, réessayez plus tard"})
		return
	}

	c.JSON(http.StatusOK, generic)
}

// ResetPassword consomme le jeton du mail et enregistre le nouveau
// mot de passe.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Jeton et mot de passe (8 caractères minimum) obligatoires"})
		return
	}

	email, err := utils.ParsePasswordResetToken(input.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton de réinitialisation invalide ou expiré"})
		return
	}
	if !auth.IsAuthorized(email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cet email n'est pas autorisé sur le back-office"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.Get(ctx, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Jeton de réinitialisation invalide ou expiré"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du hash du mot de passe"})
		return
	}
	if err := h.Admins.SetPasswordHash(ctx, email, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement du mot de passe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe mis à jour, vous pouvez vous connecter"})
}

// Me permet au layout admin de vérifier la session courante.
func (h *AuthHandler) Me(c *gin.Context) {
	email, _ := c.Get("email")
	name, _ := c.Get("name")
	c.JSON(http.StatusOK, gin.H{"email": email, "name": name, "role": "admin"})
}
