package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"packline_back_end/internal/auth"
)

// RequireAdmin vérifie le rôle "admin" ET que l'email du token figure
// toujours dans la liste blanche : un token encore valide d'un admin
// retiré de la liste est rejeté côté serveur.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}

	email, _ := c.Get("email")
	emailStr, _ := email.(string)
	if !auth.IsAuthorized(emailStr) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cet email n'est pas autorisé sur le back-office"})
		c.Abort()
		return
	}

	c.Next()
}
