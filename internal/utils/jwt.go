package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"packline_back_end/internal/models"
)

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return secret
}

// GenerateJWT signe un jeton HS256 pour un admin (validité 24h).
func GenerateJWT(admin models.AdminUser) (string, error) {
	claims := jwt.MapClaims{
		"user_id": admin.Email,
		"email":   admin.Email,
		"name":    admin.Name,
		"role":    "admin",
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret()))
}

// GeneratePasswordResetToken signe un jeton court (1h) réservé à la
// réinitialisation de mot de passe. Le claim purpose empêche de le
// rejouer comme jeton de session.
func GeneratePasswordResetToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email":   email,
		"purpose": "password_reset",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret()))
}

// ParsePasswordResetToken vérifie un jeton de réinitialisation et
// retourne l'email qu'il couvre.
func ParsePasswordResetToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("méthode de signature inattendue")
		}
		return []byte(jwtSecret()), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("jeton de réinitialisation invalide ou expiré")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != "password_reset" {
		return "", errors.New("jeton de réinitialisation invalide ou expiré")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errors.New("jeton de réinitialisation invalide ou expiré")
	}
	return email, nil
}
