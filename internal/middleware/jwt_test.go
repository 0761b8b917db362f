package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"packline_back_end/internal/models"
	"packline_back_end/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin/ping", AuthRequired(), RequireAdmin, func(c *gin.Context) {
		email, _ := c.Get("email")
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	return r
}

func getWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "admin@packline.in")

	token, err := utils.GenerateJWT(models.AdminUser{Email: "admin@packline.in", Name: "Admin"})
	if err != nil {
		t.Fatal(err)
	}

	w := getWithToken(protectedRouter(), token)
	if w.Code != http.StatusOK {
		t.Fatalf("statut %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequiredRejectsMissingOrBadToken(t *testing.T) {
	r := protectedRouter()

	if w := getWithToken(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("sans token: %d", w.Code)
	}
	if w := getWithToken(r, "pas-un-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("token illisible: %d", w.Code)
	}
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"email": "admin@packline.in",
		"role":  "admin",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("super_secret"))
	if err != nil {
		t.Fatal(err)
	}

	if w := getWithToken(protectedRouter(), token); w.Code != http.StatusUnauthorized {
		t.Errorf("token expiré: %d", w.Code)
	}
}

// Un token encore valide d'un admin retiré de la liste blanche est
// rejeté : la liste est revérifiée à chaque requête.
func TestRequireAdminRechecksAllowList(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "autre@packline.in")

	token, err := utils.GenerateJWT(models.AdminUser{Email: "retire@packline.in", Name: "Retiré"})
	if err != nil {
		t.Fatal(err)
	}

	if w := getWithToken(protectedRouter(), token); w.Code != http.StatusForbidden {
		t.Errorf("admin retiré de la liste: %d", w.Code)
	}
}
