package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"packline_back_end/internal/models"
	"packline_back_end/internal/repository/memory"
	"packline_back_end/internal/utils"
)

func newAuthEnv(t *testing.T) (*gin.Engine, *memory.AdminRepo, *fakeMailer) {
	t.Helper()
	t.Setenv("ADMIN_EMAILS", "admin@packline.in")

	admins := memory.NewAdminRepo()
	hash, err := utils.HashPassword("motdepasse")
	if err != nil {
		t.Fatal(err)
	}
	admins.Put(models.AdminUser{Email: "admin@packline.in", Name: "Admin", PasswordHash: hash})

	mailer := &fakeMailer{}
	r := gin.New()
	h := &AuthHandler{Admins: admins, Mailer: mailer}
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/forgot-password", h.ForgotPassword)
	r.POST("/api/auth/reset-password", h.ResetPassword)
	return r, admins, mailer
}

func postLogin(t *testing.T, r *gin.Engine, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	env := &testEnv{router: r}
	return env.doJSON(t, http.MethodPost, "/api/auth/login", payload)
}

func TestLoginSuccess(t *testing.T) {
	r, _, _ := newAuthEnv(t)

	w := postLogin(t, r, map[string]any{"email": "admin@packline.in", "password": "motdepasse"})
	wantStatus(t, w, http.StatusOK)

	resp := decode[map[string]string](t, w)
	if resp["token"] == "" {
		t.Error("un jeton est attendu")
	}
	if resp["role"] != "admin" || resp["email"] != "admin@packline.in" {
		t.Errorf("réponse de login: %v", resp)
	}
}

// La liste blanche est vérifiée avant le mot de passe, avec un message
// distinct : un compte hors liste reste bloqué même avec le bon secret.
func TestLoginRejectsUnlistedEmail(t *testing.T) {
	r, admins, _ := newAuthEnv(t)

	hash, _ := utils.HashPassword("motdepasse")
	admins.Put(models.AdminUser{Email: "intrus@example.com", Name: "Intrus", PasswordHash: hash})

	w := postLogin(t, r, map[string]any{"email": "intrus@example.com", "password": "motdepasse"})
	wantStatus(t, w, http.StatusForbidden)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _, _ := newAuthEnv(t)

	w := postLogin(t, r, map[string]any{"email": "admin@packline.in", "password": "faux"})
	wantStatus(t, w, http.StatusUnauthorized)
}

func TestForgotPasswordSendsResetLink(t *testing.T) {
	r, _, mailer := newAuthEnv(t)
	env := &testEnv{router: r}

	w := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password",
		map[string]any{"email": "admin@packline.in"})
	wantStatus(t, w, http.StatusOK)

	if len(mailer.sent) != 1 || mailer.sent[0] != "admin@packline.in" {
		t.Fatalf("destinataires: %v", mailer.sent)
	}
	if !strings.Contains(mailer.bodies[0], "reset-password?token=") {
		t.Error("le mail doit contenir le lien de réinitialisation")
	}
}

// Email inconnu ou hors liste : même réponse générique, aucun mail.
// Le formulaire ne doit pas permettre de sonder les comptes.
func TestForgotPasswordUnknownEmail(t *testing.T) {
	r, _, mailer := newAuthEnv(t)
	env := &testEnv{router: r}

	w := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password",
		map[string]any{"email": "intrus@example.com"})
	wantStatus(t, w, http.StatusOK)

	if len(mailer.sent) != 0 {
		t.Fatalf("aucun mail attendu: %v", mailer.sent)
	}
}

func TestResetPassword(t *testing.T) {
	r, _, _ := newAuthEnv(t)
	env := &testEnv{router: r}

	token, err := utils.GeneratePasswordResetToken("admin@packline.in")
	if err != nil {
		t.Fatal(err)
	}

	w := env.doJSON(t, http.MethodPost, "/api/auth/reset-password",
		map[string]any{"token": token, "password": "nouveau-secret"})
	wantStatus(t, w, http.StatusOK)

	// L'ancien mot de passe ne passe plus, le nouveau oui
	w = postLogin(t, r, map[string]any{"email": "admin@packline.in", "password": "motdepasse"})
	wantStatus(t, w, http.StatusUnauthorized)
	w = postLogin(t, r, map[string]any{"email": "admin@packline.in", "password": "nouveau-secret"})
	wantStatus(t, w, http.StatusOK)
}

func TestResetPasswordRejectsBadToken(t *testing.T) {
	r, _, _ := newAuthEnv(t)
	env := &testEnv{router: r}

	w := env.doJSON(t, http.MethodPost, "/api/auth/reset-password",
		map[string]any{"token": "pas-un-jeton", "password": "nouveau-secret"})
	wantStatus(t, w, http.StatusUnauthorized)

	// Un jeton de session valide n'est pas un jeton de réinitialisation
	session, err := utils.GenerateJWT(models.AdminUser{Email: "admin@packline.in", Name: "Admin"})
	if err != nil {
		t.Fatal(err)
	}
	w = env.doJSON(t, http.MethodPost, "/api/auth/reset-password",
		map[string]any{"token": session, "password": "nouveau-secret"})
	wantStatus(t, w, http.StatusUnauthorized)

	// Mot de passe trop court
	token, err := utils.GeneratePasswordResetToken("admin@packline.in")
	if err != nil {
		t.Fatal(err)
	}
	w = env.doJSON(t, http.MethodPost, "/api/auth/reset-password",
		map[string]any{"token": token, "password": "court"})
	wantStatus(t, w, http.StatusBadRequest)
}

// Email dans la liste mais sans compte en base : mêmes identifiants
// refusés qu'un mauvais mot de passe, pas de fuite d'information.
func TestLoginListedEmailWithoutAccount(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "fantome@packline.in")

	r := gin.New()
	h := &AuthHandler{Admins: memory.NewAdminRepo()}
	r.POST("/api/auth/login", h.Login)

	w := postLogin(t, r, map[string]any{"email": "fantome@packline.in", "password": "x"})
	wantStatus(t, w, http.StatusUnauthorized)
}
