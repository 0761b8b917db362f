package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type memoryAttempts struct {
	counts map[string]int
}

func newMemoryAttempts() *memoryAttempts {
	return &memoryAttempts{counts: make(map[string]int)}
}

func (s *memoryAttempts) get(ctx context.Context, email string) int { return s.counts[email] }
func (s *memoryAttempts) incr(ctx context.Context, email string)    { s.counts[email]++ }
func (s *memoryAttempts) reset(ctx context.Context, email string)   { delete(s.counts, email) }

// loginRouter répond 200 ou 401 selon le mot de passe, comme le vrai
// handler de login.
func loginRouter(store loginAttempts) *gin.Engine {
	r := gin.New()
	r.POST("/login", loginRateLimitWith(store), func(c *gin.Context) {
		var input struct {
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.Password != "bon" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": "x"})
	})
	return r
}

func postLoginAttempt(r *gin.Engine, email, password string) int {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

// Seuls les échecs comptent : après la limite de 401, l'email est bloqué.
func TestLoginRateLimitBlocksAfterFailures(t *testing.T) {
	store := newMemoryAttempts()
	r := loginRouter(store)

	for i := 0; i < LoginMaxAttempts; i++ {
		if code := postLoginAttempt(r, "admin@packline.in", "faux"); code != http.StatusUnauthorized {
			t.Fatalf("tentative %d: statut %d", i+1, code)
		}
	}

	if code := postLoginAttempt(r, "admin@packline.in", "bon"); code != http.StatusTooManyRequests {
		t.Fatalf("après %d échecs l'email est bloqué, obtenu %d", LoginMaxAttempts, code)
	}

	// Un autre email n'est pas affecté
	if code := postLoginAttempt(r, "autre@packline.in", "bon"); code != http.StatusOK {
		t.Fatalf("le blocage est par email, obtenu %d", code)
	}
}

// Des connexions réussies en série ne doivent jamais déclencher le
// blocage : seul un 401 incrémente le compteur.
func TestLoginRateLimitIgnoresSuccesses(t *testing.T) {
	store := newMemoryAttempts()
	r := loginRouter(store)

	for i := 0; i < LoginMaxAttempts+2; i++ {
		if code := postLoginAttempt(r, "admin@packline.in", "bon"); code != http.StatusOK {
			t.Fatalf("connexion réussie %d bloquée: statut %d", i+1, code)
		}
	}
	if got := store.get(context.Background(), "admin@packline.in"); got != 0 {
		t.Fatalf("les succès ne comptent pas comme tentatives: %d", got)
	}
}

// Une connexion réussie remet le compteur d'échecs à zéro.
func TestLoginRateLimitResetsOnSuccess(t *testing.T) {
	store := newMemoryAttempts()
	r := loginRouter(store)

	for i := 0; i < LoginMaxAttempts-1; i++ {
		postLoginAttempt(r, "admin@packline.in", "faux")
	}
	if code := postLoginAttempt(r, "admin@packline.in", "bon"); code != http.StatusOK {
		t.Fatalf("connexion sous la limite: statut %d", code)
	}

	// Le compteur est reparti de zéro : de nouveaux échecs sont permis
	if code := postLoginAttempt(r, "admin@packline.in", "faux"); code != http.StatusUnauthorized {
		t.Fatalf("après un succès le compteur repart de zéro, obtenu %d", code)
	}
	if got := store.get(context.Background(), "admin@packline.in"); got != 1 {
		t.Fatalf("compteur après reset puis un échec: %d", got)
	}
}

// Sans client Redis le middleware laisse passer.
func TestLoginRateLimitWithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/login", LoginRateLimit(nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if code := postLoginAttempt(r, "admin@packline.in", "bon"); code != http.StatusOK {
		t.Fatalf("statut %d", code)
	}
}
