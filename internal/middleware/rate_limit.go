package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// loginAttempts compte les échecs de connexion par email. Redis en
// production, une implémentation mémoire dans les tests.
type loginAttempts interface {
	get(ctx context.Context, email string) int
	incr(ctx context.Context, email string)
	reset(ctx context.Context, email string)
}

type redisAttempts struct {
	rdb *redis.Client
}

func (s redisAttempts) key(email string) string {
	return "login_attempts:" + email
}

func (s redisAttempts) get(ctx context.Context, email string) int {
	attempts, _ := s.rdb.Get(ctx, s.key(email)).Int()
	return attempts
}

func (s redisAttempts) incr(ctx context.Context, email string) {
	pipe := s.rdb.Pipeline()
	pipe.Incr(ctx, s.key(email))
	pipe.Expire(ctx, s.key(email), LoginCooldown)
	_, _ = pipe.Exec(ctx)
}

func (s redisAttempts) reset(ctx context.Context, email string) {
	s.rdb.Del(ctx, s.key(email))
}

// LoginRateLimit limite les tentatives de connexion ÉCHOUÉES par email.
// Seul un 401 compte : un admin qui se connecte correctement ne doit
// jamais se retrouver bloqué. Sans client Redis (tests, mode dégradé),
// le middleware laisse passer.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return loginRateLimitWith(redisAttempts{rdb: rdb})
}

func loginRateLimitWith(store loginAttempts) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		if store.get(ctx, input.Email) >= LoginMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de tentatives de connexion, réessayez plus tard",
			})
			c.Abort()
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			store.incr(ctx, input.Email)
		case http.StatusOK:
			store.reset(ctx, input.Email)
		}
	}
}
