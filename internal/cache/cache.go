package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL du cache des listes publiques (catégories, produits)
const ListCacheTTL = time.Hour

// Clés de cache invalidées par les écritures admin
const (
	KeyCategoriesAll    = "categories:all"
	KeyCategoriesActive = "categories:active"
	KeyProductsAll      = "products:all"
	KeyHeroActive       = "hero:active"
)

// Store enveloppe Redis pour le cache de lecture. Un Store nil (ou sans
// client) est valide et ne fait rien : les tests et le mode dégradé
// fonctionnent sans Redis.
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// GetJSON lit une entrée de cache dans v. Retourne false si absente.
func (s *Store) GetJSON(ctx context.Context, key string, v any) bool {
	if s == nil || s.rdb == nil {
		return false
	}
	data, err := s.rdb.Get(ctx, key).Result()
	if err != nil || data == "" {
		return false
	}
	return json.Unmarshal([]byte(data), v) == nil
}

// SetJSON écrit une entrée de cache, silencieusement en cas d'échec.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if s == nil || s.rdb == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		s.rdb.Set(ctx, key, data, ttl)
	}
}

// Del invalide des clés après une écriture.
func (s *Store) Del(ctx context.Context, keys ...string) {
	if s == nil || s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, keys...)
}
