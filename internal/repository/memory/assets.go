package memory

import (
	"context"
	"io"
	"strings"
	"sync"
)

// AssetStore en mémoire : mêmes clés et mêmes URLs que MinIO, sans réseau.
type AssetStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string
}

func NewAssetStore() *AssetStore {
	return &AssetStore{
		objects: make(map[string][]byte),
		baseURL: "http://storage.local/packline-images/",
	}
}

func (s *AssetStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return s.baseURL + key, nil
}

func (s *AssetStore) RemoveByURL(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, strings.TrimPrefix(url, s.baseURL))
	return nil
}

func (s *AssetStore) RemoveAll(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	return nil
}

// Keys retourne les clés stockées sous un préfixe (assertions de test).
func (s *AssetStore) Keys(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}
