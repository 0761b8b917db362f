package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// AssetStore gère le cycle de vie des binaires d'un espace de stockage
// partitionné par entité. Il ne touche jamais aux documents du catalogue :
// c'est à l'appelant de mettre à jour le champ image après un upload.
type AssetStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	RemoveByURL(ctx context.Context, url string) error
	RemoveAll(ctx context.Context, prefix string) error
}

// Clés de stockage par entité. Catégories et slides hero utilisent la clé
// nue de leur namespace : un second upload écrase le premier (une seule
// image par entité). Les produits suffixent un horodatage pour empiler
// jusqu'à quatre images sans collision.
func CategoryImageKey(slug string) string {
	return "categories/" + slug
}

func HeroImageKey(slideID string) string {
	return "hero/" + slideID
}

func ProductImageKey(productID, filename string) string {
	return fmt.Sprintf("products/%s/%d-%s", productID, time.Now().UnixNano(), filename)
}

func ProductNamespace(productID string) string {
	return "products/" + productID + "/"
}

// MinioAssetStore stocke les binaires dans un bucket MinIO unique et
// retourne des URLs publiques http(s)://<endpoint>/<bucket>/<clé>.
type MinioAssetStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioAssetStore(client *minio.Client, endpoint, bucket string, useSSL bool) *MinioAssetStore {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &MinioAssetStore{
		client:  client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("%s://%s/%s/", scheme, endpoint, bucket),
	}
}

func (s *MinioAssetStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return s.baseURL + key, nil
}

// keyFromURL retrouve la clé d'objet depuis une URL retournée par Upload.
func (s *MinioAssetStore) keyFromURL(url string) string {
	return strings.TrimPrefix(url, s.baseURL)
}

func (s *MinioAssetStore) RemoveByURL(ctx context.Context, url string) error {
	return s.client.RemoveObject(ctx, s.bucket, s.keyFromURL(url), minio.RemoveObjectOptions{})
}

// RemoveAll liste puis supprime tous les objets d'un namespace.
// Utilisé uniquement à la suppression d'une entité.
func (s *MinioAssetStore) RemoveAll(ctx context.Context, prefix string) error {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objects {
		if object.Err != nil {
			return object.Err
		}
		if err := s.client.RemoveObject(ctx, s.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return nil
}
