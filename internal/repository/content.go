package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gocql/gocql"

	"packline_back_end/internal/models"
)

// Clés des documents uniques dans la table site_content
const (
	AboutDocKey   = "about/main"
	ContactDocKey = "contact/main"
)

// ScyllaContentRepository : les pages À propos et Contact sont des
// documents uniques, stockés en JSON dans la table `site_content`.
type ScyllaContentRepository struct {
	session *gocql.Session
}

func NewScyllaContentRepository(session *gocql.Session) *ScyllaContentRepository {
	return &ScyllaContentRepository{session: session}
}

func (r *ScyllaContentRepository) get(ctx context.Context, key string, v any) (bool, error) {
	var payload string
	err := r.session.Query(
		`SELECT payload FROM site_content WHERE doc_key = ?`, key,
	).WithContext(ctx).Scan(&payload)
	if err == gocql.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return false, err
	}
	return true, nil
}

func (r *ScyllaContentRepository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.session.Query(
		`INSERT INTO site_content (doc_key, payload, updated_at) VALUES (?, ?, ?)`,
		key, string(data), time.Now(),
	).WithContext(ctx).Exec()
}

func (r *ScyllaContentRepository) GetAbout(ctx context.Context) (*models.AboutContent, error) {
	var content models.AboutContent
	found, err := r.get(ctx, AboutDocKey, &content)
	if err != nil || !found {
		return nil, err
	}
	return &content, nil
}

func (r *ScyllaContentRepository) SaveAbout(ctx context.Context, content models.AboutContent) error {
	content.UpdatedAt = time.Now()
	return r.save(ctx, AboutDocKey, content)
}

func (r *ScyllaContentRepository) GetContact(ctx context.Context) (*models.ContactInfo, error) {
	var info models.ContactInfo
	found, err := r.get(ctx, ContactDocKey, &info)
	if err != nil || !found {
		return nil, err
	}
	return &info, nil
}

func (r *ScyllaContentRepository) SaveContact(ctx context.Context, info models.ContactInfo) error {
	info.UpdatedAt = time.Now()
	return r.save(ctx, ContactDocKey, info)
}
