package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"packline_back_end/internal/models"
)

// ScyllaCategoryRepository : les catégories sont stockées dans la table
// `categories`, le slug sert de clé de partition.
type ScyllaCategoryRepository struct {
	session *gocql.Session
}

func NewScyllaCategoryRepository(session *gocql.Session) *ScyllaCategoryRepository {
	return &ScyllaCategoryRepository{session: session}
}

func (r *ScyllaCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	iter := r.session.Query(
		`SELECT slug, name, display_order, is_active, image, created_at FROM categories`,
	).WithContext(ctx).Iter()

	var cats []models.Category
	var c models.Category
	var image string

	for iter.Scan(&c.Slug, &c.Name, &c.Order, &c.IsActive, &image, &c.CreatedAt) {
		c.ID = c.Slug
		if image != "" {
			img := image
			c.Image = &img
		}
		cats = append(cats, c)
		c = models.Category{}
		image = ""
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	// ScyllaDB ne trie pas un scan de partition : tri applicatif par ordre croissant
	sort.Slice(cats, func(i, j int) bool { return cats[i].Order < cats[j].Order })

	return cats, nil
}

func (r *ScyllaCategoryRepository) Get(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	var image string

	err := r.session.Query(
		`SELECT slug, name, display_order, is_active, image, created_at FROM categories WHERE slug = ?`,
		slug,
	).WithContext(ctx).Scan(&c.Slug, &c.Name, &c.Order, &c.IsActive, &image, &c.CreatedAt)
	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.ID = c.Slug
	if image != "" {
		c.Image = &image
	}
	return &c, nil
}

func (r *ScyllaCategoryRepository) Create(ctx context.Context, cat models.Category) error {
	image := ""
	if cat.Image != nil {
		image = *cat.Image
	}
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = time.Now()
	}

	// IF NOT EXISTS : la collision de slug doit remonter comme une erreur
	// distincte, pas écraser la catégorie existante.
	applied, err := r.session.Query(
		`INSERT INTO categories (slug, name, display_order, is_active, image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) IF NOT EXISTS`,
		cat.Slug, cat.Name, cat.Order, cat.IsActive, image, cat.CreatedAt,
	).WithContext(ctx).MapScanCAS(map[string]interface{}{})
	if err != nil {
		return err
	}
	if !applied {
		return ErrAlreadyExists
	}
	return nil
}

func (r *ScyllaCategoryRepository) Update(ctx context.Context, slug string, patch CategoryPatch) error {
	updates := []string{}
	values := []interface{}{}

	if patch.Name != nil {
		updates = append(updates, "name = ?")
		values = append(values, *patch.Name)
	}
	if patch.Order != nil {
		updates = append(updates, "display_order = ?")
		values = append(values, *patch.Order)
	}
	if patch.Image != nil {
		updates = append(updates, "image = ?")
		values = append(values, *patch.Image)
	}
	if patch.IsActive != nil {
		updates = append(updates, "is_active = ?")
		values = append(values, *patch.IsActive)
	}

	if len(updates) == 0 {
		return nil
	}

	values = append(values, slug)
	query := "UPDATE categories SET " + strings.Join(updates, ", ") + " WHERE slug = ?"

	return r.session.Query(query, values...).WithContext(ctx).Exec()
}

func (r *ScyllaCategoryRepository) Delete(ctx context.Context, slug string) error {
	return r.session.Query(`DELETE FROM categories WHERE slug = ?`, slug).WithContext(ctx).Exec()
}

func (r *ScyllaCategoryRepository) SetActive(ctx context.Context, slug string, active bool) error {
	return r.session.Query(
		`UPDATE categories SET is_active = ? WHERE slug = ?`, active, slug,
	).WithContext(ctx).Exec()
}
