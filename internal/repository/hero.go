package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"packline_back_end/internal/models"
)

// ScyllaHeroRepository : table `hero_slides`, clé slide_id (uuid).
type ScyllaHeroRepository struct {
	session *gocql.Session
}

func NewScyllaHeroRepository(session *gocql.Session) *ScyllaHeroRepository {
	return &ScyllaHeroRepository{session: session}
}

func (r *ScyllaHeroRepository) scanAll(ctx context.Context, query string, values ...interface{}) ([]models.HeroSlide, error) {
	iter := r.session.Query(query, values...).WithContext(ctx).Iter()

	var slides []models.HeroSlide
	var s models.HeroSlide

	for iter.Scan(&s.ID, &s.Title, &s.Subtitle, &s.Image, &s.Order, &s.IsActive, &s.CreatedAt) {
		slides = append(slides, s)
		s = models.HeroSlide{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].Order < slides[j].Order })
	return slides, nil
}

func (r *ScyllaHeroRepository) List(ctx context.Context) ([]models.HeroSlide, error) {
	return r.scanAll(ctx,
		`SELECT slide_id, title, subtitle, image, display_order, is_active, created_at FROM hero_slides`)
}

func (r *ScyllaHeroRepository) ListActive(ctx context.Context) ([]models.HeroSlide, error) {
	// Seule requête filtrée côté serveur de tout le catalogue
	return r.scanAll(ctx,
		`SELECT slide_id, title, subtitle, image, display_order, is_active, created_at FROM hero_slides WHERE is_active = true ALLOW FILTERING`)
}

func (r *ScyllaHeroRepository) Get(ctx context.Context, id gocql.UUID) (*models.HeroSlide, error) {
	var s models.HeroSlide

	err := r.session.Query(
		`SELECT slide_id, title, subtitle, image, display_order, is_active, created_at FROM hero_slides WHERE slide_id = ?`,
		id,
	).WithContext(ctx).Scan(&s.ID, &s.Title, &s.Subtitle, &s.Image, &s.Order, &s.IsActive, &s.CreatedAt)
	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScyllaHeroRepository) Create(ctx context.Context, s *models.HeroSlide) error {
	if s.ID == (gocql.UUID{}) {
		s.ID = gocql.TimeUUID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	return r.session.Query(
		`INSERT INTO hero_slides (slide_id, title, subtitle, image, display_order, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Title, s.Subtitle, s.Image, s.Order, s.IsActive, s.CreatedAt,
	).WithContext(ctx).Exec()
}

func (r *ScyllaHeroRepository) Update(ctx context.Context, id gocql.UUID, patch HeroPatch) error {
	updates := []string{}
	values := []interface{}{}

	if patch.Title != nil {
		updates = append(updates, "title = ?")
		values = append(values, *patch.Title)
	}
	if patch.Subtitle != nil {
		updates = append(updates, "subtitle = ?")
		values = append(values, *patch.Subtitle)
	}
	if patch.Image != nil {
		updates = append(updates, "image = ?")
		values = append(values, *patch.Image)
	}
	if patch.Order != nil {
		updates = append(updates, "display_order = ?")
		values = append(values, *patch.Order)
	}
	if patch.IsActive != nil {
		updates = append(updates, "is_active = ?")
		values = append(values, *patch.IsActive)
	}

	if len(updates) == 0 {
		return nil
	}

	values = append(values, id)
	query := "UPDATE hero_slides SET " + strings.Join(updates, ", ") + " WHERE slide_id = ?"

	return r.session.Query(query, values...).WithContext(ctx).Exec()
}

func (r *ScyllaHeroRepository) Delete(ctx context.Context, id gocql.UUID) error {
	return r.session.Query(`DELETE FROM hero_slides WHERE slide_id = ?`, id).WithContext(ctx).Exec()
}
