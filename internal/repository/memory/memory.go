// Package memory fournit des implémentations en mémoire des dépôts et du
// stockage d'assets. Elles portent les tests HTTP (pas de ScyllaDB ni de
// MinIO dans la CI) et le mode démo local.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gocql/gocql"

	"packline_back_end/internal/models"
	"packline_back_end/internal/repository"
)

type CategoryRepo struct {
	mu   sync.Mutex
	cats map[string]models.Category
}

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{cats: make(map[string]models.Category)}
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cats := make([]models.Category, 0, len(r.cats))
	for _, c := range r.cats {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Order < cats[j].Order })
	return cats, nil
}

func (r *CategoryRepo) Get(ctx context.Context, slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cats[slug]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, cat models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cats[cat.Slug]; exists {
		return repository.ErrAlreadyExists
	}
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = time.Now()
	}
	cat.ID = cat.Slug
	r.cats[cat.Slug] = cat
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, slug string, patch repository.CategoryPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cats[slug]
	if !ok {
		return nil
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Order != nil {
		c.Order = *patch.Order
	}
	if patch.Image != nil {
		img := *patch.Image
		c.Image = &img
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}
	r.cats[slug] = c
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.cats, slug)
	return nil
}

func (r *CategoryRepo) SetActive(ctx context.Context, slug string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cats[slug]; ok {
		c.IsActive = active
		r.cats[slug] = c
	}
	return nil
}

type ProductRepo struct {
	mu       sync.Mutex
	products []models.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.Product(nil), r.products...), nil
}

func (r *ProductRepo) Get(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == (gocql.UUID{}) {
		p.ID = gocql.TimeUUID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.products = append(r.products, *p)
	return nil
}

func (r *ProductRepo) Update(ctx context.Context, id gocql.UUID, patch repository.ProductPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.PriceType != nil {
			p.PriceType = *patch.PriceType
		}
		if patch.ClearPrice {
			p.Price = nil
		} else if patch.Price != nil {
			v := *patch.Price
			p.Price = &v
		}
		if patch.MinimumOrderQty != nil {
			p.MinimumOrderQty = *patch.MinimumOrderQty
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Attributes != nil {
			p.Attributes = append([]models.Attribute(nil), (*patch.Attributes)...)
		}
		if patch.Images != nil {
			p.Images = append([]string(nil), (*patch.Images)...)
		}
		if patch.IsActive != nil {
			p.IsActive = *patch.IsActive
		}
		p.UpdatedAt = time.Now()
		r.products[i] = p
		return nil
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id gocql.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

type HeroRepo struct {
	mu     sync.Mutex
	slides []models.HeroSlide
}

func NewHeroRepo() *HeroRepo {
	return &HeroRepo{}
}

func (r *HeroRepo) sorted(filterActive bool) []models.HeroSlide {
	slides := []models.HeroSlide{}
	for _, s := range r.slides {
		if filterActive && !s.IsActive {
			continue
		}
		slides = append(slides, s)
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].Order < slides[j].Order })
	return slides
}

func (r *HeroRepo) List(ctx context.Context) ([]models.HeroSlide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(false), nil
}

func (r *HeroRepo) ListActive(ctx context.Context) ([]models.HeroSlide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(true), nil
}

func (r *HeroRepo) Get(ctx context.Context, id gocql.UUID) (*models.HeroSlide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.slides {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *HeroRepo) Create(ctx context.Context, s *models.HeroSlide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == (gocql.UUID{}) {
		s.ID = gocql.TimeUUID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.slides = append(r.slides, *s)
	return nil
}

func (r *HeroRepo) Update(ctx context.Context, id gocql.UUID, patch repository.HeroPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.slides {
		if s.ID != id {
			continue
		}
		if patch.Title != nil {
			s.Title = *patch.Title
		}
		if patch.Subtitle != nil {
			s.Subtitle = *patch.Subtitle
		}
		if patch.Image != nil {
			s.Image = *patch.Image
		}
		if patch.Order != nil {
			s.Order = *patch.Order
		}
		if patch.IsActive != nil {
			s.IsActive = *patch.IsActive
		}
		r.slides[i] = s
		return nil
	}
	return nil
}

func (r *HeroRepo) Delete(ctx context.Context, id gocql.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.slides {
		if s.ID == id {
			r.slides = append(r.slides[:i], r.slides[i+1:]...)
			return nil
		}
	}
	return nil
}

type ContentRepo struct {
	mu      sync.Mutex
	about   *models.AboutContent
	contact *models.ContactInfo
}

func NewContentRepo() *ContentRepo {
	return &ContentRepo{}
}

func (r *ContentRepo) GetAbout(ctx context.Context) (*models.AboutContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.about == nil {
		return nil, nil
	}
	cp := *r.about
	return &cp, nil
}

func (r *ContentRepo) SaveAbout(ctx context.Context, content models.AboutContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	content.UpdatedAt = time.Now()
	r.about = &content
	return nil
}

func (r *ContentRepo) GetContact(ctx context.Context) (*models.ContactInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.contact == nil {
		return nil, nil
	}
	cp := *r.contact
	return &cp, nil
}

func (r *ContentRepo) SaveContact(ctx context.Context, info models.ContactInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info.UpdatedAt = time.Now()
	r.contact = &info
	return nil
}

type AdminRepo struct {
	mu     sync.Mutex
	admins map[string]models.AdminUser
}

func NewAdminRepo() *AdminRepo {
	return &AdminRepo{admins: make(map[string]models.AdminUser)}
}

func (r *AdminRepo) Put(u models.AdminUser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[strings.ToLower(u.Email)] = u
}

func (r *AdminRepo) Get(ctx context.Context, email string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.admins[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *AdminRepo) SetPasswordHash(ctx context.Context, email, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.admins[strings.ToLower(email)]; ok {
		u.PasswordHash = hash
		r.admins[strings.ToLower(email)] = u
	}
	return nil
}
