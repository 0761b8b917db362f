package repository

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"packline_back_end/internal/models"
)

// ErrAlreadyExists : insertion avec une clé choisie par l'appelant
// (slug de catégorie) qui existe déjà.
var ErrAlreadyExists = errors.New("l'enregistrement existe déjà")

// Les lectures unitaires retournent (nil, nil) quand l'enregistrement
// n'existe pas : l'absence n'est pas une erreur.

type CategoryPatch struct {
	Name     *string
	Order    *int
	Image    *string
	IsActive *bool
}

type ProductPatch struct {
	Name            *string
	Category        *string
	PriceType       *string
	Price           *float64
	ClearPrice      bool // passe price à null (tarif sur demande)
	MinimumOrderQty *int
	Description     *string
	Attributes      *[]models.Attribute
	Images          *[]string
	IsActive        *bool
}

type HeroPatch struct {
	Title    *string
	Subtitle *string
	Image    *string
	Order    *int
	IsActive *bool
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, cat models.Category) error
	Update(ctx context.Context, slug string, patch CategoryPatch) error
	Delete(ctx context.Context, slug string) error
	SetActive(ctx context.Context, slug string, active bool) error
}

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id gocql.UUID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id gocql.UUID, patch ProductPatch) error
	Delete(ctx context.Context, id gocql.UUID) error
}

type HeroRepository interface {
	List(ctx context.Context) ([]models.HeroSlide, error)
	ListActive(ctx context.Context) ([]models.HeroSlide, error)
	Get(ctx context.Context, id gocql.UUID) (*models.HeroSlide, error)
	Create(ctx context.Context, s *models.HeroSlide) error
	Update(ctx context.Context, id gocql.UUID, patch HeroPatch) error
	Delete(ctx context.Context, id gocql.UUID) error
}

// ContentRepository gère les documents uniques (clé fixe "main").
type ContentRepository interface {
	GetAbout(ctx context.Context) (*models.AboutContent, error)
	SaveAbout(ctx context.Context, content models.AboutContent) error
	GetContact(ctx context.Context) (*models.ContactInfo, error)
	SaveContact(ctx context.Context, info models.ContactInfo) error
}

type AdminRepository interface {
	Get(ctx context.Context, email string) (*models.AdminUser, error)
	SetPasswordHash(ctx context.Context, email, hash string) error
}
