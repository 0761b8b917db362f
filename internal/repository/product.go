package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"packline_back_end/internal/models"
)

// ScyllaProductRepository : table `products`, clé product_id (uuid).
// Les attributs label/valeur sont sérialisés en JSON dans une colonne texte.
type ScyllaProductRepository struct {
	session *gocql.Session
}

func NewScyllaProductRepository(session *gocql.Session) *ScyllaProductRepository {
	return &ScyllaProductRepository{session: session}
}

const productColumns = `product_id, name, category, price_type, price, minimum_order_qty, description, attributes, images, is_active, created_at, updated_at`

func (r *ScyllaProductRepository) List(ctx context.Context) ([]models.Product, error) {
	iter := r.session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	var price float64
	var attributesJSON string

	for iter.Scan(&p.ID, &p.Name, &p.Category, &p.PriceType, &price, &p.MinimumOrderQty,
		&p.Description, &attributesJSON, &p.Images, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		// price est null en base pour le tarif sur demande
		if p.PriceType != models.PriceTypeOnRequest {
			v := price
			p.Price = &v
		}
		if attributesJSON != "" {
			_ = json.Unmarshal([]byte(attributesJSON), &p.Attributes)
		}
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
		price = 0
		attributesJSON = ""
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ScyllaProductRepository) Get(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	var p models.Product
	var price float64
	var attributesJSON string

	err := r.session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Category, &p.PriceType, &price, &p.MinimumOrderQty,
			&p.Description, &attributesJSON, &p.Images, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if p.PriceType != models.PriceTypeOnRequest {
		p.Price = &price
	}
	if attributesJSON != "" {
		_ = json.Unmarshal([]byte(attributesJSON), &p.Attributes)
	}
	return &p, nil
}

func (r *ScyllaProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == (gocql.UUID{}) {
		p.ID = gocql.TimeUUID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	attributesJSON := ""
	if len(p.Attributes) > 0 {
		data, err := json.Marshal(p.Attributes)
		if err != nil {
			return err
		}
		attributesJSON = string(data)
	}

	return r.session.Query(
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Category, p.PriceType, p.Price, p.MinimumOrderQty,
		p.Description, attributesJSON, p.Images, p.IsActive, p.CreatedAt, p.UpdatedAt,
	).WithContext(ctx).Exec()
}

func (r *ScyllaProductRepository) Update(ctx context.Context, id gocql.UUID, patch ProductPatch) error {
	updates := []string{}
	values := []interface{}{}

	if patch.Name != nil {
		updates = append(updates, "name = ?")
		values = append(values, *patch.Name)
	}
	if patch.Category != nil {
		updates = append(updates, "category = ?")
		values = append(values, *patch.Category)
	}
	if patch.PriceType != nil {
		updates = append(updates, "price_type = ?")
		values = append(values, *patch.PriceType)
	}
	if patch.ClearPrice {
		updates = append(updates, "price = null")
	} else if patch.Price != nil {
		updates = append(updates, "price = ?")
		values = append(values, *patch.Price)
	}
	if patch.MinimumOrderQty != nil {
		updates = append(updates, "minimum_order_qty = ?")
		values = append(values, *patch.MinimumOrderQty)
	}
	if patch.Description != nil {
		updates = append(updates, "description = ?")
		values = append(values, *patch.Description)
	}
	if patch.Attributes != nil {
		data, err := json.Marshal(*patch.Attributes)
		if err != nil {
			return err
		}
		updates = append(updates, "attributes = ?")
		values = append(values, string(data))
	}
	if patch.Images != nil {
		updates = append(updates, "images = ?")
		values = append(values, *patch.Images)
	}
	if patch.IsActive != nil {
		updates = append(updates, "is_active = ?")
		values = append(values, *patch.IsActive)
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, id)

	query := "UPDATE products SET " + strings.Join(updates, ", ") + " WHERE product_id = ?"

	return r.session.Query(query, values...).WithContext(ctx).Exec()
}

func (r *ScyllaProductRepository) Delete(ctx context.Context, id gocql.UUID) error {
	return r.session.Query(`DELETE FROM products WHERE product_id = ?`, id).WithContext(ctx).Exec()
}
