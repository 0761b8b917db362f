package models

import "time"

// Category est identifiée par son slug (clé du document côté ScyllaDB).
// Le slug est choisi à la création et ne change plus ensuite.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}
