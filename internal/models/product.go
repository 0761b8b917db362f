package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Types de prix acceptés pour un produit
const (
	PriceTypeStarting  = "starting"
	PriceTypeFixed     = "fixed"
	PriceTypeOnRequest = "on_request"
)

// MaxProductImages : un produit ne peut pas avoir plus de 4 images
const MaxProductImages = 4

type Attribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Product : la catégorie est référencée par son nom (texte libre),
// pas par une clé étrangère. Price est null quand priceType = on_request.
type Product struct {
	ID              gocql.UUID  `json:"id"`
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	PriceType       string      `json:"priceType"`
	Price           *float64    `json:"price"`
	MinimumOrderQty int         `json:"minimumOrderQty"`
	Description     string      `json:"description"`
	Attributes      []Attribute `json:"attributes"`
	Images          []string    `json:"images"`
	IsActive        bool        `json:"isActive"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
