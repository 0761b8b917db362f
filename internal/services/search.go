package services

import (
	"strings"

	"packline_back_end/internal/models"
)

// SearchResultLimit : la recherche de la barre de navigation ne remonte
// que les 5 premiers produits correspondants.
const SearchResultLimit = 5

// FilterByCategory partitionne la liste par égalité stricte sur le nom
// de catégorie. "All" (ou vide) est la partition identité.
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == "" || category == "All" {
		return products
	}

	filtered := []models.Product{}
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SearchProductsByName : sous-chaîne insensible à la casse sur le nom,
// dans l'ordre de la liste, plafonnée à limit résultats. Pas d'index :
// la volumétrie du catalogue ne le justifie pas.
func SearchProductsByName(products []models.Product, query string, limit int) []models.Product {
	results := []models.Product{}
	if strings.TrimSpace(query) == "" {
		return results
	}

	q := strings.ToLower(query)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			results = append(results, p)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results
}

type CategoryGroup struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

// GroupByCategory regroupe les produits par nom de catégorie pour la vue
// admin. La jointure se fait par nom ; une catégorie sans produit reste
// présente avec une liste vide plutôt que d'être omise.
func GroupByCategory(categories []models.Category, products []models.Product) []CategoryGroup {
	byName := make(map[string][]models.Product)
	for _, p := range products {
		byName[p.Category] = append(byName[p.Category], p)
	}

	groups := make([]CategoryGroup, 0, len(categories))
	for _, c := range categories {
		prods := byName[c.Name]
		if prods == nil {
			prods = []models.Product{}
		}
		groups = append(groups, CategoryGroup{Category: c, Products: prods})
	}
	return groups
}

// ActiveCategoriesWithProducts : côté public, seules les catégories
// actives ET non vides sont affichées.
func ActiveCategoriesWithProducts(categories []models.Category, products []models.Product) []models.Category {
	counts := make(map[string]int)
	for _, p := range products {
		if p.Category != "" {
			counts[p.Category]++
		}
	}

	visible := []models.Category{}
	for _, c := range categories {
		if c.IsActive && counts[c.Name] > 0 {
			visible = append(visible, c)
		}
	}
	return visible
}
