package services

import (
	"testing"

	"packline_back_end/internal/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{Name: "Saree Cover Premium", Category: "Saree Covers"},
		{Name: "Saree Cover Basic", Category: "Saree Covers"},
		{Name: "Carton 40x40", Category: "Cartons"},
		{Name: "Bubble Wrap 50m", Category: "Protections"},
	}
}

func TestFilterByCategory(t *testing.T) {
	products := sampleProducts()

	if got := FilterByCategory(products, "Cartons"); len(got) != 1 || got[0].Name != "Carton 40x40" {
		t.Fatalf("filtre Cartons: %v", got)
	}
	// "All" et vide sont la partition identité
	if got := FilterByCategory(products, "All"); len(got) != len(products) {
		t.Fatalf("'All' doit tout retourner, obtenu %d", len(got))
	}
	if got := FilterByCategory(products, ""); len(got) != len(products) {
		t.Fatalf("catégorie vide doit tout retourner, obtenu %d", len(got))
	}
	if got := FilterByCategory(products, "Inexistante"); len(got) != 0 {
		t.Fatalf("catégorie inconnue doit retourner une liste vide, obtenu %d", len(got))
	}
}

func TestSearchProductsByName(t *testing.T) {
	products := sampleProducts()

	got := SearchProductsByName(products, "SAREE", SearchResultLimit)
	if len(got) != 2 {
		t.Fatalf("recherche insensible à la casse: %d résultats", len(got))
	}

	if got := SearchProductsByName(products, "  ", SearchResultLimit); len(got) != 0 {
		t.Fatal("une requête vide ne remonte rien")
	}
	if got := SearchProductsByName(products, "zzz", SearchResultLimit); len(got) != 0 {
		t.Fatal("aucune correspondance attendue")
	}
}

func TestSearchProductsByNameLimit(t *testing.T) {
	var products []models.Product
	for i := 0; i < 10; i++ {
		products = append(products, models.Product{Name: "Carton standard"})
	}

	got := SearchProductsByName(products, "carton", SearchResultLimit)
	if len(got) != SearchResultLimit {
		t.Fatalf("la recherche est plafonnée à %d, obtenu %d", SearchResultLimit, len(got))
	}
}

func TestGroupByCategoryKeepsEmptyCategories(t *testing.T) {
	categories := []models.Category{
		{Name: "Saree Covers"},
		{Name: "Vide"},
	}
	groups := GroupByCategory(categories, sampleProducts())

	if len(groups) != 2 {
		t.Fatalf("2 groupes attendus, obtenu %d", len(groups))
	}
	if len(groups[0].Products) != 2 {
		t.Errorf("Saree Covers: %d produits", len(groups[0].Products))
	}
	if groups[1].Products == nil || len(groups[1].Products) != 0 {
		t.Error("une catégorie sans produit garde une liste vide, pas nil")
	}
}

func TestActiveCategoriesWithProducts(t *testing.T) {
	categories := []models.Category{
		{Name: "Saree Covers", IsActive: true},
		{Name: "Cartons", IsActive: false},
		{Name: "Vide", IsActive: true},
	}
	visible := ActiveCategoriesWithProducts(categories, sampleProducts())

	if len(visible) != 1 || visible[0].Name != "Saree Covers" {
		t.Fatalf("seules les catégories actives ET non vides sont visibles: %v", visible)
	}
}
