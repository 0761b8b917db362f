package handlers

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"packline_back_end/internal/models"
)

func createCategory(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	body, ct := multipartBody(t, map[string]string{"name": name}, "cover.png")
	w := env.do(t, http.MethodPost, "/api/admin/categories", body, ct)
	wantStatus(t, w, http.StatusCreated)
	return decode[map[string]string](t, w)["id"]
}

func TestCategoryCreate(t *testing.T) {
	env := newTestEnv(t)

	slug := createCategory(t, env, "Saree Covers")
	if slug != "saree-covers" {
		t.Fatalf("le slug est dérivé du nom, obtenu %q", slug)
	}

	cat, err := env.categories.Get(context.Background(), slug)
	if err != nil || cat == nil {
		t.Fatalf("catégorie absente après création: %v", err)
	}
	if !cat.IsActive {
		t.Error("une catégorie est active à la création")
	}
	if cat.Image == nil || *cat.Image == "" {
		t.Fatal("l'URL d'image doit être renseignée après l'upload")
	}
	if keys := env.assets.Keys("categories/saree-covers"); len(keys) != 1 {
		t.Fatalf("un binaire attendu sous categories/saree-covers, obtenu %v", keys)
	}
}

func TestCategoryCreateRequiresImage(t *testing.T) {
	env := newTestEnv(t)

	body, ct := multipartBody(t, map[string]string{"name": "Cartons"}, "")
	w := env.do(t, http.MethodPost, "/api/admin/categories", body, ct)
	wantStatus(t, w, http.StatusBadRequest)

	// Rien ne doit avoir été créé ni stocké
	if cats, _ := env.categories.List(context.Background()); len(cats) != 0 {
		t.Error("aucun document ne doit exister après une validation refusée")
	}
	if keys := env.assets.Keys(""); len(keys) != 0 {
		t.Error("aucun binaire ne doit exister après une validation refusée")
	}
}

// Nom manquant : refusé avant même d'ouvrir le fichier joint.
func TestCategoryCreateRequiresName(t *testing.T) {
	env := newTestEnv(t)

	body, ct := multipartBody(t, map[string]string{"order": "1"}, "cover.png")
	w := env.do(t, http.MethodPost, "/api/admin/categories", body, ct)
	wantStatus(t, w, http.StatusBadRequest)

	if cats, _ := env.categories.List(context.Background()); len(cats) != 0 {
		t.Error("aucun document ne doit exister après une validation refusée")
	}
	if keys := env.assets.Keys(""); len(keys) != 0 {
		t.Error("aucun binaire ne doit exister après une validation refusée")
	}
}

// Un slug déjà pris est refusé en 409 et surtout ne doit pas écraser
// l'image de la catégorie existante.
func TestCategoryCreateDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Saree Covers")

	original, _ := env.categories.Get(context.Background(), "saree-covers")

	body, ct := multipartBody(t, map[string]string{"name": "Saree Covers"}, "other.png")
	w := env.do(t, http.MethodPost, "/api/admin/categories", body, ct)
	wantStatus(t, w, http.StatusConflict)

	after, _ := env.categories.Get(context.Background(), "saree-covers")
	if *after.Image != *original.Image {
		t.Error("un doublon refusé ne doit pas toucher la catégorie existante")
	}
}

func TestCategoryUpdateNameKeepsSlug(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Saree Covers")

	w := env.doJSON(t, http.MethodPut, "/api/admin/categories/saree-covers",
		map[string]any{"name": "Housses de Saree", "order": 3})
	wantStatus(t, w, http.StatusOK)

	cat, _ := env.categories.Get(context.Background(), "saree-covers")
	if cat == nil {
		t.Fatal("le slug reste la clé du document après renommage")
	}
	if cat.Name != "Housses de Saree" || cat.Order != 3 {
		t.Errorf("mise à jour incomplète: %+v", cat)
	}
}

func TestCategoryToggleActive(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Saree Covers")

	w := env.doJSON(t, http.MethodPatch, "/api/admin/categories/saree-covers/active",
		map[string]any{"isActive": false})
	wantStatus(t, w, http.StatusOK)

	cat, _ := env.categories.Get(context.Background(), "saree-covers")
	if cat.IsActive {
		t.Error("la catégorie doit être désactivée")
	}

	// Champ manquant refusé : pas de valeur par défaut implicite
	w = env.doJSON(t, http.MethodPatch, "/api/admin/categories/saree-covers/active", map[string]any{})
	wantStatus(t, w, http.StatusBadRequest)
}

// Basculer deux fois la visibilité revient à l'état de départ, et la
// bascule ne touche qu'à isActive : tout le reste du document
// (nom, slug, ordre, image, date) doit rester identique octet pour octet.
func TestCategoryToggleTwiceRestoresRecord(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Saree Covers")

	before, _ := env.categories.Get(context.Background(), "saree-covers")

	w := env.doJSON(t, http.MethodPatch, "/api/admin/categories/saree-covers/active",
		map[string]any{"isActive": false})
	wantStatus(t, w, http.StatusOK)

	mid, _ := env.categories.Get(context.Background(), "saree-covers")
	if mid.IsActive {
		t.Fatal("la première bascule doit désactiver la catégorie")
	}
	if mid.Name != before.Name || mid.Slug != before.Slug || mid.Order != before.Order ||
		*mid.Image != *before.Image || !mid.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("la bascule ne touche qu'à isActive: avant %+v, après %+v", before, mid)
	}

	w = env.doJSON(t, http.MethodPatch, "/api/admin/categories/saree-covers/active",
		map[string]any{"isActive": true})
	wantStatus(t, w, http.StatusOK)

	after, _ := env.categories.Get(context.Background(), "saree-covers")
	if !reflect.DeepEqual(before, after) {
		t.Errorf("double bascule non idempotente: avant %+v, après %+v", before, after)
	}
}

func TestCategoryDeleteCascadesImage(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Saree Covers")

	w := env.doJSON(t, http.MethodDelete, "/api/admin/categories/saree-covers", nil)
	wantStatus(t, w, http.StatusOK)

	if cat, _ := env.categories.Get(context.Background(), "saree-covers"); cat != nil {
		t.Error("le document doit être supprimé")
	}
	if keys := env.assets.Keys("categories/saree-covers"); len(keys) != 0 {
		t.Errorf("l'image doit partir avec la catégorie, restant %v", keys)
	}
}

func TestCategoryDeleteUnknown(t *testing.T) {
	env := newTestEnv(t)
	w := env.doJSON(t, http.MethodDelete, "/api/admin/categories/inconnue", nil)
	wantStatus(t, w, http.StatusNotFound)
}

// Côté public, seules les catégories actives avec au moins un produit
// sont listées.
func TestCategoryListPublic(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Saree Covers")
	createCategory(t, env, "Cartons")

	env.products.Create(context.Background(), &models.Product{
		Name: "Saree Cover Premium", Category: "Saree Covers",
		PriceType: models.PriceTypeOnRequest, IsActive: true,
	})

	w := env.do(t, http.MethodGet, "/api/categories", nil, "")
	wantStatus(t, w, http.StatusOK)
	visible := decode[[]models.Category](t, w)
	if len(visible) != 1 || visible[0].Slug != "saree-covers" {
		t.Fatalf("seule la catégorie non vide est publique: %+v", visible)
	}

	// La vue admin liste tout
	w = env.do(t, http.MethodGet, "/api/admin/categories", nil, "")
	wantStatus(t, w, http.StatusOK)
	if all := decode[[]models.Category](t, w); len(all) != 2 {
		t.Fatalf("la vue admin liste toutes les catégories: %d", len(all))
	}
}
