package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"packline_back_end/internal/cache"
	"packline_back_end/internal/repository/memory"
	"packline_back_end/internal/services"
	"packline_back_end/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeMailer capture les envois (formulaire de contact, reset).
type fakeMailer struct {
	sent   []string // destinataires
	bodies []string
	err    error
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.bodies = append(m.bodies, htmlBody)
	return nil
}

// testEnv monte l'API complète sur les implémentations mémoire,
// sans middleware d'authentification : on teste les handlers, pas le JWT.
type testEnv struct {
	router     *gin.Engine
	categories *memory.CategoryRepo
	products   *memory.ProductRepo
	hero       *memory.HeroRepo
	content    *memory.ContentRepo
	assets     *memory.AssetStore
	drafts     *services.HeroDraftManager
	mailer     *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		categories: memory.NewCategoryRepo(),
		products:   memory.NewProductRepo(),
		hero:       memory.NewHeroRepo(),
		content:    memory.NewContentRepo(),
		assets:     memory.NewAssetStore(),
		drafts:     services.NewHeroDraftManager(),
		mailer:     &fakeMailer{},
	}
	store := cache.New(nil)

	categories := &CategoryHandler{Repo: env.categories, Products: env.products, Assets: env.assets, Cache: store}
	products := &ProductHandler{Repo: env.products, Categories: env.categories, Assets: env.assets, Cache: store}
	hero := &HeroHandler{Repo: env.hero, Assets: env.assets, Cache: store, Drafts: env.drafts}
	content := &ContentHandler{Repo: env.content, Mailer: env.mailer}

	r := gin.New()
	r.GET("/api/categories", categories.ListPublic)
	r.GET("/api/products", products.List)
	r.GET("/api/products/search", products.Search)
	r.GET("/api/products/:id", products.Get)
	r.GET("/api/products/:id/qrcode", products.QRCode)
	r.GET("/api/hero", hero.ListActive)
	r.GET("/api/about", content.GetAbout)
	r.GET("/api/contact", content.GetContact)
	r.POST("/api/contact/message", content.SendMessage)

	r.GET("/api/admin/categories", categories.List)
	r.GET("/api/admin/categories/:slug", categories.Get)
	r.POST("/api/admin/categories", categories.Create)
	r.PUT("/api/admin/categories/:slug", categories.Update)
	r.POST("/api/admin/categories/:slug/image", categories.UploadImage)
	r.PATCH("/api/admin/categories/:slug/active", categories.ToggleActive)
	r.DELETE("/api/admin/categories/:slug", categories.Delete)

	r.GET("/api/admin/products", products.Grouped)
	r.POST("/api/admin/products", products.Create)
	r.PATCH("/api/admin/products/:id", products.Update)
	r.POST("/api/admin/products/:id/images", products.UploadImage)
	r.DELETE("/api/admin/products/:id/images", products.RemoveImage)
	r.DELETE("/api/admin/products/:id", products.Delete)

	r.GET("/api/admin/hero", hero.List)
	r.POST("/api/admin/hero", hero.Create)
	r.PATCH("/api/admin/hero/:id", hero.EditDraft)
	r.POST("/api/admin/hero/:id/image", hero.UploadDraftImage)
	r.POST("/api/admin/hero/:id/save", hero.SaveDraft)
	r.DELETE("/api/admin/hero/:id", hero.Delete)

	r.PUT("/api/admin/about", content.SaveAbout)
	r.PUT("/api/admin/contact", content.SaveContact)

	env.router = r
	return env
}

var _ utils.Mailer = (*fakeMailer)(nil)

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return e.do(t, method, path, bytes.NewReader(data), "application/json")
}

// multipartBody construit un corps multipart avec des champs texte et
// éventuellement un fichier image.
func multipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.Copy(fw, strings.NewReader("fake-png-bytes")); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("réponse non décodable (%d): %s", w.Code, w.Body.String())
	}
	return v
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("statut %d attendu, obtenu %d: %s", code, w.Code, w.Body.String())
	}
}
