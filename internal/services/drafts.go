package services

import (
	"errors"
	"reflect"
	"sync"

	"github.com/gocql/gocql"

	"packline_back_end/internal/models"
	"packline_back_end/internal/repository"
)

var (
	ErrDraftNotFound = errors.New("brouillon introuvable")
	ErrDraftClean    = errors.New("aucune modification à enregistrer")
	ErrSaveInFlight  = errors.New("un enregistrement est déjà en cours pour ce slide")
)

// HeroDraftState est l'état renvoyé au back-office pour un slide :
// le brouillon courant et si le bouton Enregistrer doit être actif.
type HeroDraftState struct {
	Draft  models.HeroSlide `json:"draft"`
	Dirty  bool             `json:"dirty"`
	Saving bool             `json:"saving"`
}

// HeroDraftManager porte le modèle brouillon/enregistré de l'éditeur de
// slides : une copie "draft" et une copie "synced" par slide. Les éditions
// ne touchent que le brouillon ; l'enregistrement explicite n'est permis
// que si les deux copies diffèrent (comparaison structurelle), avec au
// plus un enregistrement en vol par slide.
type HeroDraftManager struct {
	mu     sync.Mutex
	drafts map[gocql.UUID]models.HeroSlide
	synced map[gocql.UUID]models.HeroSlide
	saving map[gocql.UUID]bool
}

func NewHeroDraftManager() *HeroDraftManager {
	return &HeroDraftManager{
		drafts: make(map[gocql.UUID]models.HeroSlide),
		synced: make(map[gocql.UUID]models.HeroSlide),
		saving: make(map[gocql.UUID]bool),
	}
}

// Seed réinitialise brouillons et copies de référence depuis la liste
// fraîchement relue du store. Les brouillons en cours sont abandonnés :
// c'est la sémantique "recharger = jeter les modifications".
func (m *HeroDraftManager) Seed(slides []models.HeroSlide) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drafts = make(map[gocql.UUID]models.HeroSlide, len(slides))
	m.synced = make(map[gocql.UUID]models.HeroSlide, len(slides))
	for _, s := range slides {
		m.drafts[s.ID] = s
		m.synced[s.ID] = s
	}
}

func (m *HeroDraftManager) stateLocked(id gocql.UUID) HeroDraftState {
	draft := m.drafts[id]
	return HeroDraftState{
		Draft:  draft,
		Dirty:  !reflect.DeepEqual(draft, m.synced[id]),
		Saving: m.saving[id],
	}
}

// State retourne l'état courant d'un slide.
func (m *HeroDraftManager) State(id gocql.UUID) (HeroDraftState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drafts[id]; !ok {
		return HeroDraftState{}, ErrDraftNotFound
	}
	return m.stateLocked(id), nil
}

// Edit applique des modifications de champs au brouillon uniquement.
func (m *HeroDraftManager) Edit(id gocql.UUID, patch repository.HeroPatch) (HeroDraftState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, ok := m.drafts[id]
	if !ok {
		return HeroDraftState{}, ErrDraftNotFound
	}

	if patch.Title != nil {
		draft.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		draft.Subtitle = *patch.Subtitle
	}
	if patch.Image != nil {
		draft.Image = *patch.Image
	}
	if patch.Order != nil {
		draft.Order = *patch.Order
	}
	if patch.IsActive != nil {
		draft.IsActive = *patch.IsActive
	}

	m.drafts[id] = draft
	return m.stateLocked(id), nil
}

// SetImage écrit l'URL d'une image déjà persistée dans le brouillon.
// Le binaire est en stockage mais le document distant ne le référence
// pas tant que l'enregistrement explicite n'a pas eu lieu.
func (m *HeroDraftManager) SetImage(id gocql.UUID, url string) (HeroDraftState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, ok := m.drafts[id]
	if !ok {
		return HeroDraftState{}, ErrDraftNotFound
	}
	draft.Image = url
	m.drafts[id] = draft
	return m.stateLocked(id), nil
}

// BeginSave réserve l'enregistrement d'un slide et retourne le brouillon
// à persister. Refusé si le brouillon est propre ou si un enregistrement
// est déjà en vol pour ce slide.
func (m *HeroDraftManager) BeginSave(id gocql.UUID) (models.HeroSlide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, ok := m.drafts[id]
	if !ok {
		return models.HeroSlide{}, ErrDraftNotFound
	}
	if m.saving[id] {
		return models.HeroSlide{}, ErrSaveInFlight
	}
	if reflect.DeepEqual(draft, m.synced[id]) {
		return models.HeroSlide{}, ErrDraftClean
	}

	m.saving[id] = true
	return draft, nil
}

// FinishSave clôt un enregistrement. En cas de succès, refreshed est la
// version relue depuis le store : on resynchronise depuis la source de
// vérité plutôt que de fusionner localement le brouillon.
func (m *HeroDraftManager) FinishSave(id gocql.UUID, refreshed *models.HeroSlide) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.saving, id)
	if refreshed != nil {
		m.drafts[id] = *refreshed
		m.synced[id] = *refreshed
	}
}

// Forget retire un slide supprimé du gestionnaire.
func (m *HeroDraftManager) Forget(id gocql.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.drafts, id)
	delete(m.synced, id)
	delete(m.saving, id)
}
