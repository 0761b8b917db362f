// Package handlers expose le catalogue en REST : lecture publique,
// écriture réservée au back-office. Les handlers reçoivent leurs dépôts
// en injection pour pouvoir tourner sur ScyllaDB/MinIO en production et
// sur les implémentations mémoire dans les tests.
package handlers

import (
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Set regroupe tous les handlers câblés, passé tel quel aux routes.
type Set struct {
	Auth       *AuthHandler
	Categories *CategoryHandler
	Products   *ProductHandler
	Hero       *HeroHandler
	Content    *ContentHandler
}

// parseUUID convertit un paramètre d'URL en UUID gocql.
func parseUUID(raw string) (gocql.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return gocql.UUID{}, false
	}
	return gocql.UUID(id), true
}
