package auth

import (
	"os"
	"strings"
)

// Liste des emails autorisés à accéder au back-office.
// Surchargable via ADMIN_EMAILS (liste séparée par des virgules).
var defaultAdmins = []string{
	"mohammaddaniyal79@gmail.com",
	"fahad.fahadi666@gmail.com",
	"m.mohsin9525@gmail.com",
}

// AllowedAdmins retourne la liste d'emails admin effective.
func AllowedAdmins() []string {
	if raw := os.Getenv("ADMIN_EMAILS"); raw != "" {
		var emails []string
		for _, e := range strings.Split(raw, ",") {
			if e = strings.TrimSpace(e); e != "" {
				emails = append(emails, e)
			}
		}
		if len(emails) > 0 {
			return emails
		}
	}
	return defaultAdmins
}

// IsAuthorized est le seul point de contrôle de la politique d'autorisation :
// le middleware ET le login passent par ici.
func IsAuthorized(email string) bool {
	for _, allowed := range AllowedAdmins() {
		if strings.EqualFold(allowed, email) {
			return true
		}
	}
	return false
}
