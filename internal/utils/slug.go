package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
	slugEdgeHyphens  = regexp.MustCompile(`^-+|-+$`)
)

// Slugify transforme un nom de catégorie en slug : minuscules,
// caractères spéciaux retirés, espaces remplacés par des tirets.
// Le slug sert de clé de document, il doit rester stable.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return slugEdgeHyphens.ReplaceAllString(s, "")
}

// Unslugify reconstruit un nom affichable depuis un slug ("saree-covers" → "Saree Covers").
func Unslugify(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
