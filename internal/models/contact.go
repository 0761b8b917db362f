package models

import "time"

// Coordonnées par défaut si mapLat/mapLng ne sont pas exploitables
const (
	DefaultMapLat = 28.6139
	DefaultMapLng = 77.2090
)

// ContactInfo : document unique stocké sous la clé "contact/main".
type ContactInfo struct {
	CompanyName string    `json:"companyName"`
	Address     string    `json:"address"`
	Phone1      string    `json:"phone1"`
	Phone2      string    `json:"phone2,omitempty"`
	Whatsapp    string    `json:"whatsapp"`
	Email1      string    `json:"email1"`
	Email2      string    `json:"email2,omitempty"`
	MapLat      float64   `json:"mapLat"`
	MapLng      float64   `json:"mapLng"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
