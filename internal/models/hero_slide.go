package models

import (
	"time"

	"github.com/gocql/gocql"
)

type HeroSlide struct {
	ID        gocql.UUID `json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Image     string     `json:"image"`
	Order     int        `json:"order"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}
