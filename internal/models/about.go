package models

import "time"

type Testimonial struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Rating   int    `json:"rating"`
	Product  string `json:"product"`
	Comment  string `json:"comment"`
}

// Reviews : les pourcentages du breakdown et le total ne sont pas
// recoupés entre eux, le formulaire admin les édite indépendamment.
type Reviews struct {
	AverageRating float64            `json:"averageRating"`
	TotalReviews  int                `json:"totalReviews"`
	Breakdown     map[string]float64 `json:"breakdown"`
	Satisfaction  map[string]float64 `json:"satisfaction"`
	Testimonials  []Testimonial      `json:"testimonials"`
}

// AboutContent : document unique stocké sous la clé "about/main".
type AboutContent struct {
	Heading     string    `json:"heading"`
	Description string    `json:"description"`
	Points      []string  `json:"points"`
	Image       string    `json:"image"`
	Reviews     Reviews   `json:"reviews"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
