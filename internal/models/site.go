package models

import "github.com/uptrace/bun"

// Venue and HeroText are singleton rows (id = 1), updated in place by the
// admin panel.

type Venue struct {
	bun.BaseModel `bun:"table:venue"`

	ID          int64  `bun:"id,pk" json:"id"`
	Name        string `bun:"name" json:"name"`
	Address     string `bun:"address" json:"address"`
	City        string `bun:"city" json:"city"`
	Description string `bun:"description" json:"description"`
	MapURL      string `bun:"map_url" json:"mapUrl"`
}

type HeroText struct {
	bun.BaseModel `bun:"table:hero_texts"`

	ID         int64  `bun:"id,pk" json:"id"`
	Heading    string `bun:"heading" json:"heading"`
	Subheading string `bun:"subheading" json:"subheading"`
	Body       string `bun:"body" json:"body"`
}
