package models

import "github.com/uptrace/bun"

type Partner struct {
	bun.BaseModel `bun:"table:partners"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name,notnull" json:"name"`
	URL      string `bun:"url" json:"url"`
	Image    string `bun:"image" json:"image"`
	Position int    `bun:"position" json:"position"`
}
