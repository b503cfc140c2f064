package models

import "github.com/uptrace/bun"

type Speaker struct {
	bun.BaseModel `bun:"table:speakers"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name,notnull" json:"name"`
	Title    string `bun:"title" json:"title"`
	Bio      string `bun:"bio" json:"bio"`
	Image    string `bun:"image" json:"image"`
	Position int    `bun:"position" json:"position"`
}
