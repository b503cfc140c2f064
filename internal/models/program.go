package models

import "github.com/uptrace/bun"

// ProgramItem is one slot in the conference program. Display order follows
// the position column, managed by the admin reorder endpoint.
type ProgramItem struct {
	bun.BaseModel `bun:"table:program_items"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Title       string `bun:"title,notnull" json:"title"`
	Speaker     string `bun:"speaker" json:"speaker"`
	StartsAt    string `bun:"starts_at" json:"startsAt"`
	EndsAt      string `bun:"ends_at" json:"endsAt"`
	Description string `bun:"description" json:"description"`
	Position    int    `bun:"position" json:"position"`
}
