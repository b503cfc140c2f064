package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DiscountCode is a reusable percentage-off token. Codes are stored uppercase
// and matched case-insensitively. used_count is monotonic and never exceeds
// max_uses when set.
type DiscountCode struct {
	bun.BaseModel `bun:"table:discount_codes"`

	ID        int64      `bun:"id,pk,autoincrement" json:"id"`
	Code      string     `bun:"code,notnull,unique" json:"code"`
	Percent   int        `bun:"percent,notnull" json:"percent"`
	MaxUses   *int       `bun:"max_uses,nullzero" json:"maxUses,omitempty"`
	UsedCount int        `bun:"used_count,notnull,default:0" json:"usedCount"`
	ExpiresAt *time.Time `bun:"expires_at,nullzero" json:"expiresAt,omitempty"`
}
