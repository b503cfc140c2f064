package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"confreg/internal/models"

	"github.com/uptrace/bun"
)

var ErrNotFound = errors.New("not found")

type DB struct {
	Bun *bun.DB
}

// ---------------- PROGRAM ----------------

func (d *DB) ListProgram(ctx context.Context) ([]models.ProgramItem, error) {
	var items []models.ProgramItem
	err := d.Bun.NewSelect().
		Model(&items).
		Order("position ASC", "id ASC").
		Scan(ctx)
	return items, err
}

func (d *DB) CreateProgramItem(ctx context.Context, item *models.ProgramItem) error {
	count, err := d.Bun.NewSelect().Model((*models.ProgramItem)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	item.Position = count
	_, err = d.Bun.NewInsert().Model(item).Exec(ctx)
	return err
}

func (d *DB) UpdateProgramItem(ctx context.Context, item *models.ProgramItem) error {
	res, err := d.Bun.NewUpdate().
		Model(item).
		Column("title", "speaker", "starts_at", "ends_at", "description").
		Where("id = ?", item.ID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (d *DB) DeleteProgramItem(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.ProgramItem)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ReorderProgram rewrites positions to follow the given id list exactly.
func (d *DB) ReorderProgram(ctx context.Context, ids []int64) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for position, id := range ids {
			res, err := tx.NewUpdate().
				Model((*models.ProgramItem)(nil)).
				Set("position = ?", position).
				Where("id = ?", id).
				Exec(ctx)
			if err != nil {
				return err
			}
			if err := requireAffected(res); err != nil {
				return fmt.Errorf("program item %d: %w", id, err)
			}
		}
		return nil
	})
}

// ---------------- PRICES ----------------

func (d *DB) ListPrices(ctx context.Context) ([]models.PriceOption, error) {
	var prices []models.PriceOption
	err := d.Bun.NewSelect().
		Model(&prices).
		Order("position ASC", "id ASC").
		Scan(ctx)
	return prices, err
}

func (d *DB) CreatePrice(ctx context.Context, price *models.PriceOption) error {
	count, err := d.Bun.NewSelect().Model((*models.PriceOption)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	price.Position = count
	_, err = d.Bun.NewInsert().Model(price).Exec(ctx)
	return err
}

func (d *DB) UpdatePrice(ctx context.Context, price *models.PriceOption) error {
	res, err := d.Bun.NewUpdate().
		Model(price).
		Column("name", "amount", "description", "position").
		Where("id = ?", price.ID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (d *DB) DeletePrice(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.PriceOption)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- DISCOUNTS ----------------

func (d *DB) ListDiscounts(ctx context.Context) ([]models.DiscountCode, error) {
	var discounts []models.DiscountCode
	err := d.Bun.NewSelect().
		Model(&discounts).
		Order("id ASC").
		Scan(ctx)
	return discounts, err
}

func (d *DB) CreateDiscount(ctx context.Context, discount *models.DiscountCode) error {
	_, err := d.Bun.NewInsert().Model(discount).Exec(ctx)
	return err
}

// UpdateDiscount edits code/percent/limits. used_count is monotonic and
// deliberately not updatable.
func (d *DB) UpdateDiscount(ctx context.Context, discount *models.DiscountCode) error {
	res, err := d.Bun.NewUpdate().
		Model(discount).
		Column("code", "percent", "max_uses", "expires_at").
		Where("id = ?", discount.ID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (d *DB) DeleteDiscount(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.DiscountCode)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- SPEAKERS ----------------

func (d *DB) ListSpeakers(ctx context.Context) ([]models.Speaker, error) {
	var speakers []models.Speaker
	err := d.Bun.NewSelect().
		Model(&speakers).
		Order("position ASC", "id ASC").
		Scan(ctx)
	return speakers, err
}

func (d *DB) CreateSpeaker(ctx context.Context, speaker *models.Speaker) error {
	count, err := d.Bun.NewSelect().Model((*models.Speaker)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	speaker.Position = count
	_, err = d.Bun.NewInsert().Model(speaker).Exec(ctx)
	return err
}

func (d *DB) UpdateSpeaker(ctx context.Context, speaker *models.Speaker) error {
	res, err := d.Bun.NewUpdate().
		Model(speaker).
		Column("name", "title", "bio", "image", "position").
		Where("id = ?", speaker.ID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (d *DB) DeleteSpeaker(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Speaker)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- PARTNERS ----------------

func (d *DB) ListPartners(ctx context.Context) ([]models.Partner, error) {
	var partners []models.Partner
	err := d.Bun.NewSelect().
		Model(&partners).
		Order("position ASC", "id ASC").
		Scan(ctx)
	return partners, err
}

func (d *DB) CreatePartner(ctx context.Context, partner *models.Partner) error {
	count, err := d.Bun.NewSelect().Model((*models.Partner)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	partner.Position = count
	_, err = d.Bun.NewInsert().Model(partner).Exec(ctx)
	return err
}

func (d *DB) UpdatePartner(ctx context.Context, partner *models.Partner) error {
	res, err := d.Bun.NewUpdate().
		Model(partner).
		Column("name", "url", "image", "position").
		Where("id = ?", partner.ID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (d *DB) DeletePartner(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Partner)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- VENUE / HERO ----------------

func (d *DB) GetVenue(ctx context.Context) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().Model(&venue).Where("id = 1").Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Venue{ID: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (d *DB) UpsertVenue(ctx context.Context, venue *models.Venue) error {
	venue.ID = 1
	_, err := d.Bun.NewInsert().
		Model(venue).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("address = EXCLUDED.address").
		Set("city = EXCLUDED.city").
		Set("description = EXCLUDED.description").
		Set("map_url = EXCLUDED.map_url").
		Exec(ctx)
	return err
}

func (d *DB) GetHero(ctx context.Context) (*models.HeroText, error) {
	var hero models.HeroText
	err := d.Bun.NewSelect().Model(&hero).Where("id = 1").Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.HeroText{ID: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return &hero, nil
}

func (d *DB) UpsertHero(ctx context.Context, hero *models.HeroText) error {
	hero.ID = 1
	_, err := d.Bun.NewInsert().
		Model(hero).
		On("CONFLICT (id) DO UPDATE").
		Set("heading = EXCLUDED.heading").
		Set("subheading = EXCLUDED.subheading").
		Set("body = EXCLUDED.body").
		Exec(ctx)
	return err
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
