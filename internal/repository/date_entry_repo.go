package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gigboard/internal/domain"
	"gigboard/internal/modules/booking"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DateEntryRepository struct {
	db *gorm.DB
}

func NewDateEntryRepository(db *gorm.DB) *DateEntryRepository {
	return &DateEntryRepository{db: db}
}

type dateEntryModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	Date         string     `gorm:"column:date;index:idx_entries_artist_date"`
	ArtistID     int64      `gorm:"column:artist_id;index:idx_entries_artist_date"`
	VenueID      int64      `gorm:"column:venue_id;index"`
	Source       string     `gorm:"column:source"`
	Status       string     `gorm:"column:status"`
	Billing      *string    `gorm:"column:billing"`
	SetLength    int        `gorm:"column:set_length"`
	Deal         *string    `gorm:"column:deal;type:text"`
	HoldPosition int        `gorm:"column:hold_position"`
	HeldAt       *time.Time `gorm:"column:held_at"`
	HeldUntil    *time.Time `gorm:"column:held_until"`
	HoldReason   *string    `gorm:"column:hold_reason"`
	Details      *string    `gorm:"column:details;type:text"`
	Notes        *string    `gorm:"column:notes;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (dateEntryModel) TableName() string { return "date_entries" }

// entryRow joins the party names used by the timeline view.
type entryRow struct {
	dateEntryModel
	ArtistName string `gorm:"column:artist_name"`
	VenueName  string `gorm:"column:venue_name"`
}

func toDomainEntry(m dateEntryModel, artistName, venueName string) (*domain.DateEntry, error) {
	e := &domain.DateEntry{
		ID:           m.ID,
		Date:         m.Date,
		ArtistID:     m.ArtistID,
		VenueID:      m.VenueID,
		Source:       domain.NegotiationSource(m.Source),
		Status:       domain.EntryStatus(m.Status),
		SetLength:    m.SetLength,
		HoldPosition: m.HoldPosition,
		HeldAt:       m.HeldAt,
		HeldUntil:    m.HeldUntil,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		ArtistName:   artistName,
		VenueName:    venueName,
	}
	if m.Billing != nil {
		e.Billing = domain.Billing(*m.Billing)
	}
	if m.HoldReason != nil {
		e.HoldReason = *m.HoldReason
	}
	if m.Notes != nil {
		e.Notes = *m.Notes
	}
	if m.Details != nil && *m.Details != "" {
		e.Details = json.RawMessage(*m.Details)
	}
	if m.Deal != nil && *m.Deal != "" {
		var d domain.Deal
		if err := json.Unmarshal([]byte(*m.Deal), &d); err != nil {
			return nil, err
		}
		e.Deal = &d
	}
	return e, nil
}

func toEntryModel(e *domain.DateEntry) (dateEntryModel, error) {
	m := dateEntryModel{
		ID:           e.ID,
		Date:         e.Date,
		ArtistID:     e.ArtistID,
		VenueID:      e.VenueID,
		Source:       string(e.Source),
		Status:       string(e.Status),
		SetLength:    e.SetLength,
		HoldPosition: e.HoldPosition,
		HeldAt:       e.HeldAt,
		HeldUntil:    e.HeldUntil,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.Billing != "" {
		v := string(e.Billing)
		m.Billing = &v
	}
	if e.HoldReason != "" {
		v := e.HoldReason
		m.HoldReason = &v
	}
	if e.Notes != "" {
		v := e.Notes
		m.Notes = &v
	}
	if len(e.Details) > 0 {
		v := string(e.Details)
		m.Details = &v
	}
	if e.Deal != nil {
		raw, err := json.Marshal(e.Deal)
		if err != nil {
			return dateEntryModel{}, err
		}
		v := string(raw)
		m.Deal = &v
	}
	return m, nil
}

type txKey struct{}

// conn returns the transaction bound to ctx by WithGroupTx, or the base
// connection outside one.
func (r *DateEntryRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// WithGroupTx runs fn inside a transaction that owns the whole (artist,
// date) sibling group. On Postgres the group's rows are locked FOR UPDATE
// first, so position compaction and the confirm re-check always work from
// the freshest read; SQLite is single-writer and needs no row locks.
func (r *DateEntryRepository) WithGroupTx(ctx context.Context, artistID int64, date string, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			var locked []dateEntryModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("artist_id = ? AND date = ?", artistID, date).
				Find(&locked).Error; err != nil {
				return err
			}
		}
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

const entrySelect = `
SELECT de.*, a.name AS artist_name, v.name AS venue_name
FROM date_entries de
LEFT JOIN artists a ON a.id = de.artist_id
LEFT JOIN venues v ON v.id = de.venue_id
`

func (r *DateEntryRepository) GetByID(ctx context.Context, id string) (*domain.DateEntry, error) {
	var row entryRow
	tx := r.conn(ctx).Raw(entrySelect+"WHERE de.id = ?", id).Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 || row.ID == "" {
		return nil, booking.ErrNotFound
	}
	return toDomainEntry(row.dateEntryModel, row.ArtistName, row.VenueName)
}

func (r *DateEntryRepository) GetSiblings(ctx context.Context, artistID int64, date string) ([]domain.DateEntry, error) {
	var rows []entryRow
	tx := r.conn(ctx).Raw(entrySelect+"WHERE de.artist_id = ? AND de.date = ? ORDER BY de.created_at, de.id", artistID, date).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rowsToDomain(rows)
}

func (r *DateEntryRepository) CountConfirmed(ctx context.Context, artistID int64, date string, excludeID string) (int64, error) {
	var cnt int64
	tx := r.conn(ctx).Raw(`
SELECT COUNT(1) FROM date_entries
WHERE artist_id = ? AND date = ? AND status = ? AND id <> ?`,
		artistID, date, string(domain.StatusConfirmed), excludeID).Scan(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *DateEntryRepository) ListForArtist(ctx context.Context, artistID int64) ([]domain.DateEntry, error) {
	var rows []entryRow
	tx := r.conn(ctx).Raw(entrySelect+"WHERE de.artist_id = ? ORDER BY de.date, de.created_at", artistID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rowsToDomain(rows)
}

func (r *DateEntryRepository) ListForVenue(ctx context.Context, venueID int64) ([]domain.DateEntry, error) {
	var rows []entryRow
	tx := r.conn(ctx).Raw(entrySelect+"WHERE de.venue_id = ? ORDER BY de.date, de.created_at", venueID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rowsToDomain(rows)
}

func (r *DateEntryRepository) Create(ctx context.Context, e *domain.DateEntry) error {
	m, err := toEntryModel(e)
	if err != nil {
		return err
	}
	return r.conn(ctx).Create(&m).Error
}

func (r *DateEntryRepository) Update(ctx context.Context, e *domain.DateEntry) error {
	m, err := toEntryModel(e)
	if err != nil {
		return err
	}
	// Save with explicit column list so cleared hold fields are written
	// back as NULL/zero rather than skipped.
	return r.conn(ctx).Model(&dateEntryModel{}).
		Where("id = ?", m.ID).
		Select("status", "billing", "set_length", "deal", "hold_position",
			"held_at", "held_until", "hold_reason", "details", "notes", "updated_at").
		Updates(&m).Error
}

func (r *DateEntryRepository) Delete(ctx context.Context, id string) error {
	tx := r.conn(ctx).Where("id = ?", id).Delete(&dateEntryModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}

func rowsToDomain(rows []entryRow) ([]domain.DateEntry, error) {
	out := make([]domain.DateEntry, 0, len(rows))
	for _, row := range rows {
		e, err := toDomainEntry(row.dateEntryModel, row.ArtistName, row.VenueName)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// Migrate creates the schema plus the partial unique index backing the
// at-most-one-CONFIRMED-per-artist-and-date invariant. Both Postgres and
// SQLite support partial indexes, so the guard exists in every deployment.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&dateEntryModel{}, &artistModel{}, &venueModel{}, &accountModel{}); err != nil {
		return err
	}
	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_one_confirmed_per_artist_date
ON date_entries (artist_id, date) WHERE status = 'CONFIRMED'`).Error
}

var ErrNotFound = errors.New("record not found")
