package repository

import (
	"context"
	"errors"
	"time"

	"gigboard/internal/domain"

	"gorm.io/gorm"
)

type ArtistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

type artistModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Hometown  *string   `gorm:"column:hometown"`
	Genre     *string   `gorm:"column:genre"`
	Contact   *string   `gorm:"column:contact"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (artistModel) TableName() string { return "artists" }

func toDomainArtist(m artistModel) domain.Artist {
	a := domain.Artist{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Hometown != nil {
		a.Hometown = *m.Hometown
	}
	if m.Genre != nil {
		a.Genre = *m.Genre
	}
	if m.Contact != nil {
		a.Contact = *m.Contact
	}
	return a
}

func (r *ArtistRepository) Create(ctx context.Context, a *domain.Artist) error {
	m := artistModel{Name: a.Name}
	if a.Hometown != "" {
		m.Hometown = &a.Hometown
	}
	if a.Genre != "" {
		m.Genre = &a.Genre
	}
	if a.Contact != "" {
		m.Contact = &a.Contact
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ArtistRepository) GetByID(ctx context.Context, id int64) (*domain.Artist, error) {
	var m artistModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a := toDomainArtist(m)
	return &a, nil
}

func (r *ArtistRepository) List(ctx context.Context, limit, offset int) ([]domain.Artist, error) {
	var ms []artistModel
	q := r.db.WithContext(ctx).Order("name")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Artist, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainArtist(m))
	}
	return out, nil
}
