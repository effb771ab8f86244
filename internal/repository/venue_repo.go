package repository

import (
	"context"
	"errors"
	"time"

	"gigboard/internal/domain"

	"gorm.io/gorm"
)

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

type venueModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	City      *string   `gorm:"column:city"`
	Capacity  int       `gorm:"column:capacity"`
	Contact   *string   `gorm:"column:contact"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (venueModel) TableName() string { return "venues" }

func toDomainVenue(m venueModel) domain.Venue {
	v := domain.Venue{
		ID:        m.ID,
		Name:      m.Name,
		Capacity:  m.Capacity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.City != nil {
		v.City = *m.City
	}
	if m.Contact != nil {
		v.Contact = *m.Contact
	}
	return v
}

func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	m := venueModel{Name: v.Name, Capacity: v.Capacity}
	if v.City != "" {
		m.City = &v.City
	}
	if v.Contact != "" {
		m.Contact = &v.Contact
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	v.ID = m.ID
	v.CreatedAt = m.CreatedAt
	v.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	var m venueModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v := toDomainVenue(m)
	return &v, nil
}

func (r *VenueRepository) List(ctx context.Context, limit, offset int) ([]domain.Venue, error) {
	var ms []venueModel
	q := r.db.WithContext(ctx).Order("name")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Venue, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainVenue(m))
	}
	return out, nil
}
