package repository

import (
	"context"
	"errors"
	"time"

	"gigboard/internal/domain"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	PartyID      int64     `gorm:"column:party_id"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (accountModel) TableName() string { return "accounts" }

func toDomainAccount(m accountModel) *domain.Account {
	return &domain.Account{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		PartyID:      m.PartyID,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := accountModel{
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		PartyID:      a.PartyID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var m accountModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainAccount(m), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var m accountModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainAccount(m), nil
}
