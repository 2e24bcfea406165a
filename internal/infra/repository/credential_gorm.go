package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Rafals/storefront/internal/domain/model"
	repo "github.com/Rafals/storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// credentialRow is the single stored session, keyed by profile name.
type credentialRow struct {
	Profile   string    `gorm:"primaryKey;type:varchar(64)"`
	Token     string    `gorm:"type:text;not null"`
	Username  string    `gorm:"type:varchar(255);not null;default:''"`
	Role      string    `gorm:"type:varchar(20);not null;default:''"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (credentialRow) TableName() string {
	return "credentials"
}

type credentialGormRepository struct {
	db      *gorm.DB
	profile string
}

// NewCredentialGormRepository migrates the credentials table and returns the store.
func NewCredentialGormRepository(db *gorm.DB, profile string) (repo.CredentialRepository, error) {
	if profile == "" {
		profile = "default"
	}
	if err := db.AutoMigrate(&credentialRow{}); err != nil {
		return nil, err
	}
	return &credentialGormRepository{db: db, profile: profile}, nil
}

func (r *credentialGormRepository) Load(ctx context.Context) (model.Session, error) {
	var row credentialRow

	err := r.db.WithContext(ctx).
		Where("profile = ?", r.profile).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Session{}, repo.ErrCredentialNotFound
		}
		return model.Session{}, err
	}

	return model.Session{
		Token:    row.Token,
		Username: row.Username,
		Role:     model.ParseRole(row.Role),
	}, nil
}

// Save upserts on the profile key.
func (r *credentialGormRepository) Save(ctx context.Context, s model.Session) error {
	row := credentialRow{
		Profile:  r.profile,
		Token:    s.Token,
		Username: s.Username,
		Role:     string(s.Role),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "username", "role", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *credentialGormRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("profile = ?", r.profile).
		Delete(&credentialRow{}).Error
}
