package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/you/identitysvc/domain"
)

// PreferencesRepositoryImpl implements domain.PreferencesRepository using GORM
type PreferencesRepositoryImpl struct {
	db *gorm.DB
}

// DBUserPreferences represents the database model for UserPreferences
type DBUserPreferences struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"index"`
	Language string `gorm:"size:2;default:EN"`
}

func (DBUserPreferences) TableName() string { return "user_preferences" }

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(db *gorm.DB) domain.PreferencesRepository {
	return &PreferencesRepositoryImpl{db: db}
}

// Create implements domain.PreferencesRepository
func (r *PreferencesRepositoryImpl) Create(ctx context.Context, prefs *domain.UserPreferences) error {
	dbPrefs := &DBUserPreferences{UserID: prefs.UserID, Language: prefs.Language}
	if err := r.db.WithContext(ctx).Create(dbPrefs).Error; err != nil {
		return err
	}
	prefs.ID = dbPrefs.ID
	return nil
}

// FindByUserID implements domain.PreferencesRepository
func (r *PreferencesRepositoryImpl) FindByUserID(ctx context.Context, userID uint) (*domain.UserPreferences, error) {
	var dbPrefs DBUserPreferences
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbPrefs).Error; err != nil {
		return nil, err
	}
	return &domain.UserPreferences{ID: dbPrefs.ID, UserID: dbPrefs.UserID, Language: dbPrefs.Language}, nil
}
