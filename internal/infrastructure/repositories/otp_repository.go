package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/identitysvc/domain"
)

// OtpRepositoryImpl implements domain.OtpRepository using GORM
type OtpRepositoryImpl struct {
	db *gorm.DB
}

// DBOtpCode represents the database model for OtpCode. Email is unique:
// the store keeps a single record per address across all purposes.
type DBOtpCode struct {
	ID        uint       `gorm:"primaryKey"`
	Email     string     `gorm:"uniqueIndex;size:255"`
	Code      string     `gorm:"size:6"`
	Purpose   string     `gorm:"size:20"`
	ExpiresAt *time.Time `gorm:"column:expiry_date"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOtpCode) TableName() string {
	return "otp_codes"
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) domain.OtpRepository {
	return &OtpRepositoryImpl{db: db}
}

// GetOrCreate implements domain.OtpRepository. A freshly created record is
// an empty shell: no code, no expiry, purpose unset.
func (r *OtpRepositoryImpl) GetOrCreate(ctx context.Context, email string) (*domain.OtpCode, error) {
	var dbOtp DBOtpCode
	err := r.db.WithContext(ctx).Where(DBOtpCode{Email: email}).FirstOrCreate(&dbOtp).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomain(&dbOtp), nil
}

// FindByEmail implements domain.OtpRepository
func (r *OtpRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.OtpCode, error) {
	var dbOtp DBOtpCode
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbOtp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPRecordNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOtp), nil
}

// Save implements domain.OtpRepository
func (r *OtpRepositoryImpl) Save(ctx context.Context, otp *domain.OtpCode) error {
	dbOtp := r.domainToDB(otp)
	if err := r.db.WithContext(ctx).Save(dbOtp).Error; err != nil {
		return err
	}
	otp.ID = dbOtp.ID
	return nil
}

// Delete implements domain.OtpRepository
func (r *OtpRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBOtpCode{}, id).Error
}

func (r *OtpRepositoryImpl) domainToDB(otp *domain.OtpCode) *DBOtpCode {
	return &DBOtpCode{
		ID:        otp.ID,
		Email:     otp.Email,
		Code:      otp.Code,
		Purpose:   string(otp.Purpose),
		ExpiresAt: otp.ExpiresAt,
		CreatedAt: otp.CreatedAt,
	}
}

func (r *OtpRepositoryImpl) dbToDomain(dbOtp *DBOtpCode) *domain.OtpCode {
	return &domain.OtpCode{
		ID:        dbOtp.ID,
		Email:     dbOtp.Email,
		Code:      dbOtp.Code,
		Purpose:   domain.OtpPurpose(dbOtp.Purpose),
		ExpiresAt: dbOtp.ExpiresAt,
		CreatedAt: dbOtp.CreatedAt,
	}
}
