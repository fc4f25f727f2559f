package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/identitysvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;size:255"`
	PasswordHash string  `gorm:"column:password;size:200"`
	Num          *string `gorm:"uniqueIndex;size:30"`
	FirstName    string  `gorm:"size:30"`
	LastName     string  `gorm:"size:30"`
	Picture      string  `gorm:"size:500"`
	Verified     bool    `gorm:"index"`
	Premium      bool
	Tokens       int `gorm:"default:0"`
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.DateJoined = dbUser.DateJoined
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByNum implements domain.UserRepository
func (r *UserRepositoryImpl) FindByNum(ctx context.Context, num string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("num = ?", num).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// ExistsByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// SetVerifiedNum implements domain.UserRepository
func (r *UserRepositoryImpl) SetVerifiedNum(ctx context.Context, userID uint, num string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Updates(map[string]any{"num": num, "verified": true}).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("password", passwordHash).Error
}

// AddTokens implements domain.UserRepository
func (r *UserRepositoryImpl) AddTokens(ctx context.Context, userID uint, tokens int) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("tokens", gorm.Expr("tokens + ?", tokens)).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	var num *string
	if user.Num != "" {
		num = &user.Num
	}
	return &DBUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Num:          num,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Picture:      user.Picture,
		Verified:     user.Verified,
		Premium:      user.Premium,
		Tokens:       user.Tokens,
		IsActive:     user.IsActive,
		IsStaff:      user.IsStaff,
		IsSuperuser:  user.IsSuperuser,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	num := ""
	if dbUser.Num != nil {
		num = *dbUser.Num
	}
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		Num:          num,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		Picture:      dbUser.Picture,
		Verified:     dbUser.Verified,
		Premium:      dbUser.Premium,
		Tokens:       dbUser.Tokens,
		IsActive:     dbUser.IsActive,
		IsStaff:      dbUser.IsStaff,
		IsSuperuser:  dbUser.IsSuperuser,
		DateJoined:   dbUser.DateJoined,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
