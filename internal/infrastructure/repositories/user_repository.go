package repositories

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/you/storefront/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"size:255"`
	Email          string    `gorm:"uniqueIndex;size:255"`
	Contact        string    `gorm:"size:32"`
	PasswordHash   string    `gorm:"column:password"`
	Role           string    `gorm:"index;size:64"`
	Addresses      string    `gorm:"type:text"`
	ResetToken     string    `gorm:"index;size:128"`
	ResetExpiresAt time.Time
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
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
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// FindByResetToken implements domain.UserRepository. Expiry is enforced in
// the query so an expired grant is indistinguishable from an absent one.
func (r *UserRepositoryImpl) FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_expires_at > ?", token, now).
		First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// userToDB converts domain user to database user
func userToDB(user *domain.User) *DBUser {
	addresses := ""
	if len(user.Addresses) > 0 {
		if data, err := json.Marshal(user.Addresses); err == nil {
			addresses = string(data)
		}
	}
	return &DBUser{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Contact:        user.Contact,
		PasswordHash:   user.PasswordHash,
		Role:           user.Role,
		Addresses:      addresses,
		ResetToken:     user.ResetToken,
		ResetExpiresAt: user.ResetExpiresAt,
	}
}

// userToDomain converts database user to domain user
func userToDomain(dbUser *DBUser) *domain.User {
	var addresses []domain.Address
	if dbUser.Addresses != "" {
		_ = json.Unmarshal([]byte(dbUser.Addresses), &addresses)
	}
	return &domain.User{
		ID:             dbUser.ID,
		Name:           dbUser.Name,
		Email:          dbUser.Email,
		Contact:        dbUser.Contact,
		PasswordHash:   dbUser.PasswordHash,
		Role:           dbUser.Role,
		Addresses:      addresses,
		ResetToken:     dbUser.ResetToken,
		ResetExpiresAt: dbUser.ResetExpiresAt,
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}
