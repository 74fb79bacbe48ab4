package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents an account that can record attendance.
// The admin flag is read at login and carried in the session.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
}

// TableName overrides the table name used by User.
func (User) TableName() string {
	return "users"
}

func (c *Client) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error) {
	user := User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by ID", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash overwrites the stored hash of the named user.
// When grantAdmin is set the user is also promoted to administrator.
// It returns gorm.ErrRecordNotFound if no user has that name.
func (c *Client) UpdatePasswordHash(ctx context.Context, username, passwordHash string, grantAdmin bool) error {
	updates := map[string]any{"password_hash": passwordHash}
	if grantAdmin {
		updates["is_admin"] = true
	}

	result := c.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Updates(updates)
	if result.Error != nil {
		log.Error("failed to update password hash", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
