// Package authtoken manages the opaque bearer credentials exchanged for a
// verified email and password. One token is valid per user at a time; issuing
// replaces whatever key existed before.
package authtoken

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"gorm.io/gorm"

	"recipebox/models"
)

const keyBytes = 20

var ErrTokenNotFound = errors.New("token not found")

// Issue creates a fresh token for the user, revoking any prior one. The
// delete and insert run in one transaction so there is never a window with
// two valid keys.
func Issue(ctx context.Context, database *gorm.DB, user *models.User) (*models.AuthToken, error) {
	if database == nil {
		return nil, gorm.ErrInvalidDB
	}

	key, err := generateKey()
	if err != nil {
		return nil, err
	}

	token := &models.AuthToken{Key: key, UserID: user.ID}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}

// Resolve maps a presented key to its active owner.
func Resolve(ctx context.Context, database *gorm.DB, key string) (*models.User, error) {
	if database == nil {
		return nil, gorm.ErrInvalidDB
	}
	if key == "" {
		return nil, ErrTokenNotFound
	}

	token := &models.AuthToken{}
	if err := database.WithContext(ctx).Where("key = ?", key).First(token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	user := &models.User{}
	if err := database.WithContext(ctx).First(user, token.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrTokenNotFound
	}

	return user, nil
}

func generateKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
