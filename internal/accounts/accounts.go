// Package accounts implements the user store: account creation, credential
// verification, and profile updates. Handlers and the superuser command both
// go through it so password and email rules live in one place.
package accounts

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/models"
)

// MinPasswordLength is the minimum accepted password size.
const MinPasswordLength = 5

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrEmailTaken         = errors.New("a user with that email already exists")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
)

// NormalizeEmail lowercases and trims an email address so lookups and the
// unique index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser stores a new account with a bcrypt-hashed password.
func CreateUser(ctx context.Context, database *gorm.DB, email, password, name string) (*models.User, error) {
	if database == nil {
		return nil, gorm.ErrInvalidDB
	}

	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, ErrEmailRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := FindByEmail(ctx, database, normalized); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        normalized,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashed),
		IsActive:     true,
	}

	if err := database.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// CreateSuperuser stores a new account carrying both elevated flags.
func CreateSuperuser(ctx context.Context, database *gorm.DB, email, password string) (*models.User, error) {
	user, err := CreateUser(ctx, database, email, password, "")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"is_staff": true, "is_superuser": true}
	if err := database.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	return user, nil
}

// FindByEmail loads a user by normalized email.
func FindByEmail(ctx context.Context, database *gorm.DB, email string) (*models.User, error) {
	if database == nil {
		return nil, gorm.ErrInvalidDB
	}

	user := &models.User{}
	err := database.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the matching active user.
// Every failure mode collapses into ErrInvalidCredentials so callers cannot
// distinguish an unknown email from a wrong password.
func Authenticate(ctx context.Context, database *gorm.DB, email, password string) (*models.User, error) {
	user, err := FindByEmail(ctx, database, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is",
// so partial updates can be distinguished from explicit blanks.
type ProfileUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

// UpdateProfile applies the provided fields to an existing user. A supplied
// password is re-hashed; a supplied email must remain non-empty.
func UpdateProfile(ctx context.Context, database *gorm.DB, user *models.User, update ProfileUpdate) error {
	if database == nil {
		return gorm.ErrInvalidDB
	}

	updates := map[string]any{}

	if update.Email != nil {
		normalized := NormalizeEmail(*update.Email)
		if normalized == "" {
			return ErrEmailRequired
		}
		if normalized != user.Email {
			if _, err := FindByEmail(ctx, database, normalized); err == nil {
				return ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		updates["email"] = normalized
	}

	if update.Name != nil {
		updates["name"] = strings.TrimSpace(*update.Name)
	}

	if update.Password != nil {
		if len(*update.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		updates["password_hash"] = string(hashed)
	}

	if len(updates) == 0 {
		return nil
	}

	return database.WithContext(ctx).Model(user).Updates(updates).Error
}
