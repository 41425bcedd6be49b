package service

import (
	"errors"
	"fmt"
	"prepmate/interview-api/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// IdentityStore owns the user table. It is the only writer of user rows,
// which is what upholds the one-account-per-email invariant.
type IdentityStore struct {
	DB *gorm.DB
}

func NewIdentityStore(db *gorm.DB) *IdentityStore {
	return &IdentityStore{DB: db}
}

// FindByEmail returns the user for an email, or nil when none exists.
// Email comparison is exact, no case folding.
func (s *IdentityStore) FindByEmail(email string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	return &user, nil
}

// FindByID returns the user for an ID, or nil when none exists.
func (s *IdentityStore) FindByID(id string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	return &user, nil
}

// Create inserts the user unless a row already exists for its email.
// For federated users an existing row wins and is returned untouched, so
// repeated Google logins stay idempotent and never overwrite a password
// account. A non-federated request against any existing row fails with
// ErrDuplicateIdentity.
func (s *IdentityStore) Create(user *model.User) (string, error) {
	existing, err := s.FindByEmail(user.Email)
	if err != nil {
		return "", err
	}

	if existing != nil {
		if !user.Federated() {
			return "", ErrDuplicateIdentity
		}

		return existing.ID, nil
	}

	if user.ID == "" {
		id, err := gonanoid.Generate(idCharset, 16)
		if err != nil {
			return "", fmt.Errorf("failed to generate user ID, %w", err)
		}

		user.ID = id
	}

	if err := s.DB.Create(user).Error; err != nil {
		// Two racing creates for the same email resolve here: the loser
		// trips the unique index instead of inserting a second row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if user.Federated() {
				if existing, ferr := s.FindByEmail(user.Email); ferr == nil && existing != nil {
					return existing.ID, nil
				}
			}

			return "", ErrDuplicateIdentity
		}

		return "", fmt.Errorf("failed to create user, %w", err)
	}

	return user.ID, nil
}

// ProfilePatch carries the attributes a user may change about themselves.
// Email, auth method and password hash are deliberately absent.
type ProfilePatch struct {
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`
}

// PatchProfile updates the mutable profile attributes of a user.
func (s *IdentityStore) PatchProfile(id string, patch *ProfilePatch) error {
	err := s.DB.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"full_name":       patch.FullName,
			"phone":           patch.Phone,
			"bio":             patch.Bio,
			"profile_picture": patch.ProfilePicture,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update profile, %w", err)
	}

	return nil
}
