package service

import (
	"context"
	"fmt"

	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/repository"
	"github.com/stvowns/portfolio-tracker/internal/secret"
)

// secretKeys lists the setting keys whose values are encrypted at rest.
// Everything else in the setting table is stored as plain text.
var secretKeys = map[string]bool{
	"market_api_key": true,
}

// SettingsService manages the key/value settings store. Values for keys in
// secretKeys pass through the fernet box transparently; callers always see
// plain text.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	box          *secret.Box
}

// NewSettingsService creates a new SettingsService with the provided dependencies.
func NewSettingsService(settingsRepo *repository.SettingsRepository, box *secret.Box) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		box:          box,
	}
}

// Get returns the stored value for a key, decrypting secret keys.
// Returns apperrors.ErrSettingNotFound when the key has never been set.
func (s *SettingsService) Get(key string) (string, error) {
	value, err := s.settingsRepo.Get(key)
	if err != nil {
		return "", err
	}

	if secretKeys[key] {
		plaintext, err := s.box.Decrypt(value)
		if err != nil {
			return "", fmt.Errorf("setting %s: %w", key, err)
		}
		return plaintext, nil
	}

	return value, nil
}

// Set stores a value for a key, encrypting secret keys.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	if secretKeys[key] {
		token, err := s.box.Encrypt(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		value = token
	}

	if err := s.settingsRepo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToStoreSetting, err)
	}
	return nil
}
