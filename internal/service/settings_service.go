package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
	"github.com/ndewijer/Trade-Journal-Backend/internal/repository"
)

// Key sources reported by GetSettings.
const (
	KeySourceStored      = "stored"
	KeySourceEnvironment = "environment"
	KeySourceNone        = "none"
)

// SettingsService handles user settings: the starting capital and the extraction API key.
// The API key is encrypted with fernet before it is written to the database.
type SettingsService struct {
	settingRepo            *repository.SettingRepository
	defaultStartingCapital float64
	envExtractionKey       string
	encryptionKey          *fernet.Key
}

// NewSettingsService creates a new SettingsService.
// encryptionKey is a base64 fernet key; when empty, storing secrets is disabled.
func NewSettingsService(
	settingRepo *repository.SettingRepository,
	defaultStartingCapital float64,
	envExtractionKey string,
	encryptionKey string,
) (*SettingsService, error) {
	s := &SettingsService{
		settingRepo:            settingRepo,
		defaultStartingCapital: defaultStartingCapital,
		envExtractionKey:       envExtractionKey,
	}

	if encryptionKey != "" {
		k, err := fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		s.encryptionKey = k
	}

	return s, nil
}

// StartingCapital returns the saved starting capital, or the configured default when none is saved.
func (s *SettingsService) StartingCapital(ctx context.Context) (float64, error) {
	setting, err := s.settingRepo.GetSetting(ctx, model.SettingStartingCapital)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return s.defaultStartingCapital, nil
	}
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("stored starting capital %q is not a number: %w", setting.Value, err)
	}
	return v, nil
}

// SetStartingCapital saves the starting capital.
func (s *SettingsService) SetStartingCapital(ctx context.Context, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return apperrors.ErrInvalidStartingCapital
	}
	return s.settingRepo.SetSetting(ctx, model.SettingStartingCapital, strconv.FormatFloat(v, 'f', -1, 64))
}

// SetExtractionKey encrypts and saves the extraction API key.
func (s *SettingsService) SetExtractionKey(ctx context.Context, apiKey string) error {
	if s.encryptionKey == nil {
		return apperrors.ErrEncryptionKeyMissing
	}

	tok, err := fernet.EncryptAndSign([]byte(strings.TrimSpace(apiKey)), s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt extraction key: %w", err)
	}
	return s.settingRepo.SetSetting(ctx, model.SettingExtractionKey, string(tok))
}

// ExtractionKey returns the stored extraction key, falling back to the environment key.
func (s *SettingsService) ExtractionKey(ctx context.Context) (string, error) {
	key, _, err := s.extractionKey(ctx)
	return key, err
}

func (s *SettingsService) extractionKey(ctx context.Context) (key, source string, err error) {
	if s.encryptionKey != nil {
		setting, err := s.settingRepo.GetSetting(ctx, model.SettingExtractionKey)
		switch {
		case err == nil:
			// Stored keys never expire, hence the negative ttl.
			msg := fernet.VerifyAndDecrypt([]byte(setting.Value), -1, []*fernet.Key{s.encryptionKey})
			if msg == nil {
				return "", "", errors.New("stored extraction key cannot be decrypted with the configured encryption key")
			}
			return string(msg), KeySourceStored, nil
		case !errors.Is(err, apperrors.ErrSettingNotFound):
			return "", "", err
		}
	}

	if s.envExtractionKey != "" {
		return s.envExtractionKey, KeySourceEnvironment, nil
	}
	return "", KeySourceNone, nil
}

// GetSettings returns the public view of the settings.
func (s *SettingsService) GetSettings(ctx context.Context) (model.SettingsResponse, error) {
	capital, err := s.StartingCapital(ctx)
	if err != nil {
		return model.SettingsResponse{}, err
	}

	key, source, err := s.extractionKey(ctx)
	if err != nil {
		return model.SettingsResponse{}, err
	}

	return model.SettingsResponse{
		StartingCapital:         capital,
		ExtractionKeyConfigured: key != "",
		ExtractionKeySource:     source,
		EncryptionEnabled:       s.encryptionKey != nil,
	}, nil
}
