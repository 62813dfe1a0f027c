package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/repositories"
)

// editableSettings lists the settings documents exposed over the API.
var editableSettings = map[string]bool{
	models.SettingAlerts:    true,
	models.SettingEmailJS:   true,
	models.SettingDropdowns: true,
}

type SettingService struct {
	Settings *repositories.SettingRepository
}

func NewSettingService(settings *repositories.SettingRepository) *SettingService {
	return &SettingService{Settings: settings}
}

func (s *SettingService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if !editableSettings[key] {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	raw, err := s.Settings.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil && key == models.SettingDropdowns {
		return json.Marshal(models.DefaultDropdownOptions())
	}
	return raw, nil
}

func (s *SettingService) Update(ctx context.Context, key string, value json.RawMessage, userID int) error {
	if !editableSettings[key] {
		return fmt.Errorf("unknown setting %q", key)
	}

	// Validate the payload against the document's schema before storing.
	switch key {
	case models.SettingAlerts:
		var cfg models.AlertConfig
		if err := json.Unmarshal(value, &cfg); err != nil {
			return fmt.Errorf("invalid alert config: %w", err)
		}
		if cfg.ProductionEndDelay.Days < 0 || cfg.RollerSentDelay.Days < 0 {
			return fmt.Errorf("delay days cannot be negative")
		}
	case models.SettingEmailJS:
		var cfg models.NotificationConfig
		if err := json.Unmarshal(value, &cfg); err != nil {
			return fmt.Errorf("invalid notification config: %w", err)
		}
	case models.SettingDropdowns:
		var opts models.DropdownOptions
		if err := json.Unmarshal(value, &opts); err != nil {
			return fmt.Errorf("invalid dropdown options: %w", err)
		}
	}

	return s.Settings.Upsert(ctx, key, value, userID)
}
