package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

type SettingsService struct {
	repo   ports.SettingsRepository
	logger zerolog.Logger
}

func NewSettingsService(repo ports.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// GetSettings returns the stored configuration, falling back to defaults when
// nothing has been saved. A repository failure also degrades to defaults so
// the shell can always render.
func (s *SettingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("settings fetch failed, serving defaults")
		def := domain.DefaultSettings()
		return &def, nil
	}
	if stored == nil {
		def := domain.DefaultSettings()
		return &def, nil
	}
	return stored, nil
}

// SaveSettings replaces the configuration document. Admin only.
func (s *SettingsService) SaveSettings(ctx context.Context, actor domain.Actor, in domain.Settings) (*domain.Settings, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.SystemName == "" || in.Timezone == "" || in.DateFormat == "" {
		return nil, fmt.Errorf("%w: systemName, timezone and dateFormat are required", domain.ErrValidation)
	}

	in.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, &in); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.logger.Info().Str("system_name", in.SystemName).Msg("settings saved")
	return &in, nil
}
