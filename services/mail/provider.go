package mail

import (
	"context"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/claim"
	"github.com/feedchain/backend/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// ProvideMailService returns nil when mail is disabled.
func ProvideMailService(cfg *config.Config, logger *logging.Service) (*Service, error) {
	if !cfg.Mail.Enabled {
		return nil, nil
	}
	return NewService(&cfg.Mail, logger)
}

// ProvideNotifier returns a nil claim.Notifier when mail is disabled.
// Pending sends are drained on stop, before the database closes.
func ProvideNotifier(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB, svc *Service, logger *logging.Service) claim.Notifier {
	if svc == nil {
		return nil
	}

	notifier := NewNotifier(cfg, db, svc, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return notifier.Wait(ctx)
		},
	})
	return notifier
}

var Module = fx.Options(
	fx.Provide(ProvideMailService),
	fx.Provide(ProvideNotifier),
)
