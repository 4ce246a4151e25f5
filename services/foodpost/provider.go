package foodpost

import (
	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideFoodPostService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	return NewService(cfg, db, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideFoodPostService),
)
