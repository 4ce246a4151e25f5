package impact

import (
	"github.com/feedchain/backend/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideImpactService(db *gorm.DB, logger *logging.Service) *Service {
	return NewService(db, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideImpactService),
)
