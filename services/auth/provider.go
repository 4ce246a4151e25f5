package auth

import (
	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/jwt"
	"github.com/feedchain/backend/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideAuthService(cfg *config.Config, db *gorm.DB, jwtService *jwt.Service, logger *logging.Service) *Service {
	return NewService(cfg, db, jwtService, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideAuthService),
)
