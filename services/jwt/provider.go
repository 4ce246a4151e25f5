package jwt

import (
	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/logging"
	"go.uber.org/fx"
)

func NewJWTService(cfg *config.Config, logger *logging.Service) *Service {
	return NewService(cfg, logger)
}

var Module = fx.Options(
	fx.Provide(NewJWTService),
)
