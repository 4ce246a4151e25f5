package otp

import (
	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/logging"
	"go.uber.org/fx"
)

func ProvideOTPService(cfg *config.Config, logger *logging.Service) (*Service, error) {
	return NewService(cfg, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideOTPService),
)
