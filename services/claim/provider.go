package claim

import (
	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/logging"
	"github.com/feedchain/backend/services/otp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideClaimService(cfg *config.Config, db *gorm.DB, otpService *otp.Service, logger *logging.Service) *Service {
	return NewService(cfg, db, otpService, logger)
}

type OptionalNotifier struct {
	fx.In
	Notifier Notifier `optional:"true"`
}

func WireNotifier(claimSvc *Service, opt OptionalNotifier) {
	if claimSvc != nil && opt.Notifier != nil {
		claimSvc.SetNotifier(opt.Notifier)
	}
}

var Module = fx.Options(
	fx.Provide(ProvideClaimService),
	fx.Invoke(WireNotifier),
)
