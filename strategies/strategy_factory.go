package strategies

import (
	"fmt"
	"gitlab.com/aoterocom/AOBacktester/interfaces"
	"gitlab.com/aoterocom/AOBacktester/models"
)

func DetectorFactory(cfg models.StrategyConfig) (interfaces.SignalDetector, error) {

	switch cfg.SignalVariant {
	case models.VariantBreakout:
		return interfaces.SignalDetector(NewBreakoutStrategy()), nil
	case models.VariantPullback:
		return interfaces.SignalDetector(NewPullbackStrategy(cfg.PullbackLookback, cfg.PullbackRetracePct)), nil
	case models.VariantLooseConfirm:
		return interfaces.SignalDetector(NewLooseConfirmStrategy()), nil
	case models.VariantMeanRevert:
		return interfaces.SignalDetector(NewMeanReversionStrategy(cfg.BandKEnter, cfg.BandKExit)), nil
	default:
		return nil, fmt.Errorf("%s is not a known strategy", cfg.SignalVariant)
	}

}
