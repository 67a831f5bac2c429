package config

import (
	"fmt"
	"github.com/xhit/go-str2duration/v2"
	"gitlab.com/aoterocom/AOBacktester/models"
	"gitlab.com/aoterocom/AOBacktester/models/analytics"
	"gitlab.com/aoterocom/AOBacktester/services"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

type optimizerFile struct {
	Grid                       analytics.ParameterGrid `yaml:"grid"`
	services.OptimizerSettings `yaml:",inline"`
	TrainFraction              float64                 `yaml:"trainFraction"`
	WalkForward                walkForwardFile         `yaml:"walkForward"`
}

type walkForwardFile struct {
	Train string `yaml:"train"`
	Test  string `yaml:"test"`
	TopK  int    `yaml:"topK"`
}

// OptimizerPlan is a parsed optimizer file.
type OptimizerPlan struct {
	Grid          analytics.ParameterGrid
	Settings      services.OptimizerSettings
	TrainFraction float64
	// Walk-forward validation of the top results is enabled when TopK > 0.
	WalkForwardTrain time.Duration
	WalkForwardTest  time.Duration
	TopK             int
}

func LoadOptimizerFile(path string) (OptimizerPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return OptimizerPlan{}, fmt.Errorf("reading optimizer file: %w", err)
	}
	return ParseOptimizerFile(data)
}

func ParseOptimizerFile(data []byte) (OptimizerPlan, error) {
	file := optimizerFile{
		OptimizerSettings: services.DefaultOptimizerSettings(),
		TrainFraction:     0.7,
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return OptimizerPlan{}, fmt.Errorf("parsing optimizer file: %w", err)
	}

	for _, variant := range file.Grid.Variants {
		if _, err := models.ParseSignalVariant(string(variant)); err != nil {
			return OptimizerPlan{}, fmt.Errorf("grid: %w", err)
		}
	}
	if file.TrainFraction <= 0 || file.TrainFraction >= 1 {
		return OptimizerPlan{}, fmt.Errorf("trainFraction must be in (0,1), got %v", file.TrainFraction)
	}
	if err := file.OptimizerSettings.Validate(); err != nil {
		return OptimizerPlan{}, fmt.Errorf("optimizer settings: %w", err)
	}

	var err error
	plan := OptimizerPlan{
		Grid:          file.Grid,
		Settings:      file.OptimizerSettings,
		TrainFraction: file.TrainFraction,
		TopK:          file.WalkForward.TopK,
	}
	if plan.TopK > 0 {
		if plan.WalkForwardTrain, err = str2duration.ParseDuration(file.WalkForward.Train); err != nil {
			return OptimizerPlan{}, fmt.Errorf("walkForward.train: %w", err)
		}
		if plan.WalkForwardTest, err = str2duration.ParseDuration(file.WalkForward.Test); err != nil {
			return OptimizerPlan{}, fmt.Errorf("walkForward.test: %w", err)
		}
	}
	return plan, nil
}
