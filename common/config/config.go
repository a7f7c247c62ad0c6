package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/sunthewhat/olymp-cert-api/common"
	"github.com/sunthewhat/olymp-cert-api/common/util"
	"github.com/sunthewhat/olymp-cert-api/type/shared"
	"gopkg.in/yaml.v3"
)

const envPrefix = "OLYMP"

func LoadConfig() {
	config, err := Parse("config.yml")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	common.Config = config
}

// Parse reads the yaml file at path, applies OLYMP_* environment overrides
// and validates the result.
func Parse(path string) (*shared.Config, error) {
	config := new(shared.Config)

	yml, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("read %s: %w", path, readErr)
	}

	if unmarshalErr := yaml.Unmarshal(yml, config); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, unmarshalErr)
	}

	if envErr := envconfig.Process(envPrefix, config); envErr != nil {
		return nil, fmt.Errorf("environment overrides: %w", envErr)
	}

	if validateErr := util.ValidateStruct(config); validateErr != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, validateErr)
	}

	return config, nil
}
