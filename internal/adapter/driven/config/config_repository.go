package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/finops-rateio/internal/domain/repository"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Chaves desconhecidas são rejeitadas para que um erro de digitação não passe em silêncio.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.NewDecoder(bytes.NewReader(fileData)).Strict(true).Decode(&config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(fileData))
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(fileData))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: config %s", types.ErrUnsupportedFormat, fileExtension)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return &config, nil
}

func validateConfig(cfg *types.Config) error {
	switch cfg.Source {
	case "", types.SourceFiles, types.SourceAWS:
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownSource, cfg.Source)
	}
	if cfg.FixedFactor != nil && (*cfg.FixedFactor <= 0 || *cfg.FixedFactor > 1) {
		return fmt.Errorf("fixed_factor %v: %w", *cfg.FixedFactor, types.ErrInvalidFactor)
	}
	for name, f := range cfg.Factors {
		if f <= 0 || f > 1 {
			return fmt.Errorf("factors[%s] %v: %w", name, f, types.ErrInvalidFactor)
		}
	}
	return nil
}
