package config

import (
	"fmt"
	"os"

	"drivefund/models"

	"github.com/creasty/defaults"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadStatusVocabulary builds the status synonym sets used by the analytics
// queries. Built-in defaults apply first; a YAML file, when given, replaces
// any set it names.
func LoadStatusVocabulary(path string) (*models.StatusVocabulary, error) {
	vocabulary := &models.StatusVocabulary{}
	if err := defaults.Set(vocabulary); err != nil {
		return nil, fmt.Errorf("failed to apply vocabulary defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read status vocabulary %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, vocabulary); err != nil {
			return nil, fmt.Errorf("failed to parse status vocabulary %s: %w", path, err)
		}
		log.WithField("path", path).Info("Loaded status vocabulary overrides")
	}

	vocabulary.Normalize()
	if err := vocabulary.Validate(); err != nil {
		return nil, err
	}

	return vocabulary, nil
}
