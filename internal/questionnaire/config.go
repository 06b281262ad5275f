package questionnaire

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sherpa-labs/sherpa/internal/errors"
)

// Load reads a questionnaire from a YAML file and validates it.
func Load(path string) (*Questionnaire, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInvalidConfiguration(fmt.Sprintf("failed to read questionnaire file %s", path), err)
	}

	var q Questionnaire
	if err := yaml.Unmarshal(b, &q); err != nil {
		return nil, errors.NewInvalidConfiguration(fmt.Sprintf("failed to parse questionnaire file %s", path), err)
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// LoadOrDefault loads the questionnaire at path, or the built-in default
// when path is empty. The default is validated too: a broken embedded
// framework should fail at startup, not at scoring time.
func LoadOrDefault(path string) (*Questionnaire, error) {
	if path == "" {
		q := Default()
		if err := q.Validate(); err != nil {
			return nil, err
		}
		return q, nil
	}
	return Load(path)
}

// Save writes a questionnaire to a YAML file. Used to seed a config file
// a reviewer can then edit.
func Save(path string, q *Questionnaire) error {
	if q == nil {
		return errors.NewInvalidConfiguration("questionnaire required", nil)
	}
	if err := q.Validate(); err != nil {
		return err
	}
	b, err := yaml.Marshal(q)
	if err != nil {
		return errors.NewInvalidConfiguration("failed to marshal questionnaire", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return errors.NewInvalidConfiguration(fmt.Sprintf("failed to write questionnaire file %s", path), err)
	}
	return nil
}
