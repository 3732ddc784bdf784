// Package scenario loads and saves simulation scenarios for the yakf
// command line tool.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PREDICT-EPFL/yakf/ode"
)

const (
	DefaultStep    = 0.01
	DefaultSpan    = 10.0
	DefaultSamples = 100
)

// Scenario describes one integration run: which model, which method,
// the fixed step size, the time span, and the initial state.
type Scenario struct {
	Model   string             `yaml:"model"`
	Method  string             `yaml:"method"`
	Step    float64            `yaml:"step"`
	Span    float64            `yaml:"span"`
	State   []float64          `yaml:"state,omitempty"`
	Params  map[string]float64 `yaml:"params,omitempty"`
	Samples int                `yaml:"samples"`
}

func Default() *Scenario {
	return &Scenario{
		Model:   "pendulum",
		Method:  "rk4",
		Step:    DefaultStep,
		Span:    DefaultSpan,
		Samples: DefaultSamples,
	}
}

// Load reads a scenario file, applying defaults for omitted fields.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) Validate() error {
	if s.Model == "" {
		return fmt.Errorf("scenario: model is required")
	}
	if _, err := ode.ParseMethod(s.Method); err != nil {
		return err
	}
	if s.Step <= 0 {
		return fmt.Errorf("scenario: step must be positive, got %v", s.Step)
	}
	if s.Span < 0 {
		return fmt.Errorf("scenario: span must not be negative, got %v", s.Span)
	}
	if s.Samples < 1 {
		return fmt.Errorf("scenario: samples must be at least 1, got %d", s.Samples)
	}
	return nil
}
