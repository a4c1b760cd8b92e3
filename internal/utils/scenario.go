package utils

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of driver commands
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// LoadScenario reads a YAML scenario file
func LoadScenario(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario document
func ParseScenario(data []byte) (*Scenario, error) {
	scenario := &Scenario{}
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	for i, step := range scenario.Steps {
		if step.Command == "" {
			return nil, fmt.Errorf("step %d: missing command", i+1)
		}
	}
	return scenario, nil
}

// SaveScenario writes scenario as YAML so LoadScenario can replay it
func SaveScenario(filename string, scenario *Scenario) error {
	if scenario == nil || len(scenario.Steps) == 0 {
		return errors.New("scenario has no steps")
	}
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
