// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the YAML business-model files.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/flexibudget/budget-forecast/internal/model"
	"github.com/flexibudget/budget-forecast/pkg/constants"
	"github.com/flexibudget/budget-forecast/pkg/growth"
	"github.com/flexibudget/budget-forecast/pkg/validation"
)

// Configuration holds everything budget-forecast reads from a model file:
// the business model, the projection settings, and runtime options.
type Configuration struct {
	BusinessName string              `yaml:"businessName,omitempty"`
	BusinessType string              `yaml:"businessType,omitempty"`
	Model        model.BusinessModel `yaml:"model"`
	Projection   model.ProjectionSettings
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, html
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML configuration from an in-memory
// source, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	configuration.normalizeGrowthRateKeys()
	configuration.Model.Sanitize()
	return &configuration, nil
}

// normalizeGrowthRateKeys rekeys growth rules against the ids present in the
// model. Viper lowercases map keys during Unmarshal, so a rule keyed by a
// mixed-case product or cost-line id would otherwise never match its entity.
func (c *Configuration) normalizeGrowthRateKeys() {
	ids := make(map[string]string)
	for _, p := range c.Model.Products {
		ids[strings.ToLower(p.ID)] = p.ID
	}
	for _, line := range c.Model.FixedCosts {
		ids[strings.ToLower(line.ID)] = line.ID
	}
	for _, line := range c.Model.VariableCosts {
		ids[strings.ToLower(line.ID)] = line.ID
	}

	rates := &c.Projection.GrowthRates
	rates.UnitsSold = rekeyRules(rates.UnitsSold, ids)
	rates.SellingPrice = rekeyRules(rates.SellingPrice, ids)
	rates.FixedCosts = rekeyRules(rates.FixedCosts, ids)
	rates.VariableCosts = rekeyRules(rates.VariableCosts, ids)
}

func rekeyRules(rules map[string]*growth.Rule, ids map[string]string) map[string]*growth.Rule {
	if len(rules) == 0 {
		return rules
	}
	out := make(map[string]*growth.Rule, len(rules))
	for key, rule := range rules {
		if actual, ok := ids[strings.ToLower(key)]; ok {
			out[actual] = rule
			continue
		}
		out[key] = rule
	}
	return out
}

// applyDefaults fills the projection settings the file left out.
func (c *Configuration) applyDefaults() {
	if c.Projection.Months <= 0 {
		c.Projection.Months = constants.DefaultProjectionMonths
	}
	if c.Projection.AmortizationType == "" {
		c.Projection.AmortizationType = model.AmortizeOverProjection
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never block a calculation.
func (c *Configuration) ValidateConfiguration() []string {
	return validation.ModelWarnings(c.Model, c.Projection)
}
