// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the deal analysis file.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/flip-forecast/pkg/adapters"
	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/risk"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
	"github.com/iwvelando/flip-forecast/pkg/validation"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, e.g. FLIP_OUTPUT_FORMAT=csv.
const EnvPrefix = "FLIP"

// Configuration holds all configuration for flip-forecast.
type Configuration struct {
	Logging     LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output      OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Assumptions Assumptions   `yaml:"assumptions,omitempty" mapstructure:"assumptions"`
	Deals       []DealConfig  `yaml:"deals" mapstructure:"deals"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, yaml
}

// DealConfig is one property under analysis. The deal terms sit at the top
// level of the entry next to its name. Deal and Property are read through
// pkg/adapters so alias keys and loosely typed values resolve the same way
// they do for API requests.
type DealConfig struct {
	Name string `yaml:"name" mapstructure:"name"`

	deal.Deal `yaml:",inline" mapstructure:"-"`

	Property      deal.PropertyIntelligence `yaml:"property,omitempty" mapstructure:"-"`
	TimelineRisks []risk.TimelineRisk       `yaml:"timelineRisks,omitempty" mapstructure:"timelineRisks"`
	PermitDelay   *risk.TimelineRisk        `yaml:"permitDelay,omitempty" mapstructure:"permitDelay"`
	Scenarios     []scenario.Adjustment     `yaml:"scenarios,omitempty" mapstructure:"scenarios"`
	MaxOffer      *OptimizerConfig          `yaml:"maxOffer,omitempty" mapstructure:"maxOffer"`

	// ARVShiftPercent is the expected market move applied by the risk
	// assessment, negative for a decline.
	ARVShiftPercent float64 `yaml:"arvShiftPercent,omitempty" mapstructure:"arvShiftPercent"`
}

// DisplayName returns the configured name, falling back to the address and
// then to the deal's position.
func (d DealConfig) DisplayName(index int) string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	if address := strings.TrimSpace(d.Address); address != "" {
		return address
	}
	return fmt.Sprintf("Deal %d", index+1)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	configuration := Configuration{Assumptions: DefaultAssumptions()}
	// A configured weight table replaces the defaults rather than merging.
	configuration.Assumptions.Weights = nil

	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if err := decodeDeals(v, configuration.Deals); err != nil {
		return nil, err
	}

	configuration.Assumptions.Normalize()
	return &configuration, nil
}

// decodeDeals fills the deal terms and property details of each entry from
// the raw records.
func decodeDeals(v *viper.Viper, deals []DealConfig) error {
	records, err := cast.ToSliceE(v.Get("deals"))
	if err != nil {
		return fmt.Errorf("unable to decode deals, %s", err)
	}
	if len(records) != len(deals) {
		return fmt.Errorf("unable to decode deals, expected %d entries but found %d", len(deals), len(records))
	}

	for i, raw := range records {
		record, err := cast.ToStringMapE(raw)
		if err != nil {
			return fmt.Errorf("unable to decode deal %d, %s", i+1, err)
		}
		deals[i].Deal = adapters.DealFromMap(record)
		for key, value := range record {
			if strings.EqualFold(key, "property") {
				deals[i].Property = adapters.PropertyIntelligenceFromMap(cast.ToStringMap(value))
			}
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never stop an analysis.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if len(c.Deals) == 0 {
		warnings = append(warnings, "Configuration contains no deals")
	}

	validator := validation.DealValidator{Weights: c.Assumptions.Weights}
	seen := make(map[string]int, len(c.Deals))
	for i, dc := range c.Deals {
		name := dc.DisplayName(i)
		if first, ok := seen[name]; ok {
			warnings = append(warnings, fmt.Sprintf("Deal '%s' is defined more than once (entries %d and %d)", name, first+1, i+1))
		} else {
			seen[name] = i
		}
		validator.Deals = append(validator.Deals, validation.NamedDeal{Name: name, Deal: dc.Deal})

		if dc.MaxOffer != nil {
			if err := dc.MaxOffer.Validate(); err != nil {
				warnings = append(warnings, fmt.Sprintf("Deal '%s' max offer search will be skipped: %s", name, err))
			}
		}
	}
	warnings = append(warnings, validator.ValidateAll()...)

	for _, name := range validation.SortedKeys(c.Assumptions.Weights) {
		if _, ok := scenario.Preset(name); !ok {
			warnings = append(warnings, fmt.Sprintf("Scenario weight '%s' does not name a preset and will be ignored", name))
		}
	}

	return warnings
}
