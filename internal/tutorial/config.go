package tutorial

import (
	"fmt"
	"slices"

	"github.com/kbukum/rddkit/config"
	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/observability"
	"github.com/kbukum/rddkit/rdd"
	"github.com/kbukum/rddkit/validation"
)

// Scenario names.
const (
	ScenarioBasics       = "basics"
	ScenarioTemperatures = "temperatures"
	ScenarioStudents     = "students"
)

// Scenarios lists every scenario in the order they run.
var Scenarios = []string{ScenarioBasics, ScenarioTemperatures, ScenarioStudents}

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Dataset holds the input data and the thresholds the scenarios use.
type Dataset struct {
	Numbers      []int     `yaml:"numbers" mapstructure:"numbers"`
	Temperatures []float64 `yaml:"temperatures" mapstructure:"temperatures"`
	Marks        []Marks   `yaml:"marks" mapstructure:"marks" validate:"dive"`

	// NumbersPartitions is the explicit partition count shown next to the
	// default one.
	NumbersPartitions     int `yaml:"numbers_partitions" mapstructure:"numbers_partitions" validate:"gte=1"`
	TemperaturePartitions int `yaml:"temperature_partitions" mapstructure:"temperature_partitions" validate:"gte=1"`
	MarksPartitions       int `yaml:"marks_partitions" mapstructure:"marks_partitions" validate:"gte=1"`

	// Thresholds are pointers so that an explicit zero is kept.
	MinCelsius      *float64 `yaml:"min_celsius" mapstructure:"min_celsius" validate:"required"`
	Year            string   `yaml:"year" mapstructure:"year" validate:"required"`
	TopN            *int     `yaml:"top_n" mapstructure:"top_n" validate:"required,gte=0"`
	HonorsThreshold *float64 `yaml:"honors_threshold" mapstructure:"honors_threshold" validate:"required,gte=0,lte=100"`
}

// ApplyDefaults fills every unset field with the walkthrough's values.
func (d *Dataset) ApplyDefaults() {
	if d.Numbers == nil {
		d.Numbers = DefaultNumbers()
	}
	if d.Temperatures == nil {
		d.Temperatures = DefaultTemperatures()
	}
	if d.Marks == nil {
		d.Marks = DefaultMarks()
	}
	if d.NumbersPartitions == 0 {
		d.NumbersPartitions = 10
	}
	if d.TemperaturePartitions == 0 {
		d.TemperaturePartitions = 2
	}
	if d.MarksPartitions == 0 {
		d.MarksPartitions = 4
	}
	if d.MinCelsius == nil {
		d.MinCelsius = ptr(13.0)
	}
	if d.Year == "" {
		d.Year = "year2"
	}
	if d.TopN == nil {
		d.TopN = ptr(3)
	}
	if d.HonorsThreshold == nil {
		d.HonorsThreshold = ptr(80.0)
	}
}

func ptr[T any](v T) *T { return &v }

// Config is the configuration of the rddtutorial program.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Engine        rdd.Config           `yaml:"engine" mapstructure:"engine"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Dataset       Dataset              `yaml:"dataset" mapstructure:"dataset"`

	Scenarios []string `yaml:"scenarios" mapstructure:"scenarios"`
	Format    string   `yaml:"format" mapstructure:"format"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "rddtutorial"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Engine.AppName == "" {
		c.Engine.AppName = c.Name
	}
	c.Engine.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Dataset.ApplyDefaults()
	if len(c.Scenarios) == 0 {
		c.Scenarios = slices.Clone(Scenarios)
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	if err := validation.Validate(&c.Dataset); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	v := validation.New().OneOf("format", c.Format, []string{FormatText, FormatJSON})
	for _, s := range c.Scenarios {
		v.OneOf("scenarios", s, Scenarios)
	}
	marks := c.Dataset.Marks
	v.Custom(len(marks) == 0 || slices.ContainsFunc(marks, func(m Marks) bool { return m.Year == c.Dataset.Year }),
		"dataset.year", fmt.Sprintf("no marks recorded for %q", c.Dataset.Year))
	if err := v.Validate(); err != nil {
		return errors.InvalidConfig("tutorial", err)
	}
	return nil
}
