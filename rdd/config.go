package rdd

import (
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"sync"

	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/validation"
)

// Master values accepted by Config.Master.
const (
	MasterLocal    = "local"
	MasterLocalAll = "local[*]"
)

var masterPattern = regexp.MustCompile(`^local(\[(\d+|\*)\])?$`)

var registerMasterRule = sync.OnceValue(func() error {
	return validation.RegisterStringRule("master", masterPattern.MatchString)
})

// Config describes an execution context.
type Config struct {
	AppName string `yaml:"app_name" mapstructure:"app_name" validate:"required"`
	// Master is local, local[N] or local[*].
	Master string `yaml:"master" mapstructure:"master" validate:"required,master"`
	// DefaultParallelism overrides the parallelism derived from Master.
	DefaultParallelism int `yaml:"default_parallelism" mapstructure:"default_parallelism" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.AppName == "" {
		c.AppName = "rddkit"
	}
	if c.Master == "" {
		c.Master = MasterLocal
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := registerMasterRule(); err != nil {
		return errors.Internal(err)
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if _, err := masterParallelism(c.Master); err != nil {
		return err
	}
	return nil
}

// parallelism resolves the default partition count for the config.
func (c *Config) parallelism() int {
	if c.DefaultParallelism > 0 {
		return c.DefaultParallelism
	}
	n, err := masterParallelism(c.Master)
	if err != nil {
		return 1
	}
	return n
}

// masterParallelism returns the thread count a master URL asks for:
// 1 for local, N for local[N], the CPU count for local[*].
func masterParallelism(master string) (int, error) {
	m := masterPattern.FindStringSubmatch(master)
	if m == nil {
		return 0, errors.InvalidArgument("master", fmt.Sprintf("unsupported master %q", master))
	}
	switch m[2] {
	case "":
		return 1, nil
	case "*":
		return runtime.NumCPU(), nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return 0, errors.InvalidArgument("master", fmt.Sprintf("thread count in %q must be at least 1", master))
	}
	return n, nil
}
