// Package validation provides argument and configuration validation for rddkit.
//
// It supports both struct tag validation (using the go-playground validator)
// for configuration structs, and chainable programmatic checks for call
// arguments such as element counts and partition numbers. Both report
// failures as *errors.AppError with code INVALID_ARGUMENT.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    AppName string `validate:"required"`
//	    Master  string `validate:"required,master"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	if err := validation.New().Min("n", n, 0).Validate(); err != nil {
//	    return nil, err
//	}
package validation
