// Package validation provides input validation for fnkit commands.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as an
// INVALID_INPUT *errors.AppError whose "fields" detail lists every problem.
//
// # Struct Tag Validation
//
//	type StatsConfig struct {
//	    Predicate string  `mapstructure:"predicate" validate:"oneof=all even odd"`
//	    Scale     float64 `mapstructure:"scale" validate:"ne=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(min <= max, "min", "must not exceed max")
//	if err := v.Validate(); err != nil { ... }
package validation
