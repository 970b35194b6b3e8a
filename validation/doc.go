// Package validation validates configuration sections and admin API input.
//
// Struct tag validation wraps go-playground/validator and reports failures
// as an *errors.AppError with per-field details. The custom "nocrlf" tag
// rejects values that would break an SSE field line.
//
//	type Config struct {
//	    Path string `mapstructure:"path" validate:"required,startswith=/"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic checks collect errors the same way:
//
//	v := validation.New()
//	v.Required("text", body.Text).MaxLength("text", body.Text, 64<<10)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
