// Package validation validates request input for the session endpoints.
//
// Validation is driven by struct tags (go-playground/validator). Failures
// are returned as VALIDATION_ERROR AppErrors listing every offending field:
//
//	type loginInput struct {
//	    Email    string `json:"email" validate:"required,email"`
//	    Password string `json:"password" validate:"required"`
//	}
//	err := validation.Validate(in)
package validation
