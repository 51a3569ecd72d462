// Package validation provides struct validation on top of
// go-playground/validator, mapping violations to structured AppErrors.
package validation
