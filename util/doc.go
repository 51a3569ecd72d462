// Package util provides generic utility functions for runkit consumers.
//
// It includes pure string transformations (case conversion, truncation,
// indentation) and generic slice/map helpers.
package util
