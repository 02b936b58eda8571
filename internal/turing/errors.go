package turing

import (
	"errors"
	"fmt"
)

// Domain errors for pattern operations.
var (
	// ErrConfiguration indicates an invalid parameter, bound or geometry.
	ErrConfiguration = errors.New("turing: invalid configuration")

	// ErrUninitialized indicates a step or read before InitConcentrations.
	ErrUninitialized = errors.New("turing: concentrations not initialized")

	// ErrUnknownSpecies indicates a species name the model does not declare.
	ErrUnknownSpecies = errors.New("turing: unknown species")
)

// ConfigurationError describes a rejected parameter or construction option.
type ConfigurationError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("turing: invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("turing: parameter %q = %g: %s", e.Param, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// UninitializedStateError is returned when fields are used before they exist.
type UninitializedStateError struct {
	Op string
}

func (e *UninitializedStateError) Error() string {
	return fmt.Sprintf("turing: %s before init_concentrations", e.Op)
}

func (e *UninitializedStateError) Unwrap() error {
	return ErrUninitialized
}

// UnknownSpeciesError names the species and the model that rejected it.
type UnknownSpeciesError struct {
	Model   string
	Species string
}

func (e *UnknownSpeciesError) Error() string {
	return fmt.Sprintf("turing: model %s has no species %q", e.Model, e.Species)
}

func (e *UnknownSpeciesError) Unwrap() error {
	return ErrUnknownSpecies
}

func configErr(param string, value float64, format string, args ...any) error {
	return &ConfigurationError{Param: param, Value: value, Reason: fmt.Sprintf(format, args...)}
}
