package domain

import "errors"

var (
	// ErrInvalidInput marks entity validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicatePerson is returned when a person name is already taken.
	ErrDuplicatePerson = errors.New("person already exists")
	// ErrDuplicateTemplate is returned when a template name is already taken.
	ErrDuplicateTemplate = errors.New("template already exists")
	// ErrUnknownTemplate is returned when a dependent references a missing template.
	ErrUnknownTemplate = errors.New("unknown dependent expense template")
	// ErrTemplateInUse blocks deleting a template that a dependent still references.
	ErrTemplateInUse = errors.New("template is referenced by a dependent")
	// ErrNotFound is returned by remove/lookup operations on missing entities.
	ErrNotFound = errors.New("not found")
	// ErrUnknownScenario is returned for scenario names with no preset.
	ErrUnknownScenario = errors.New("unknown scenario")
)
