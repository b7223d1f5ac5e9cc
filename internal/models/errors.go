package models

import "errors"

// Errors shared by the services working over the clinic tables.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrPatientNotFound      = errors.New("patient not found")
)
