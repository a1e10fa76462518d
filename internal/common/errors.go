// Package common defines shared constants and sentinel errors used across
// client and server layers of ReportDrop. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// File validation errors.
	ErrNoFile         = errors.New("no file selected")
	ErrWrongExtension = errors.New("wrong file type")
	ErrTooLarge       = errors.New("file too large")

	// Auth errors.
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Orchestration errors.
	ErrUnauthenticated = errors.New("you must log in to upload files")
	ErrEmptySelection  = errors.New("select one or more files first")

	// Configuration errors.
	ErrStorageNotConfigured = errors.New("storage not configured")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
