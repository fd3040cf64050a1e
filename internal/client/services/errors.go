package services

import "errors"

// MinPasswordLength mirrors the backend's reset rule.
const MinPasswordLength = 8

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmptyTitle         = errors.New("task title is required")
	ErrInvalidPriority    = errors.New("priority must be low, medium, high or urgent")
	ErrProjectRequired    = errors.New("select a project first")
	ErrEmptyMessage       = errors.New("message is empty")
)
