// Package service implements the application logic between the HTTP layer
// and the store: authentication, groups, expenses, settlement plans and
// manual reports.
package service

import "errors"

// Sentinel errors the transport layer maps to HTTP statuses.
var (
	// ErrValidation marks bad input (400).
	ErrValidation = errors.New("invalid input")

	// ErrNotMember is returned when the caller does not belong to the
	// group they are acting on (403).
	ErrNotMember = errors.New("you must be a member of this group")

	// ErrNotPayer is returned when someone other than the payer tries to
	// modify or delete an expense (403).
	ErrNotPayer = errors.New("only the payer can modify this expense")
)
