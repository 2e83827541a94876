package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrInvalidTimeSlot     = errors.New("time is not on the half-hour grid")
	ErrNotifierUnavailable = errors.New("notifier unavailable")
)

// ValidationErrors maps a form field to its messages.
type ValidationErrors map[string][]string

func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
