package models

import (
	"strings"
	"time"
)

// Status is the derived lifecycle value of an airdrop.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// FilterStatus is a Status plus the pass-everything value used by listings.
type FilterStatus string

const (
	FilterAll       FilterStatus = "all"
	FilterUpcoming  FilterStatus = FilterStatus(StatusUpcoming)
	FilterActive    FilterStatus = FilterStatus(StatusActive)
	FilterCompleted FilterStatus = FilterStatus(StatusCompleted)
)

// ParseStatus maps free text to a Status. ok is false for anything that is not
// one of the three lifecycle values.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusUpcoming:
		return StatusUpcoming, true
	case StatusActive:
		return StatusActive, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// ParseFilterStatus maps free text to a FilterStatus, defaulting to FilterAll.
func ParseFilterStatus(s string) FilterStatus {
	if status, ok := ParseStatus(s); ok {
		return FilterStatus(status)
	}
	return FilterAll
}

// DeriveStatus computes the lifecycle status from the checklist and dates at
// the evaluation instant now. Pure; callers pass time.Now() at the moment of
// each mutation rather than a cached value.
//
// Ordering of the rules is significant: a fully completed checklist or an
// elapsed deadline always wins over an otherwise-active start date. An empty
// checklist never completes an airdrop on its own.
func DeriveStatus(tasks []Task, startDate, deadline *time.Time, now time.Time) Status {
	if len(tasks) > 0 {
		allDone := true
		for i := range tasks {
			if !tasks[i].Completed {
				allDone = false
				break
			}
		}
		if allDone {
			return StatusCompleted
		}
	}

	if deadline != nil && deadline.Before(now) {
		return StatusCompleted
	}

	if startDate != nil && !startDate.After(now) {
		return StatusActive
	}

	return StatusUpcoming
}
