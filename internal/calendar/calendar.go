// Package calendar decides when a portfolio order executes.
//
// Orders submitted on a market day (Monday to Friday) execute the same day.
// Orders submitted on a weekend are accepted and deferred to the following
// Monday. Exchange holidays are not modelled.
package calendar

import (
	"fmt"
	"time"
)

// DateFormat is the layout of execution dates (ISO 8601 calendar date).
const DateFormat = "2006-01-02"

// Order statuses assigned by the policy.
const (
	StatusAccepted = "accepted"
	StatusExecuted = "executed"
)

// Schedule is the outcome of evaluating the policy for one request.
type Schedule struct {
	Status        string
	ExecutionDate string
}

// Policy evaluates weekdays in a fixed market time zone.
type Policy struct {
	loc *time.Location
}

// NewPolicy returns a Policy reading weekdays in loc. A nil loc means UTC.
func NewPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{loc: loc}
}

// LoadPolicy resolves an IANA time zone name such as "America/New_York".
func LoadPolicy(tz string) (Policy, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Policy{}, fmt.Errorf("loading market time zone %q: %w", tz, err)
	}
	return NewPolicy(loc), nil
}

// IsMarketDay reports whether t falls on a weekday in the market time zone.
func (p Policy) IsMarketDay(t time.Time) bool {
	switch t.In(p.location()).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// Evaluate returns the status and execution date for a request received at now.
func (p Policy) Evaluate(now time.Time) Schedule {
	local := now.In(p.location())
	y, m, d := local.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if p.IsMarketDay(now) {
		return Schedule{Status: StatusExecuted, ExecutionDate: day.Format(DateFormat)}
	}

	// Weekend: defer to the following Monday.
	days := 1
	if local.Weekday() == time.Saturday {
		days = 2
	}
	return Schedule{Status: StatusAccepted, ExecutionDate: day.AddDate(0, 0, days).Format(DateFormat)}
}

func (p Policy) location() *time.Location {
	if p.loc == nil {
		return time.UTC
	}
	return p.loc
}
