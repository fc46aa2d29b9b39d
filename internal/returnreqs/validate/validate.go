// Package validate runs the ordered field rules behind each setup page.
//
// Rules are evaluated in declaration order and stop at the first failure, so
// the message the operator sees when several rules fail at once is always the
// first declared one. That ordering is a contract the pages rely on, not an
// accident.
package validate

// Rule is one check against a page's submitted fields.
type Rule struct {
	Field   string
	Message string
	Ok      func() bool
}

// Failure identifies the field and message of the first failed rule.
type Failure struct {
	Field   string
	Message string
}

// Run evaluates rules in order and returns the first failure, or nil when all
// rules pass.
func Run(rules []Rule) *Failure {
	for _, r := range rules {
		if !r.Ok() {
			return &Failure{Field: r.Field, Message: r.Message}
		}
	}
	return nil
}

// NotEmpty reports whether s has a value.
func NotEmpty(s string) bool { return s != "" }

// OneOf reports whether s is one of the allowed options.
func OneOf(s string, options []string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}

// AllOf reports whether every value is one of the allowed options.
func AllOf(values []string, options []string) bool {
	for _, v := range values {
		if !OneOf(v, options) {
			return false
		}
	}
	return true
}

// DayMonth reports whether day/month form a real date in any year.
func DayMonth(day, month int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	daysInMonth := [...]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	return day <= daysInMonth[month-1]
}
