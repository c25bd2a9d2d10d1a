package bursar

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TermRule assigns a billing term code to a set of calendar months.
// YearOffset is added to the date's calendar year; charges late in the fall
// bill against the next year's FA term.
type TermRule struct {
	Months     []time.Month `yaml:"months"`
	Code       string       `yaml:"code"`
	YearOffset int          `yaml:"yearOffset"`
}

// TermPolicy maps calendar dates to billing term codes. The month
// boundaries are deliberately data rather than code: the academic calendar
// rules have shifted before (August has been both SU and early FA), and a
// policy change should not need a deploy.
type TermPolicy []TermRule

// DefaultTermPolicy is the current bursar billing calendar.
func DefaultTermPolicy() TermPolicy {
	return TermPolicy{
		{Months: []time.Month{time.January, time.February}, Code: "FA"},
		{Months: []time.Month{time.March, time.April, time.May, time.June}, Code: "SP"},
		{Months: []time.Month{time.July, time.August}, Code: "SU"},
		{Months: []time.Month{time.September, time.October, time.November, time.December}, Code: "FA", YearOffset: 1},
	}
}

// Validate checks that the policy assigns every calendar month exactly once.
func (p TermPolicy) Validate() error {
	seen := make(map[time.Month]bool)
	for _, rule := range p {
		if rule.Code == "" {
			return fmt.Errorf("term policy rule has no term code")
		}
		for _, m := range rule.Months {
			if m < time.January || m > time.December {
				return fmt.Errorf("term policy references invalid month %d", m)
			}
			if seen[m] {
				return fmt.Errorf("term policy assigns %s more than once", m)
			}
			seen[m] = true
		}
	}
	if len(seen) != 12 {
		return fmt.Errorf("term policy covers %d of 12 months", len(seen))
	}
	return nil
}

// TermFor returns the billing term for a date, formatted {year}{code},
// e.g. "2023SP". The policy must be valid; TermFor is a pure function with
// no error path of its own.
func (p TermPolicy) TermFor(date time.Time) string {
	for _, rule := range p {
		for _, m := range rule.Months {
			if date.Month() == m {
				return fmt.Sprintf("%d%s", date.Year()+rule.YearOffset, rule.Code)
			}
		}
	}
	// Unreachable for a validated policy.
	return fmt.Sprintf("%d", date.Year())
}

// LoadTermPolicy reads a TermPolicy from a YAML file and validates it.
func LoadTermPolicy(path string) (TermPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read term policy file: %w", err)
	}
	var policy TermPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse term policy file: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid term policy in %s: %w", path, err)
	}
	return policy, nil
}
