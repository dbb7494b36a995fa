package util

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

const dateLayout = "2006-01-02"

// ExpandWorkdays expands a recurrence rule (e.g. FREQ=WEEKLY;BYDAY=MO,TU,
// WE,TH,FR) over an inclusive date range and returns the matching dates as
// YYYY-MM-DD strings.
func ExpandWorkdays(rule string, start, end time.Time) ([]string, error) {
	rOption, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule: %w", err)
	}
	rOption.Dtstart = start

	rr, err := rrule.NewRRule(*rOption)
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	ruleSet := rrule.Set{}
	ruleSet.RRule(rr)

	instances := ruleSet.Between(start, end, true)

	workdays := make([]string, 0, len(instances))
	for _, instance := range instances {
		workdays = append(workdays, instance.Format(dateLayout))
	}
	return workdays, nil
}
