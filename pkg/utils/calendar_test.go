package util

import (
	"reflect"
	"testing"
	"time"
)

func TestExpandWorkdaysWeekdays(t *testing.T) {
	// 2024-03-11 is a Monday.
	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	workdays, err := ExpandWorkdays("FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR", start, end)
	if err != nil {
		t.Fatalf("ExpandWorkdays: %v", err)
	}

	want := []string{"2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14", "2024-03-15"}
	if !reflect.DeepEqual(workdays, want) {
		t.Errorf("workdays = %v, want %v (weekend excluded)", workdays, want)
	}
}

func TestExpandWorkdaysInclusiveBounds(t *testing.T) {
	// A single Friday as both start and end.
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	workdays, err := ExpandWorkdays("FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR", day, day)
	if err != nil {
		t.Fatalf("ExpandWorkdays: %v", err)
	}
	if len(workdays) != 1 || workdays[0] != "2024-03-15" {
		t.Errorf("workdays = %v, want the single inclusive day", workdays)
	}
}

func TestExpandWorkdaysInvalidRule(t *testing.T) {
	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if _, err := ExpandWorkdays("FREQ=NONSENSE", start, start.AddDate(0, 0, 7)); err == nil {
		t.Error("ExpandWorkdays accepted an invalid rule")
	}
}
