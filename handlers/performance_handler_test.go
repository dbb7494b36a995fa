package handlers

import (
	"reflect"
	"testing"

	"hrms/models"
)

func TestOverallRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{"whole mean", []float64{4, 5, 3}, 4.0},
		{"rounded up", []float64{4, 4, 5}, 4.3},
		{"rounded down", []float64{3, 3, 4}, 3.3},
		{"single criterion", []float64{5}, 5.0},
		{"no criteria", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := make([]models.PerformanceCriterion, 0, len(tt.ratings))
			for _, rating := range tt.ratings {
				criteria = append(criteria, models.PerformanceCriterion{Name: "criterion", Rating: rating})
			}
			if got := overallRating(criteria); got != tt.want {
				t.Errorf("overallRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestBuildAnalytics(t *testing.T) {
	// FindByEmployee returns newest review period first.
	evaluations := []models.Performance{
		{
			ReviewEndDate:      "2024-06-30",
			OverallRating:      4.5,
			Strengths:          []string{"Communication", "Ownership"},
			AreasOfImprovement: []string{"Delegation"},
		},
		{
			ReviewEndDate:      "2023-12-31",
			OverallRating:      4.0,
			Strengths:          []string{"Communication"},
			AreasOfImprovement: []string{"Delegation", "Planning"},
		},
		{
			ReviewEndDate:      "2023-06-30",
			OverallRating:      3.5,
			Strengths:          []string{"Curiosity"},
			AreasOfImprovement: []string{},
		},
	}

	analytics := buildAnalytics(evaluations)

	if analytics.TotalEvaluations != 3 {
		t.Errorf("TotalEvaluations = %d, want 3", analytics.TotalEvaluations)
	}
	if analytics.AverageRating != 4.0 {
		t.Errorf("AverageRating = %v, want 4.0", analytics.AverageRating)
	}
	if analytics.LatestRating != 4.5 {
		t.Errorf("LatestRating = %v, want 4.5", analytics.LatestRating)
	}

	wantTrend := []models.RatingPoint{
		{Date: "2023-06-30", Rating: 3.5},
		{Date: "2023-12-31", Rating: 4.0},
		{Date: "2024-06-30", Rating: 4.5},
	}
	if !reflect.DeepEqual(analytics.RatingTrend, wantTrend) {
		t.Errorf("RatingTrend = %v, want %v (time-ordered)", analytics.RatingTrend, wantTrend)
	}

	wantStrengths := []string{"Communication", "Ownership", "Curiosity"}
	if !reflect.DeepEqual(analytics.Strengths, wantStrengths) {
		t.Errorf("Strengths = %v, want de-duplicated %v", analytics.Strengths, wantStrengths)
	}

	wantImprovements := []string{"Delegation", "Planning"}
	if !reflect.DeepEqual(analytics.AreasOfImprovement, wantImprovements) {
		t.Errorf("AreasOfImprovement = %v, want de-duplicated %v", analytics.AreasOfImprovement, wantImprovements)
	}
}

func TestBuildAnalyticsEmpty(t *testing.T) {
	analytics := buildAnalytics(nil)

	if analytics.TotalEvaluations != 0 || analytics.AverageRating != 0 || analytics.LatestRating != 0 {
		t.Errorf("empty analytics = %+v, want zeroed totals", analytics)
	}
	if analytics.RatingTrend == nil || analytics.Strengths == nil || analytics.AreasOfImprovement == nil {
		t.Error("empty analytics slices should be non-nil for JSON encoding")
	}
}
