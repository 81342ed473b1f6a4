// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/flip-forecast/internal/analysis"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
)

// FindReport finds a deal report by name in the reports slice.
// Returns a pointer to the report if found, nil otherwise.
func FindReport(reports []analysis.Report, name string) *analysis.Report {
	for i := range reports {
		if reports[i].Name == name {
			return &reports[i]
		}
	}
	return nil
}

// FindScenario finds a scenario result by name.
func FindScenario(results []scenario.Result, name string) *scenario.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
