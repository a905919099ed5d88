// Package dataprocessing provides the survey data pipeline for AIPulse.
// It consolidates loading, normalization, and aggregation into a cohesive
// package that handles the complete lifecycle from CSV/XLSX ingestion to
// analytical insights.
//
// # Architecture
//
// The package is organized into four main components:
//
// 1. Loader: Reads survey export files and normalizes them into a SurveyTable
// 2. TableCache: Read-through cache keyed on source file identity
// 3. Analytics: Overview metrics, per-function breakdowns, tallies, histograms
// 4. Savings: The time-savings projection model
//
// # Usage
//
// Basic loading example:
//
//	loader := dataprocessing.NewLoader(logger)
//	table, err := loader.Load(ctx, "data/AI_Discovery_Responses.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Aggregation:
//
//	overview := dataprocessing.Overview(table)
//	breakdown := dataprocessing.FunctionBreakdown(table)
//	challenges := dataprocessing.Tally(table, domain.FieldChallenges, 10)
//
// Savings projection:
//
//	model := dataprocessing.ComputeSavings(table)
//	projection := model.Projection(50)
//
// # Data Flow
//
//	Survey File → Loader → SurveyTable → Analytics/Savings → API responses
//
// # Error Handling
//
// Loading is lenient by design: malformed rows are skipped, unparseable
// time percentages become missing values, and only an unreadable file is
// surfaced as an error (with an empty table substituted downstream).
// Every aggregate tolerates the empty table; ratios over zero denominators
// report "not available" (a nil value) rather than NaN.
//
// All aggregation functions are pure and idempotent over an immutable
// table, so concurrent reads need no locking.
package dataprocessing
