// Package services contains the business-logic layer between the HTTP
// transport and the dataprocessing core.
//
// SurveyService owns the cached survey table and exposes every aggregate
// view (overview, breakdown, tallies, distributions, histogram, savings)
// as ctx-first methods. Segmentation by function is an explicit parameter
// on each call, never ambient state, so every method stays a pure function
// of (table, arguments).
//
// HealthService reports liveness, readiness (the survey file must be
// loadable), and version information.
package services
