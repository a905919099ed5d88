// Package exporter writes survey reports to disk.
//
// CSVWriter handles the low-level CSV mechanics (directory creation, UTF-8
// BOM for Excel, streaming large record sets). ReportWriter sits on top and
// renders the aggregate views (breakdown, tallies, savings summary) into a
// report directory for the offline summarize command.
package exporter
