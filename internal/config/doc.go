// Package config provides application configuration for AIPulse.
//
// Configuration is layered: defaults come from struct tags, an optional
// config.yaml overrides them, and AIPULSE_* environment variables take
// final precedence. The survey section points at the responses export and
// controls aggregation defaults such as the tally top-K.
package config
