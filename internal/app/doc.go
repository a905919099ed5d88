// Package app wires the survey dashboard application together: it loads
// configuration, initializes logging and metrics, constructs the services,
// builds the chi router with the full middleware chain, and runs the HTTP
// server until interrupted.
package app
