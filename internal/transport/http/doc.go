// Package http contains the chi HTTP handlers for the survey dashboard API.
//
// Handlers are thin: they parse and validate request input, delegate to the
// services layer, and render JSON via go-chi/render. All errors go through
// the shared ErrorHandler and come back as RFC 7807 problem documents.
//
// Each handler exposes a Routes() method returning a chi.Router so the
// application can mount it under its API prefix.
package http
