// Package server exposes an i18n catalog over HTTP for previewing
// templates.
//
//	POST /v1/resolve   resolve a template with arguments, returning text,
//	                   sanitized HTML, markdown or markdown rendered
//	                   to HTML, plus diagnostics
//	GET  /v1/languages configured languages
//	GET  /health/live  liveness probe
//	GET  /health/ready readiness probe with registered checks
package server
