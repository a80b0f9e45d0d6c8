// Package app wires configuration, logging, services and the HTTP server
// into a runnable application with graceful shutdown.
package app
