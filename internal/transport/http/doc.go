// Package http contains the chi HTTP transport: the router, the analysis
// upload handler, and the health endpoint. Handlers translate between HTTP
// and the services layer and hold no business logic.
package http
