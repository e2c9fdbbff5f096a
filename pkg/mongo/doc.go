// Package mongo connects to MongoDB for the document-backed account store.
//
// Connect retries until the server answers a ping and Healthcheck wraps the
// same ping as a readiness probe.
package mongo
