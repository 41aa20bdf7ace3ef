// Package docker manages disposable PostgreSQL containers used by the
// integration tests to exercise the client and apply pipeline against a real
// server.
package docker
