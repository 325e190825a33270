// Package server wires and runs the CRM transport servers.
//
// It owns the lifecycle of the HTTP API and the optional gRPC health
// endpoint: startup, signal handling, and graceful shutdown of every enabled
// transport.
package server
