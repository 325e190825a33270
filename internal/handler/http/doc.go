// Package http implements the HTTP transport layer of the CRM API.
//
// It exposes route wiring, request handlers, and middleware. Bearer-token
// authentication, request tracing, access logging and response compression
// are handled in this package before requests are delegated to the service
// layer. Every error is answered as {"detail": ...} with the status chosen
// by [statusFromError].
package http
