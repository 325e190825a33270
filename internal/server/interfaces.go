package server

// Server is a transport listener owned by [NewServer]: the HTTP API and the
// optional gRPC health endpoint.
type Server interface {
	// RunServer blocks while the listener accepts connections. It returns
	// once Shutdown has been called or the listener failed.
	RunServer()

	// Shutdown stops accepting connections and waits for in-flight
	// requests, bounded by shutdownTimeout.
	Shutdown()
}
