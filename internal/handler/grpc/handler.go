// Package grpc exposes the gRPC side of the CRM server: the standard
// grpc.health.v1.Health service used by load balancers and orchestrators.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
)

// ServiceName is the health-checked service name besides the overall ""
// entry.
const ServiceName = "crm.LeadKeeper"

// Handler is the root gRPC transport handler.
//
// A handler instance is created once at startup, registered on the gRPC
// server and reports SERVING until [Handler.Shutdown] is called.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] whose health service reports SERVING.
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Handler{
		health: healthServer,
		logger: logger,
	}
}

// Register attaches the handler's services to registrar.
func (h *Handler) Register(registrar grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(registrar, h.health)
}

// Shutdown flips every service to NOT_SERVING so clients drain before the
// server stops.
func (h *Handler) Shutdown() {
	h.logger.Info().Msg("gRPC health set to NOT_SERVING")
	h.health.Shutdown()
}
