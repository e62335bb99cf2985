package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/starwars-blog/pkg/logger"
)

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker keeps the gRPC health status in line with the database
type HealthChecker struct {
	health  *health.Server
	pinger  Pinger
	service string
}

// NewHealthChecker creates a checker reporting for the overall server ("")
// and for service.
func NewHealthChecker(pinger Pinger, service string) *HealthChecker {
	return &HealthChecker{
		health:  health.NewServer(),
		pinger:  pinger,
		service: service,
	}
}

// CheckNow pings the database once and publishes the result
func (c *HealthChecker) CheckNow(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := c.pinger.PingContext(ctx); err != nil {
		logger.Warn(ctx).Err(err).Msg("Database health check failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	c.health.SetServingStatus("", status)
	c.health.SetServingStatus(c.service, status)
	return status == healthpb.HealthCheckResponse_SERVING
}

// Watch re-checks the database every period until ctx is done
func (c *HealthChecker) Watch(ctx context.Context, period time.Duration) {
	c.CheckNow(ctx)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckNow(ctx)
		}
	}
}

// Shutdown reports NOT_SERVING to every watcher
func (c *HealthChecker) Shutdown() {
	c.health.Shutdown()
}

// NewServer creates the gRPC server exposing the health service
func NewServer(checker *HealthChecker) *grpc.Server {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
		),
	)

	healthpb.RegisterHealthServer(server, checker.health)

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(server)

	return server
}
