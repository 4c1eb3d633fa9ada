package graphql

import (
	"github.com/tournevent/commerce-ups/internal/telemetry"
	"github.com/tournevent/commerce-ups/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// DefaultCarrier is used when a lookup names no shipping method.
const DefaultCarrier = "ups"

// Resolver is the root resolver for the GraphQL schema.
// It holds dependencies needed by all resolvers.
type Resolver struct {
	Registry *shipper.Registry
	Logger   *otelzap.Logger
	Metrics  *telemetry.Metrics
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(registry *shipper.Registry, logger *otelzap.Logger, metrics *telemetry.Metrics) *Resolver {
	return &Resolver{
		Registry: registry,
		Logger:   logger,
		Metrics:  metrics,
	}
}

// Query returns the query resolver.
func (r *Resolver) Query() *QueryResolver {
	return &QueryResolver{r}
}

// QueryResolver resolves the fields of the Query type.
type QueryResolver struct{ *Resolver }
