package graphql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/commerce-ups/pkg/shipper"
	"go.uber.org/zap"
)

// Health is the resolver for the health field.
func (r *QueryResolver) Health(ctx context.Context) (string, error) {
	return "ok", nil
}

// Carriers is the resolver for the carriers field.
func (r *QueryResolver) Carriers(ctx context.Context) ([]*Carrier, error) {
	names := r.Registry.Names()
	carriers := make([]*Carrier, 0, len(names))
	for _, name := range names {
		s, err := r.Registry.Get(name)
		if err != nil {
			continue
		}
		carriers = append(carriers, &Carrier{
			Name:     name,
			Services: servicesToGraphQL(s.Services()),
		})
	}
	return carriers, nil
}

// Services is the resolver for the services field.
func (r *QueryResolver) Services(ctx context.Context, carrier string) ([]*ShippingService, error) {
	s, err := r.Registry.Get(carrier)
	if err != nil {
		return nil, err
	}
	return servicesToGraphQL(s.Services()), nil
}

// Rates is the resolver for the rates field.
func (r *QueryResolver) Rates(ctx context.Context, input LookupInput) (*RatesPayload, error) {
	start := time.Now()
	carrier := carrierOrDefault(input.Carrier)
	payload := &RatesPayload{
		Rates:    []*Rate{},
		Metadata: &Metadata{RequestID: uuid.New().String(), Carrier: carrier},
	}

	r.Logger.Ctx(ctx).Info("Rates lookup",
		zap.String("request_id", payload.Metadata.RequestID),
		zap.String("carrier", carrier),
	)

	s, shipment, gqlErr := r.prepare(carrier, input.Shipment)
	if gqlErr != nil {
		payload.Errors = []*Error{gqlErr}
	} else {
		rates, err := s.CalculateRates(ctx, shipment)
		if err != nil {
			payload.Errors = errorsToGraphQL([]error{err})
		}
		for _, rate := range rates {
			payload.Rates = append(payload.Rates, rateToGraphQL(rate))
		}
	}

	payload.Success = len(payload.Errors) == 0
	payload.Metadata.DurationMs = int(time.Since(start).Milliseconds())
	r.record("graphql_rates", carrier, payload.Success, start)
	return payload, nil
}

// TransitTime is the resolver for the transitTime field.
func (r *QueryResolver) TransitTime(ctx context.Context, input LookupInput) (*TransitPayload, error) {
	start := time.Now()
	carrier := carrierOrDefault(input.Carrier)
	payload := &TransitPayload{
		Estimates: []*TransitEstimate{},
		Metadata:  &Metadata{RequestID: uuid.New().String(), Carrier: carrier},
	}

	r.Logger.Ctx(ctx).Info("Transit time lookup",
		zap.String("request_id", payload.Metadata.RequestID),
		zap.String("carrier", carrier),
	)

	s, shipment, gqlErr := r.prepare(carrier, input.Shipment)
	if gqlErr != nil {
		payload.Errors = []*Error{gqlErr}
	} else {
		estimates, err := s.TransitTime(ctx, shipment)
		if err != nil {
			payload.Errors = errorsToGraphQL([]error{err})
		}
		for _, e := range estimates {
			payload.Estimates = append(payload.Estimates, transitEstimateToGraphQL(e))
		}
	}

	payload.Success = len(payload.Errors) == 0
	payload.Metadata.DurationMs = int(time.Since(start).Milliseconds())
	r.record("graphql_transit", carrier, payload.Success, start)
	return payload, nil
}

// prepare resolves the shipping method and converts the shipment input.
func (r *QueryResolver) prepare(carrier string, input *ShipmentInput) (shipper.Shipper, *shipper.Shipment, *Error) {
	s, err := r.Registry.Get(carrier)
	if err != nil {
		return nil, nil, &Error{Code: "CARRIER_NOT_FOUND", Message: err.Error()}
	}

	shipment, err := shipmentInputToModel(input)
	if err != nil {
		return nil, nil, &Error{Code: "INVALID_INPUT", Message: err.Error()}
	}
	return s, shipment, nil
}

func (r *QueryResolver) record(operation, carrier string, success bool, start time.Time) {
	if r.Metrics == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	r.Metrics.RecordRequest(operation, carrier, status, time.Since(start).Seconds())
}

func carrierOrDefault(carrier *string) string {
	if carrier == nil || *carrier == "" {
		return DefaultCarrier
	}
	return *carrier
}
