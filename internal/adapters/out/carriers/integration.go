// Package carriers implements ports.CarrierIntegration for the supported carrier
// brands. Each brand maps the carrier-agnostic shipment request to its own wire
// schema; retries, metrics and error classification are shared.
package carriers

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"
	"fulfillment/internal/pkg/retry"
)

const (
	operationCreateShipment  = "create_shipment"
	operationGetTrackingInfo = "get_tracking_info"
)

var (
	ErrTrackingNumberMissing = errors.New("carrier response has no tracking number")
	ErrShipmentNotFound      = errors.New("carrier knows no shipment for this tracking number")
)

// brandAPI is one carrier brand's single-attempt implementation.
type brandAPI interface {
	createShipment(ctx context.Context, request ports.ShipmentRequest) (ports.ShipmentResult, error)
	getTrackingInfo(ctx context.Context, trackingNumber string) (ports.TrackingInfo, error)
}

// integration adds retry and metrics around a brandAPI.
type integration struct {
	kind   carrier.Kind
	api    brandAPI
	policy retry.Policy
}

var _ ports.CarrierIntegration = (*integration)(nil)

func (i *integration) Kind() carrier.Kind {
	return i.kind
}

func (i *integration) CreateShipment(ctx context.Context, request ports.ShipmentRequest) (ports.ShipmentResult, error) {
	start := time.Now()
	result, err := retry.Do(ctx, i.policy, func(ctx context.Context) (ports.ShipmentResult, error) {
		res, err := i.api.createShipment(ctx, request)
		if err == nil && res.TrackingNumber == "" {
			return res, ErrTrackingNumberMissing
		}
		return res, err
	})
	i.observe(operationCreateShipment, start, err)
	return result, err
}

func (i *integration) GetTrackingInfo(ctx context.Context, trackingNumber string) (ports.TrackingInfo, error) {
	start := time.Now()
	info, err := retry.Do(ctx, i.policy, func(ctx context.Context) (ports.TrackingInfo, error) {
		return i.api.getTrackingInfo(ctx, trackingNumber)
	})
	i.observe(operationGetTrackingInfo, start, err)
	return info, err
}

func (i *integration) observe(operation string, start time.Time, err error) {
	metrics.CarrierRequestDuration.WithLabelValues(i.kind.String(), operation).Observe(time.Since(start).Seconds())
	metrics.CarrierRequestsTotal.WithLabelValues(i.kind.String(), operation, metrics.Outcome(err)).Inc()
}
