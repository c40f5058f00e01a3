package carriers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/ports"
)

// genericAPI talks to carriers without a dedicated integration. It sends a
// plain JSON shipment and reads the response leniently, accepting the field
// names the common carrier APIs use.
type genericAPI struct {
	client        apiClient
	accountNumber string
}

func newGenericAPI(httpClient *http.Client, c *carrier.Carrier) *genericAPI {
	return &genericAPI{
		client:        newAPIClient(httpClient, c, anyAuth),
		accountNumber: c.Credentials().AccountNumber,
	}
}

type genericRecipient struct {
	Name       string `json:"name"`
	Company    string `json:"company,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type genericItem struct {
	ProductID   string      `json:"productId"`
	Description string      `json:"description"`
	Quantity    json.Number `json:"quantity"`
	Unit        string      `json:"unit"`
}

type genericShipmentRequest struct {
	AccountNumber string           `json:"accountNumber,omitempty"`
	Reference     string           `json:"reference"`
	Recipient     genericRecipient `json:"recipient"`
	Items         []genericItem    `json:"items"`
}

// document is a loosely typed JSON object.
type document map[string]any

// str returns the first key holding a non-empty scalar, rendered as a string.
func (d document) str(keys ...string) string {
	for _, key := range keys {
		switch v := d[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// object returns the first key holding a JSON object.
func (d document) object(keys ...string) document {
	for _, key := range keys {
		if v, ok := d[key].(map[string]any); ok {
			return v
		}
	}
	return nil
}

// objects returns the first key holding an array, keeping only its objects.
func (d document) objects(keys ...string) []document {
	for _, key := range keys {
		values, ok := d[key].([]any)
		if !ok {
			continue
		}
		result := make([]document, 0, len(values))
		for _, v := range values {
			if obj, ok := v.(map[string]any); ok {
				result = append(result, obj)
			}
		}
		return result
	}
	return nil
}

// location accepts either a plain string or an object with a city-like field.
func (d document) location(keys ...string) string {
	if s := d.str(keys...); s != "" {
		return s
	}
	if obj := d.object(keys...); obj != nil {
		return obj.str("city", "name", "description")
	}
	return ""
}

func (a *genericAPI) createShipment(ctx context.Context, request ports.ShipmentRequest) (ports.ShipmentResult, error) {
	recipient := request.Recipient
	body := genericShipmentRequest{
		AccountNumber: a.accountNumber,
		Reference:     request.Reference,
		Recipient: genericRecipient{
			Name:       recipient.Name,
			Company:    recipient.Company,
			Street:     recipient.Street,
			City:       recipient.City,
			PostalCode: recipient.PostalCode,
			Country:    recipient.Country,
			Email:      recipient.Email,
			Phone:      recipient.Phone,
		},
	}
	for _, item := range request.Items {
		body.Items = append(body.Items, genericItem{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    json.Number(item.Quantity.String()),
			Unit:        item.Unit,
		})
	}

	var resp document
	if err := a.client.do(ctx, http.MethodPost, "/shipments", body, &resp); err != nil {
		return ports.ShipmentResult{}, err
	}

	return ports.ShipmentResult{
		TrackingNumber: resp.str("trackingNumber", "tracking_number", "trackingId", "shipmentNumber"),
		LabelURL:       resp.str("labelUrl", "label_url", "labelURL", "label"),
	}, nil
}

func (a *genericAPI) getTrackingInfo(ctx context.Context, trackingNumber string) (ports.TrackingInfo, error) {
	var resp document
	if err := a.client.do(ctx, http.MethodGet, "/tracking/"+url.PathEscape(trackingNumber), nil, &resp); err != nil {
		return ports.TrackingInfo{}, err
	}

	info := ports.TrackingInfo{
		Status:            resp.str("status", "state", "statusText"),
		CurrentLocation:   resp.location("currentLocation", "current_location", "location"),
		EstimatedDelivery: parseTimePtr(resp.str("estimatedDelivery", "estimated_delivery", "eta")),
	}
	if info.Status == "" {
		return ports.TrackingInfo{}, ErrShipmentNotFound
	}
	for _, e := range resp.objects("events", "history", "checkpoints") {
		ts, _ := parseTime(e.str("timestamp", "time", "date"))
		info.Events = append(info.Events, ports.TrackingEvent{
			Timestamp:   ts,
			Status:      e.str("status", "state", "code"),
			Location:    e.location("location", "city"),
			Description: e.str("description", "message", "statusText"),
		})
	}
	return info, nil
}
