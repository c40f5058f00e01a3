package carriers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/ports"
)

type dhlAPI struct {
	client        apiClient
	accountNumber string
}

func newDHLAPI(httpClient *http.Client, c *carrier.Carrier) *dhlAPI {
	return &dhlAPI{
		client:        newAPIClient(httpClient, c, apiKeyHeader("DHL-API-Key")),
		accountNumber: c.Credentials().AccountNumber,
	}
}

type dhlAddress struct {
	StreetLines string `json:"streetLines"`
	CityName    string `json:"cityName"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
}

type dhlConsignee struct {
	Name        string     `json:"fullName"`
	CompanyName string     `json:"companyName,omitempty"`
	Address     dhlAddress `json:"postalAddress"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
}

type dhlPiece struct {
	Description string      `json:"description"`
	Quantity    json.Number `json:"quantity"`
	Unit        string      `json:"unitOfMeasurement"`
}

type dhlShipmentRequest struct {
	AccountNumber    string       `json:"accountNumber,omitempty"`
	ShipperReference string       `json:"shipperReference"`
	Consignee        dhlConsignee `json:"consignee"`
	Pieces           []dhlPiece   `json:"pieces"`
}

type dhlShipmentResponse struct {
	ShipmentTrackingNumber string `json:"shipmentTrackingNumber"`
	Documents              []struct {
		URL string `json:"url"`
	} `json:"documents"`
}

type dhlLocation struct {
	Address struct {
		AddressLocality string `json:"addressLocality"`
	} `json:"address"`
}

type dhlTrackingResponse struct {
	Shipments []struct {
		Status struct {
			Status      string      `json:"status"`
			Description string      `json:"description"`
			Location    dhlLocation `json:"location"`
		} `json:"status"`
		EstimatedTimeOfDelivery string `json:"estimatedTimeOfDelivery"`
		Events                  []struct {
			Timestamp   string      `json:"timestamp"`
			Status      string      `json:"status"`
			Description string      `json:"description"`
			Location    dhlLocation `json:"location"`
		} `json:"events"`
	} `json:"shipments"`
}

func (a *dhlAPI) createShipment(ctx context.Context, request ports.ShipmentRequest) (ports.ShipmentResult, error) {
	recipient := request.Recipient
	body := dhlShipmentRequest{
		AccountNumber:    a.accountNumber,
		ShipperReference: request.Reference,
		Consignee: dhlConsignee{
			Name:        recipient.Name,
			CompanyName: recipient.Company,
			Address: dhlAddress{
				StreetLines: recipient.Street,
				CityName:    recipient.City,
				PostalCode:  recipient.PostalCode,
				CountryCode: recipient.Country,
			},
			Email: recipient.Email,
			Phone: recipient.Phone,
		},
	}
	for _, item := range request.Items {
		body.Pieces = append(body.Pieces, dhlPiece{
			Description: firstNonEmpty(item.Description, item.ProductID),
			Quantity:    json.Number(item.Quantity.String()),
			Unit:        item.Unit,
		})
	}

	var resp dhlShipmentResponse
	if err := a.client.do(ctx, http.MethodPost, "/shipments", body, &resp); err != nil {
		return ports.ShipmentResult{}, err
	}

	result := ports.ShipmentResult{TrackingNumber: resp.ShipmentTrackingNumber}
	if len(resp.Documents) > 0 {
		result.LabelURL = resp.Documents[0].URL
	}
	return result, nil
}

func (a *dhlAPI) getTrackingInfo(ctx context.Context, trackingNumber string) (ports.TrackingInfo, error) {
	var resp dhlTrackingResponse
	path := "/track/shipments?trackingNumber=" + url.QueryEscape(trackingNumber)
	if err := a.client.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return ports.TrackingInfo{}, err
	}
	if len(resp.Shipments) == 0 {
		return ports.TrackingInfo{}, ErrShipmentNotFound
	}

	shipment := resp.Shipments[0]
	info := ports.TrackingInfo{
		Status:            firstNonEmpty(shipment.Status.Description, shipment.Status.Status),
		CurrentLocation:   shipment.Status.Location.Address.AddressLocality,
		EstimatedDelivery: parseTimePtr(shipment.EstimatedTimeOfDelivery),
	}
	for _, e := range shipment.Events {
		ts, _ := parseTime(e.Timestamp)
		info.Events = append(info.Events, ports.TrackingEvent{
			Timestamp:   ts,
			Status:      e.Status,
			Location:    e.Location.Address.AddressLocality,
			Description: e.Description,
		})
	}
	return info, nil
}
