package carriers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/ports"
)

type glsAPI struct {
	client    apiClient
	shipperID string
}

func newGLSAPI(httpClient *http.Client, c *carrier.Carrier) *glsAPI {
	return &glsAPI{
		client:    newAPIClient(httpClient, c, basicAuth),
		shipperID: c.Credentials().AccountNumber,
	}
}

type glsAddress struct {
	Name1       string `json:"name1"`
	Name2       string `json:"name2,omitempty"`
	Street1     string `json:"street1"`
	City        string `json:"city"`
	ZipCode     string `json:"zipCode"`
	CountryCode string `json:"countryCode"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type glsParcel struct {
	Comment  string      `json:"comment"`
	Quantity json.Number `json:"quantity"`
	Unit     string      `json:"unit"`
}

type glsShipmentRequest struct {
	ShipperID  string   `json:"shipperId,omitempty"`
	References []string `json:"references"`
	Addresses  struct {
		Delivery glsAddress `json:"delivery"`
	} `json:"addresses"`
	Parcels []glsParcel `json:"parcels"`
}

type glsShipmentResponse struct {
	Parcels []struct {
		TrackID string `json:"trackId"`
	} `json:"parcels"`
	Labels []string `json:"labels"`
}

type glsTrackingResponse struct {
	Parcels []struct {
		Status          string `json:"status"`
		StatusText      string `json:"statusText"`
		Location        string `json:"location"`
		DeliveryDateETA string `json:"deliveryDateEta"`
		Events          []struct {
			Timestamp   string `json:"timestamp"`
			Code        string `json:"code"`
			Description string `json:"description"`
			Location    string `json:"location"`
		} `json:"events"`
	} `json:"parcels"`
}

func (a *glsAPI) createShipment(ctx context.Context, request ports.ShipmentRequest) (ports.ShipmentResult, error) {
	recipient := request.Recipient

	body := glsShipmentRequest{
		ShipperID:  a.shipperID,
		References: []string{request.Reference},
	}
	body.Addresses.Delivery = glsAddress{
		Name1:       recipient.Name,
		Name2:       recipient.Company,
		Street1:     recipient.Street,
		City:        recipient.City,
		ZipCode:     recipient.PostalCode,
		CountryCode: recipient.Country,
		Email:       recipient.Email,
		Phone:       recipient.Phone,
	}
	for _, item := range request.Items {
		body.Parcels = append(body.Parcels, glsParcel{
			Comment:  firstNonEmpty(item.Description, item.ProductID),
			Quantity: json.Number(item.Quantity.String()),
			Unit:     item.Unit,
		})
	}

	var resp glsShipmentResponse
	if err := a.client.do(ctx, http.MethodPost, "/parcels", body, &resp); err != nil {
		return ports.ShipmentResult{}, err
	}

	var result ports.ShipmentResult
	if len(resp.Parcels) > 0 {
		result.TrackingNumber = resp.Parcels[0].TrackID
	}
	if len(resp.Labels) > 0 {
		result.LabelURL = resp.Labels[0]
	}
	return result, nil
}

func (a *glsAPI) getTrackingInfo(ctx context.Context, trackingNumber string) (ports.TrackingInfo, error) {
	var resp glsTrackingResponse
	path := "/tracking/references/" + url.PathEscape(trackingNumber)
	if err := a.client.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return ports.TrackingInfo{}, err
	}
	if len(resp.Parcels) == 0 {
		return ports.TrackingInfo{}, ErrShipmentNotFound
	}

	parcel := resp.Parcels[0]
	info := ports.TrackingInfo{
		Status:            firstNonEmpty(parcel.StatusText, parcel.Status),
		CurrentLocation:   parcel.Location,
		EstimatedDelivery: parseTimePtr(parcel.DeliveryDateETA),
	}
	for _, e := range parcel.Events {
		ts, _ := parseTime(e.Timestamp)
		info.Events = append(info.Events, ports.TrackingEvent{
			Timestamp:   ts,
			Status:      e.Code,
			Location:    e.Location,
			Description: e.Description,
		})
	}
	return info, nil
}
