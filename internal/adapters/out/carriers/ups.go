package carriers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/ports"
)

type upsAPI struct {
	client        apiClient
	shipperNumber string
}

func newUPSAPI(httpClient *http.Client, c *carrier.Carrier) *upsAPI {
	return &upsAPI{
		client:        newAPIClient(httpClient, c, bearerToken),
		shipperNumber: c.Credentials().AccountNumber,
	}
}

type upsAddress struct {
	AddressLine string `json:"AddressLine"`
	City        string `json:"City"`
	PostalCode  string `json:"PostalCode"`
	CountryCode string `json:"CountryCode"`
}

type upsShipTo struct {
	Name          string     `json:"Name"`
	AttentionName string     `json:"AttentionName,omitempty"`
	Address       upsAddress `json:"Address"`
	Phone         string     `json:"Phone,omitempty"`
	EMailAddress  string     `json:"EMailAddress,omitempty"`
}

type upsPackage struct {
	Description string      `json:"Description"`
	Quantity    json.Number `json:"Quantity"`
	Unit        string      `json:"UnitOfMeasurement"`
}

type upsShipmentRequest struct {
	Shipment struct {
		ShipperNumber   string       `json:"ShipperNumber,omitempty"`
		ReferenceNumber string       `json:"ReferenceNumber"`
		ShipTo          upsShipTo    `json:"ShipTo"`
		Package         []upsPackage `json:"Package"`
	} `json:"Shipment"`
}

type upsShipmentResponse struct {
	ShipmentResults struct {
		ShipmentIdentificationNumber string `json:"ShipmentIdentificationNumber"`
		LabelURL                     string `json:"LabelURL"`
	} `json:"ShipmentResults"`
}

type upsActivity struct {
	Location struct {
		Address struct {
			City string `json:"city"`
		} `json:"address"`
	} `json:"location"`
	Status struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"status"`
	Date string `json:"date"`
	Time string `json:"time"`
}

type upsTrackingResponse struct {
	TrackResponse struct {
		Shipment []struct {
			Package []struct {
				CurrentStatus struct {
					Description string `json:"description"`
				} `json:"currentStatus"`
				DeliveryDate []struct {
					Date string `json:"date"`
				} `json:"deliveryDate"`
				Activity []upsActivity `json:"activity"`
			} `json:"package"`
		} `json:"shipment"`
	} `json:"trackResponse"`
}

func (a *upsAPI) createShipment(ctx context.Context, request ports.ShipmentRequest) (ports.ShipmentResult, error) {
	recipient := request.Recipient

	var body upsShipmentRequest
	body.Shipment.ShipperNumber = a.shipperNumber
	body.Shipment.ReferenceNumber = request.Reference
	body.Shipment.ShipTo = upsShipTo{
		Name:          firstNonEmpty(recipient.Company, recipient.Name),
		AttentionName: recipient.Name,
		Address: upsAddress{
			AddressLine: recipient.Street,
			City:        recipient.City,
			PostalCode:  recipient.PostalCode,
			CountryCode: recipient.Country,
		},
		Phone:        recipient.Phone,
		EMailAddress: recipient.Email,
	}
	for _, item := range request.Items {
		body.Shipment.Package = append(body.Shipment.Package, upsPackage{
			Description: firstNonEmpty(item.Description, item.ProductID),
			Quantity:    json.Number(item.Quantity.String()),
			Unit:        item.Unit,
		})
	}

	var resp upsShipmentResponse
	if err := a.client.do(ctx, http.MethodPost, "/shipments", body, &resp); err != nil {
		return ports.ShipmentResult{}, err
	}

	return ports.ShipmentResult{
		TrackingNumber: resp.ShipmentResults.ShipmentIdentificationNumber,
		LabelURL:       resp.ShipmentResults.LabelURL,
	}, nil
}

func (a *upsAPI) getTrackingInfo(ctx context.Context, trackingNumber string) (ports.TrackingInfo, error) {
	var resp upsTrackingResponse
	if err := a.client.do(ctx, http.MethodGet, "/track/"+url.PathEscape(trackingNumber), nil, &resp); err != nil {
		return ports.TrackingInfo{}, err
	}
	shipments := resp.TrackResponse.Shipment
	if len(shipments) == 0 || len(shipments[0].Package) == 0 {
		return ports.TrackingInfo{}, ErrShipmentNotFound
	}

	pkg := shipments[0].Package[0]
	info := ports.TrackingInfo{Status: pkg.CurrentStatus.Description}
	if len(pkg.DeliveryDate) > 0 {
		info.EstimatedDelivery = parseTimePtr(pkg.DeliveryDate[0].Date)
	}
	// UPS lists activity newest first.
	if len(pkg.Activity) > 0 {
		info.CurrentLocation = pkg.Activity[0].Location.Address.City
	}
	for _, activity := range pkg.Activity {
		ts, _ := parseTime(activity.Date + activity.Time)
		info.Events = append(info.Events, ports.TrackingEvent{
			Timestamp:   ts,
			Status:      activity.Status.Type,
			Location:    activity.Location.Address.City,
			Description: activity.Status.Description,
		})
	}
	return info, nil
}
