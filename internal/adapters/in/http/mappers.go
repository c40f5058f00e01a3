package http

import (
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toAPIUUID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

func toAPIUUIDPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	v := toAPIUUID(*id)
	return &v
}

func fromAPIUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDeliveryNote(note *delivery.Note, c *carrier.Carrier) servers.DeliveryNote {
	items := make([]servers.DeliveryItem, 0, len(note.Items()))
	for _, item := range note.Items() {
		items = append(items, servers.DeliveryItem{
			Id:          toAPIUUID(item.ID()),
			ProductId:   item.ProductID(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			Unit:        item.Unit(),
		})
	}

	events := make([]servers.DeliveryEvent, 0, len(note.Events()))
	for _, event := range note.Events() {
		apiEvent := servers.DeliveryEvent{
			Id:         toAPIUUID(event.ID()),
			EventType:  event.Type().String(),
			OccurredAt: event.OccurredAt(),
		}
		if metadata := event.Metadata(); len(metadata) > 0 {
			apiEvent.Metadata = &metadata
		}
		events = append(events, apiEvent)
	}

	result := servers.DeliveryNote{
		Id:                 toAPIUUID(note.ID()),
		DeliveryNumber:     note.Number().String(),
		OrderId:            note.OrderID(),
		CustomerId:         note.CustomerID(),
		DeliveryAddressId:  note.DeliveryAddressID(),
		Status:             servers.DeliveryStatus(note.Status()),
		CarrierId:          toAPIUUIDPtr(note.CarrierID()),
		TrackingNumber:     optional(note.TrackingNumber()),
		ShippedAt:          note.ShippedAt(),
		DeliveredAt:        note.DeliveredAt(),
		ProofOfDeliveryUrl: optional(note.ProofOfDeliveryURL()),
		Items:              items,
		Events:             events,
		CreatedAt:          note.CreatedAt(),
		UpdatedAt:          note.UpdatedAt(),
	}
	if c != nil {
		result.CarrierName = optional(c.Name())
		if note.TrackingNumber() != "" {
			result.TrackingUrl = optional(c.TrackingURL(note.TrackingNumber()))
		}
	}
	return result
}

func toDeliveryNotePage(page queries.ListDeliveryNotesQueryResponse) servers.DeliveryNotePage {
	items := make([]servers.DeliveryNoteSummary, 0, len(page.Items))
	for _, s := range page.Items {
		items = append(items, servers.DeliveryNoteSummary{
			Id:             toAPIUUID(s.ID),
			DeliveryNumber: s.DeliveryNumber,
			OrderId:        s.OrderID,
			CustomerId:     s.CustomerID,
			Status:         servers.DeliveryStatus(s.Status),
			CarrierId:      toAPIUUIDPtr(s.CarrierID),
			TrackingNumber: optional(s.TrackingNumber),
			ShippedAt:      s.ShippedAt,
			DeliveredAt:    s.DeliveredAt,
			ItemCount:      s.ItemCount,
			CreatedAt:      s.CreatedAt,
		})
	}
	return servers.DeliveryNotePage{
		Items: items,
		Total: page.Total,
		Skip:  page.Skip,
		Take:  page.Take,
	}
}

func toTrackingInfo(r queries.GetTrackingInfoQueryResponse) servers.TrackingInfo {
	events := make([]servers.TrackingEvent, 0, len(r.Info.Events))
	for _, e := range r.Info.Events {
		events = append(events, servers.TrackingEvent{
			Timestamp:   e.Timestamp,
			Status:      e.Status,
			Location:    optional(e.Location),
			Description: optional(e.Description),
		})
	}
	return servers.TrackingInfo{
		DeliveryNoteId:    toAPIUUID(r.DeliveryNoteID),
		DeliveryNumber:    r.DeliveryNumber.String(),
		Status:            servers.DeliveryStatus(r.Status),
		CarrierName:       r.CarrierName,
		TrackingNumber:    r.TrackingNumber,
		TrackingUrl:       optional(r.TrackingURL),
		CarrierStatus:     r.Info.Status,
		CurrentLocation:   optional(r.Info.CurrentLocation),
		EstimatedDelivery: r.Info.EstimatedDelivery,
		Events:            events,
	}
}

func toCarrier(c queries.ListCarriersQueryResponse) servers.Carrier {
	kind := c.Kind
	if kind == carrier.KindAuto {
		kind = carrier.KindFromName(c.Name)
	}
	return servers.Carrier{
		Id:                  toAPIUUID(c.ID),
		Name:                c.Name,
		ApiEndpoint:         c.APIEndpoint,
		TrackingUrlTemplate: optional(c.TrackingURLTemplate),
		Kind:                servers.CarrierKind(kind),
		Active:              c.Active,
	}
}
