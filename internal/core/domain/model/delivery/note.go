package delivery

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const entityName = "delivery note"

var (
	ErrOrderIDIsRequired           = errs.NewValueIsRequiredError("orderId")
	ErrCustomerIDIsRequired        = errs.NewValueIsRequiredError("customerId")
	ErrDeliveryAddressIDIsRequired = errs.NewValueIsRequiredError("deliveryAddressId")
	ErrItemsAreRequired            = errs.NewValueIsRequiredError("items")
	ErrTrackingNumberIsRequired    = errs.NewValueIsRequiredError("trackingNumber")
	ErrNoteIsNotConstructed        = errors.New("Note must be created via NewNote constructor")
)

// Note is the delivery note aggregate root. It owns its items and its event log.
//
// Invariants:
//   - Belongs to exactly one tenant
//   - Holds at least one item
//   - Starts in PENDING with a single CREATED event
//   - Every status change appends exactly one event; events are append-only
//
// The aggregate remembers the status it was loaded with and the events appended
// since then. Repositories use the former as an optimistic concurrency guard and
// persist the latter, then call AcceptChanges.
type Note struct {
	id                 kernel.UUID
	number             Number
	orderID            string
	customerID         string
	deliveryAddressID  string
	status             Status
	carrierID          *kernel.UUID
	trackingNumber     string
	shippedAt          *time.Time
	deliveredAt        *time.Time
	proofOfDeliveryURL string
	items              []*Item
	events             []*Event
	tenantID           kernel.TenantID
	createdAt          time.Time
	updatedAt          time.Time

	// loadedStatus is the persisted status this instance was built from.
	loadedStatus Status
	// pendingEvents counts the trailing entries of events not yet persisted.
	pendingEvents int

	guard guard.ConstructorGuard
}

// NewNote creates a PENDING note with a CREATED event.
//
// Example:
//
//	item, _ := delivery.NewItem("P1", "Widget", decimal.NewFromInt(2), "pcs")
//	note, err := delivery.NewNote(kernel.NewUUID(), delivery.GenerateNumber(time.Now()),
//	    "O1", "C1", "A1", []*delivery.Item{item}, tenant)
func NewNote(
	id kernel.UUID,
	number Number,
	orderID, customerID, deliveryAddressID string,
	items []*Item,
	tenantID kernel.TenantID,
) (*Note, error) {
	now := time.Now().UTC()
	note := &Note{
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		note.setID(id),
		note.setNumber(number),
		note.setReferences(orderID, customerID, deliveryAddressID),
		note.setItems(items),
		note.setTenant(tenantID),
	); err != nil {
		return nil, err
	}

	if err := note.appendEvent(EventCreated, map[string]any{
		"deliveryNumber": number.String(),
		"orderId":        note.orderID,
	}); err != nil {
		return nil, err
	}

	return note, nil
}

// Snapshot carries the persisted state of a note for RestoreNote.
type Snapshot struct {
	ID                 kernel.UUID
	Number             Number
	OrderID            string
	CustomerID         string
	DeliveryAddressID  string
	Status             Status
	CarrierID          *kernel.UUID
	TrackingNumber     string
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	ProofOfDeliveryURL string
	Items              []*Item
	Events             []*Event
	TenantID           kernel.TenantID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreNote rebuilds a note from storage. The restored note has no pending changes.
func RestoreNote(s Snapshot) (*Note, error) {
	note := &Note{
		carrierID:          s.CarrierID,
		trackingNumber:     s.TrackingNumber,
		shippedAt:          s.ShippedAt,
		deliveredAt:        s.DeliveredAt,
		proofOfDeliveryURL: s.ProofOfDeliveryURL,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		note.setID(s.ID),
		note.setNumber(s.Number),
		note.setReferences(s.OrderID, s.CustomerID, s.DeliveryAddressID),
		note.setStatus(s.Status),
		note.setItems(s.Items),
		note.setEvents(s.Events),
		note.setTenant(s.TenantID),
	); err != nil {
		return nil, err
	}
	note.loadedStatus = note.status

	return note, nil
}

func (n *Note) Validate() error {
	if n == nil {
		return ErrNoteIsNotConstructed
	}
	return n.guard.Validate(ErrNoteIsNotConstructed)
}

func (n *Note) ID() kernel.UUID {
	return n.id
}

func (n *Note) Number() Number {
	return n.number
}

func (n *Note) OrderID() string {
	return n.orderID
}

func (n *Note) CustomerID() string {
	return n.customerID
}

func (n *Note) DeliveryAddressID() string {
	return n.deliveryAddressID
}

func (n *Note) Status() Status {
	return n.status
}

func (n *Note) CarrierID() *kernel.UUID {
	return n.carrierID
}

func (n *Note) TrackingNumber() string {
	return n.trackingNumber
}

func (n *Note) ShippedAt() *time.Time {
	return n.shippedAt
}

func (n *Note) DeliveredAt() *time.Time {
	return n.deliveredAt
}

func (n *Note) ProofOfDeliveryURL() string {
	return n.proofOfDeliveryURL
}

func (n *Note) TenantID() kernel.TenantID {
	return n.tenantID
}

func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Note) UpdatedAt() time.Time {
	return n.updatedAt
}

func (n *Note) LoadedStatus() Status {
	return n.loadedStatus
}

func (n *Note) IsEqual(other *Note) bool {
	return other != nil && n.id.IsEqual(other.id)
}

func (n *Note) BelongsTo(t kernel.TenantID) bool {
	return n.tenantID.IsEqual(t)
}

// Items returns the product lines in their original order.
func (n *Note) Items() []*Item {
	items := make([]*Item, len(n.items))
	copy(items, n.items)
	return items
}

// Events returns the full audit trail, oldest first.
func (n *Note) Events() []*Event {
	events := make([]*Event, len(n.events))
	copy(events, n.events)
	return events
}

// PendingEvents returns events appended since the note was loaded or last accepted.
func (n *Note) PendingEvents() []*Event {
	start := len(n.events) - n.pendingEvents
	events := make([]*Event, n.pendingEvents)
	copy(events, n.events[start:])
	return events
}

// PendingEventsOffset is the position of the first pending event in the audit trail.
func (n *Note) PendingEventsOffset() int {
	return len(n.events) - n.pendingEvents
}

// AcceptChanges marks the current state as persisted.
func (n *Note) AcceptChanges() {
	n.loadedStatus = n.status
	n.pendingEvents = 0
}

// IsTrackable reports whether the tracking worker should poll the carrier for this note.
func (n *Note) IsTrackable() bool {
	return n.status.IsTrackable() && n.trackingNumber != "" && n.carrierID != nil
}

// AssignShipment records the carrier shipment created for a PENDING note.
// The status is unchanged; MarkDispatched completes the hand-over.
func (n *Note) AssignShipment(carrierID kernel.UUID, trackingNumber string) error {
	if err := n.EnsureDispatchable(); err != nil {
		return err
	}
	if err := carrierID.Validate(); err != nil {
		return err
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	n.carrierID = &carrierID
	n.trackingNumber = trackingNumber
	n.touch()
	return nil
}

// MarkDispatched moves a PENDING note with an assigned shipment to DISPATCHED,
// stamps shippedAt and appends a DISPATCHED event.
func (n *Note) MarkDispatched() error {
	if err := n.EnsureDispatchable(); err != nil {
		return err
	}
	if n.carrierID == nil || n.trackingNumber == "" {
		return errs.NewInvalidStateError(entityName, n.status.String(), "no shipment assigned")
	}

	now := time.Now().UTC()
	n.status = StatusDispatched
	n.shippedAt = &now
	n.touch()
	return n.appendEvent(EventDispatched, map[string]any{
		"carrierId":      n.carrierID.String(),
		"trackingNumber": n.trackingNumber,
	})
}

// Confirm marks the note DELIVERED. A note that is already DELIVERED cannot be
// confirmed again. proofURL is optional.
func (n *Note) Confirm(proofURL string) error {
	if n.status == StatusDelivered {
		return errs.NewInvalidStateError(entityName, n.status.String(), "already confirmed")
	}

	proofURL = strings.TrimSpace(proofURL)
	now := time.Now().UTC()
	n.status = StatusDelivered
	n.deliveredAt = &now
	n.proofOfDeliveryURL = proofURL
	n.touch()

	var metadata map[string]any
	if proofURL != "" {
		metadata = map[string]any{"proofOfDeliveryUrl": proofURL}
	}
	return n.appendEvent(EventDelivered, metadata)
}

// ChangeStatus is the generic transition primitive used by tracking reconciliation.
// It does not enforce forward-only transitions. Entering DELIVERED stamps deliveredAt.
func (n *Note) ChangeStatus(status Status, metadata map[string]any) error {
	if err := status.Validate(); err != nil {
		return err
	}

	n.status = status
	if status == StatusDelivered {
		now := time.Now().UTC()
		n.deliveredAt = &now
	}
	n.touch()
	return n.appendEvent(status.EventType(), metadata)
}

// Cancel moves a non-terminal note to CANCELED.
func (n *Note) Cancel(reason string) error {
	if n.status.IsTerminal() {
		return errs.NewInvalidStateError(entityName, n.status.String(), "cannot cancel")
	}

	n.status = StatusCanceled
	n.touch()

	var metadata map[string]any
	if reason = strings.TrimSpace(reason); reason != "" {
		metadata = map[string]any{"reason": reason}
	}
	return n.appendEvent(EventCanceled, metadata)
}

// RecordTrackingSnapshot appends the raw carrier tracking response to the audit
// trail without changing the status. Snapshots are always tagged IN_TRANSIT.
func (n *Note) RecordTrackingSnapshot(snapshot map[string]any) error {
	n.touch()
	return n.appendEvent(EventInTransit, snapshot)
}

// EnsureDispatchable returns errs.InvalidStateError unless the note is PENDING.
func (n *Note) EnsureDispatchable() error {
	if n.status != StatusPending {
		return errs.NewInvalidStateError(entityName, n.status.String(), "cannot dispatch in status "+n.status.String())
	}
	return nil
}

func (n *Note) appendEvent(eventType EventType, metadata map[string]any) error {
	event, err := NewEvent(eventType, metadata)
	if err != nil {
		return err
	}
	n.events = append(n.events, event)
	n.pendingEvents++
	return nil
}

func (n *Note) touch() {
	n.updatedAt = time.Now().UTC()
}

func (n *Note) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Note) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	n.number = number
	return nil
}

func (n *Note) setReferences(orderID, customerID, deliveryAddressID string) error {
	orderID = strings.TrimSpace(orderID)
	customerID = strings.TrimSpace(customerID)
	deliveryAddressID = strings.TrimSpace(deliveryAddressID)

	var err error
	if orderID == "" {
		err = errors.Join(err, ErrOrderIDIsRequired)
	}
	if customerID == "" {
		err = errors.Join(err, ErrCustomerIDIsRequired)
	}
	if deliveryAddressID == "" {
		err = errors.Join(err, ErrDeliveryAddressIDIsRequired)
	}
	if err != nil {
		return err
	}

	n.orderID = orderID
	n.customerID = customerID
	n.deliveryAddressID = deliveryAddressID
	return nil
}

func (n *Note) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	n.status = status
	return nil
}

func (n *Note) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	n.items = make([]*Item, len(items))
	copy(n.items, items)
	return nil
}

func (n *Note) setEvents(events []*Event) error {
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return err
		}
	}
	n.events = make([]*Event, len(events))
	copy(n.events, events)
	return nil
}

func (n *Note) setTenant(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	n.tenantID = tenantID
	return nil
}
