// Package delivery models the delivery note aggregate: one shipment derived from
// one fulfilled order.
//
// The package includes:
//   - Note: the aggregate root holding items, carrier assignment and the event log
//   - Item: a product line of the note
//   - Event: an append-only audit record of a state transition
//   - Status and EventType: the lifecycle state machine and its audit tags
//   - Number: the human readable DN-YYYYMMDD-NNNNNN identifier
//
// Lifecycle:
//
//	PENDING ──> DISPATCHED ──> IN_TRANSIT ──> DELIVERED
//	   │             │              │
//	   └─────────────┴──────────────┴──> RETURNED | CANCELED
//
// Every transition appends an Event. Events are never mutated or removed.
package delivery
