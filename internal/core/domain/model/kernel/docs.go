// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier of delivery notes, carriers and events
//   - TenantID: the isolation boundary carried by every entity and lookup
//
// Both are immutable; their zero values fail validation so that an
// uninitialised identifier never reaches the store.
package kernel
