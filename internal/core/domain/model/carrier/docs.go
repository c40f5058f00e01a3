// Package carrier models external shipping providers and their API and tracking
// configuration. Carriers are tenant scoped and referenced by delivery notes.
package carrier
