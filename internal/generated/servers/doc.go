// Package servers holds the HTTP contract of the fulfillment service: the
// OpenAPI document and the echo bindings generated from it.
package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types,server -package servers -o servers.gen.go openapi.yaml
