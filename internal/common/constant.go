// Package common contains shared constants and sentinel errors used across
// giftbox transports.
package common

// APIKeyHeaderName is the gRPC metadata key that carries the API key on
// outbound requests.
const APIKeyHeaderName = "api_key"

// ServiceName identifies giftbox in traces and health checks.
const ServiceName = "giftbox"
