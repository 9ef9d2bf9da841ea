// Package api defines the giftbox.v1.GiftService gRPC contract: request and
// response messages, the JSON codec that carries them, the service
// descriptor, a client stub and the mapping between domain errors and gRPC
// status codes.
//
// Messages are plain Go structs. Every call is made with content-subtype
// "json" (see CallOptions), so no generated protobuf code is involved. The
// standard gRPC health service keeps using the default proto codec.
package api
