// Package client contains the gift stores used by the giftbox CLI.
//
// # Overview
//
// Two implementations of gift.Store are provided:
//  1. LocalStore keeps gifts in an SQLite file migrated with embedded goose
//     migrations (see InitDatabase, RunMigrations). Media is inlined as
//     data URIs.
//  2. GRPCClient talks to the hosted giftbox backend. It injects the API key
//     via a unary interceptor, uploads media through presigned URLs and maps
//     gRPC status codes back onto the domain sentinels.
//
// # Error Handling
//
// Missing gifts surface as gift.ErrNotFound. Transport conditions are
// exposed as ErrUnavailable and ErrUnauthorized; match them with errors.Is.
package client
