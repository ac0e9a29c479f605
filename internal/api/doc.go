// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// business operations.
//
// Two behaviors of this adapter are contractual rather than incidental:
// product registration re-validates price and name before calling the
// service (a second, differently worded validation pass), and the delete
// endpoints collapse every failure kind into a boolean success flag.
package api
