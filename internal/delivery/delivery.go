// Package delivery holds the transports that expose the service: the public
// HTTP API and the mail worker's push endpoint.
package delivery

import "context"

// Delivery is a long-running server started by the application entrypoint.
type Delivery interface {
	// Serve blocks until the server stops. A clean shutdown returns nil.
	Serve(ctx context.Context) error
}
