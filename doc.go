// Package comet provides a resilient client-side connector for store-scoped
// e-commerce REST APIs. It authenticates every request from stored
// credentials, caps concurrent requests with client-side admission control,
// and transparently retries requests the server throttles via rate limiting.
//
// # Architecture
//
// The connector is a thin, stateless core over a tuned HTTP transport:
//
//  1. pkg/connector builds requests from a relative resource path and
//     optional body, dispatches them, classifies the response, and either
//     resolves with parsed data, retries after a server-dictated delay, or
//     fails with a structured error.
//
//  2. pkg/clients owns the transport: connection pooling, HTTP/2, and
//     opt-in client-side rate limiting and circuit breaking.
//
//  3. pkg/errors carries the error taxonomy (config, connection, rate
//     limit, API, parse) that drives all downstream handling.
//
// # Quick Start
//
//	cfg := config.NewConnectorConfig("abc123", os.Getenv("API_TOKEN"),
//	    "my-client-id", "https://api.example.com")
//	cfg.Performance.MaxConcurrentRequests = 8
//
//	conn, err := connector.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	products, err := conn.Get(ctx, "/products")
//
// Rate-limited responses (HTTP 429) are absorbed internally: the connector
// waits for the server-requested duration plus a safety margin and retries
// the same logical operation. Callers only ever observe success or a
// terminal failure.
package comet
