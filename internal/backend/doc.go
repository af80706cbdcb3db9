// Package backend is the HTTP client for the mesh simulator server.
//
// The server renders the form page at "/", answers form submissions with a
// new page, and serves example values as a flat JSON object (by default at
// "/api/example"). This package fetches and parses those responses; it
// never computes anything itself.
//
// # Retries
//
// GET requests are retried on retryable failures (timeouts, refused
// connections, generic network errors and 5xx responses) with exponential
// backoff. Form submissions are POSTs and are sent exactly once.
//
// # Errors
//
// Every failure is an *Error with a Type, so callers can pick a short
// message or a troubleshooting hint:
//
//	doc, err := client.FetchPage(ctx)
//	if err != nil {
//	    fmt.Println(backend.GetShortErrorMessage(err))
//	    fmt.Println(backend.GetTroubleshootingHint(err))
//	}
//
// # Example Records
//
// DecodeExample keeps the key order of the JSON document so values are
// applied to the form in the order the server sent them.
package backend
