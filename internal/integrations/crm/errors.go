package crm

import "errors"

var (
	// ErrInternal is returned on client-side failures (request build, transport).
	ErrInternal = errors.New("crm client: internal error")

	// ErrInvalidResponse is returned when the CRM answers with an unexpected
	// status code or an unparsable body.
	ErrInvalidResponse = errors.New("crm client: invalid response")

	// ErrUnauthorized is returned when the CRM rejects the API token.
	ErrUnauthorized = errors.New("crm client: unauthorized")
)
