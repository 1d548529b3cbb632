package apiclient

import "errors"

var (
	// ErrNoBaseURL indicates the client was constructed without a base URL.
	ErrNoBaseURL = errors.New("apiclient.no_base_url")

	// ErrRequestFailed indicates the request never produced an HTTP response.
	ErrRequestFailed = errors.New("apiclient.request_failed")

	// ErrUnexpectedStatus indicates a non-2xx response outside the mapped cases.
	ErrUnexpectedStatus = errors.New("apiclient.unexpected_status")

	// ErrUnauthorized indicates the backend rejected the request credentials.
	ErrUnauthorized = errors.New("apiclient.unauthorized")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("apiclient.not_found")

	// ErrDecodeFailed indicates the response body was not the expected JSON.
	ErrDecodeFailed = errors.New("apiclient.decode_failed")
)
