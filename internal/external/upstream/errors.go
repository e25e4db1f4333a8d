package upstream

import "errors"

var (
	// ErrBadRequest is returned when the upstream rejects the request (HTTP 400)
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned when credentials are missing or rejected (HTTP 401, 403)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the resource is not found (HTTP 404)
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when there's a conflict (HTTP 409)
	ErrConflict = errors.New("conflict")

	// ErrUnprocessable is returned when the payload fails validation (HTTP 422)
	ErrUnprocessable = errors.New("unprocessable entity")

	// ErrUnavailable is returned on transport errors, HTTP 429 and HTTP 5xx
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrMalformedResponse is returned when a 2xx body cannot be decoded
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError carries the upstream status and body alongside its sentinel kind.
type StatusError struct {
	Kind       error
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Body
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// IsTransient reports whether a retry of the same call may succeed.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
