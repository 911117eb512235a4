package s3check

// ServiceError is a failure reported by the storage service itself, as
// opposed to a local or transport failure. Code is the service's error code
// string (e.g. "AccessDenied") and is what the diagnostic tables key on.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Code + ": " + e.Message
}

// AsServiceError pulls a *ServiceError out of err if that's what it is.
func AsServiceError(err error) (*ServiceError, bool) {
	serr, ok := err.(*ServiceError)
	return serr, ok
}
