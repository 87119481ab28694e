package blog

import "errors"

// ValidationError is raised locally, before any backend call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BackendError carries a message reported by the remote data service. The
// message is never parsed or reclassified.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = &ValidationError{Message: "Not authenticated or user has no ID"}

// ErrNotFound is returned by GetPost when no post has the requested id.
var ErrNotFound = &BackendError{Message: "Blog not found."}

// AsBackendError converts err into a *BackendError, keeping validation
// errors and existing backend errors as they are. A nil err yields nil.
func AsBackendError(err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be
	}
	return &BackendError{Message: err.Error()}
}
