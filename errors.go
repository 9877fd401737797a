package craft

import "errors"

// Sentinel errors for lifecycle, composition and navigation.
var (
	ErrNoApp                = errors.New("craft: no application")
	ErrNoPlatform           = errors.New("craft: no platform")
	ErrNotLoaded            = errors.New("craft: view not loaded")
	ErrAlreadyLoaded        = errors.New("craft: view already loaded")
	ErrDisposed             = errors.New("craft: view disposed")
	ErrNotAttached          = errors.New("craft: view not attached to this parent")
	ErrElementNotFound      = errors.New("craft: element not found")
	ErrNotImplemented       = errors.New("craft: routing not implemented")
	ErrNoRootViewController = errors.New("craft: no root view controller")
	ErrAlreadyBroughtUp     = errors.New("craft: root view controller already brought up")
	ErrNoRootElement        = errors.New("craft: root element not found")
	ErrUnknownRouter        = errors.New("craft: unknown router")
	ErrRootAlreadyBound     = errors.New("craft: another root view controller is bound")
)

// IsNotLoaded checks if err reports an operation on a view that is not
// loaded, including a disposed one.
func IsNotLoaded(err error) bool {
	return errors.Is(err, ErrNotLoaded) || errors.Is(err, ErrDisposed)
}

// IsLifecycleError checks if err is any lifecycle-order violation.
func IsLifecycleError(err error) bool {
	return errors.Is(err, ErrNotLoaded) ||
		errors.Is(err, ErrAlreadyLoaded) ||
		errors.Is(err, ErrDisposed)
}

// IsNotImplemented checks if err comes from a root view controller that
// cannot resolve routes.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// IsStateError checks if err is a history state decoding error.
func IsStateError(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrStateSignatureInvalid) ||
		errors.Is(err, ErrStateDecryptFailed)
}
