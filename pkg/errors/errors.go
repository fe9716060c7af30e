package errors

import "errors"

var (
	// Input errors ⌨️
	ErrPathNotFound     = errors.New("❌ image path not found")
	ErrInvalidModeInput = errors.New("❌ invalid mode input")
	ErrInvalidKeyInput  = errors.New("❌ invalid key input")

	// Advisory only, the operation continues ⚠️
	ErrKeyOutOfRange = errors.New("⚠️ key outside 0-255")

	// Image errors 🖼️
	ErrImageDecode = errors.New("❌ image could not be opened or decoded")
	ErrSaveFailed  = errors.New("❌ image could not be saved")

	// Anything else 💥
	ErrUnclassified = errors.New("❌ unexpected failure")
)

// Kind names the error category of err, or "" for nil.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPathNotFound):
		return "PathNotFound"
	case errors.Is(err, ErrInvalidModeInput):
		return "InvalidModeInput"
	case errors.Is(err, ErrInvalidKeyInput):
		return "InvalidKeyInput"
	case errors.Is(err, ErrKeyOutOfRange):
		return "OutOfRangeKeyAdvisory"
	case errors.Is(err, ErrImageDecode):
		return "ImageDecodeFailure"
	default:
		return "UnclassifiedFailure"
	}
}

// IsInput reports whether err came from validating user input.
func IsInput(err error) bool {
	return errors.Is(err, ErrPathNotFound) ||
		errors.Is(err, ErrInvalidModeInput) ||
		errors.Is(err, ErrInvalidKeyInput)
}

// Error pairs one of the sentinel kinds above with its underlying cause.
// errors.Is matches both.
type Error struct {
	Kind  error
	Cause error
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// Wrap tags cause with kind.
func Wrap(kind, cause error) error {
	return &Error{Kind: kind, Cause: cause}
}

// Cause returns the cause without the kind text, or err itself when it was
// not built by Wrap.
func Cause(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Cause
	}
	return err
}
