package errorutil

import "errors"

// Merge will combine all given non nil error values into a single error value.
// If no valid error is given, nil is returned.
// If only a single non nil error value is given, the error value is returned.
func Merge(errs ...error) error {
	var cleaned []error
	for _, err := range errs {
		if err != nil {
			cleaned = append(cleaned, err)
		}
	}
	switch len(cleaned) {
	case 0:
		return nil
	case 1:
		return cleaned[0]
	default:
		return errors.Join(cleaned...)
	}
}

// Finish is a helper function that can be used from a deferred context.
//
// Usage:
//
//	defer errorutil.Finish(&returnError, closer.Close)
func Finish(returnErr *error, blk func() error) {
	*returnErr = Merge(*returnErr, blk())
}
