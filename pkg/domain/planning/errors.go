package planning

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every input validation failure. All
// validation happens before any computation starts; callers never receive a
// partial table alongside an error.
var ErrInvalidParameter = errors.New("invalid parameter")

// invalidParamf wraps ErrInvalidParameter with the violated constraint.
func invalidParamf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
