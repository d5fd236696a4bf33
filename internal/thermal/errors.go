package thermal

import (
	"errors"
	"fmt"
)

// Error kinds raised by the simulator. Callers match them with errors.Is.
var (
	ErrInvalidConfiguration = errors.New("thermal: invalid configuration")
	ErrArithmeticDomain     = errors.New("thermal: arithmetic domain error")
	ErrCurveAssembly        = errors.New("thermal: curve assembly error")
)

// ModeError ties an error to the duty mode and the parameter combination
// that produced it.
type ModeError struct {
	Mode   Mode
	Detail string
	Err    error
}

func (e *ModeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Mode, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Mode, e.Err, e.Detail)
}

func (e *ModeError) Unwrap() error {
	return e.Err
}

func modeErr(mode Mode, kind error, format string, args ...any) error {
	return &ModeError{Mode: mode, Detail: fmt.Sprintf(format, args...), Err: kind}
}
