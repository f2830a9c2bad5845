package indicators

import "fmt"

// ErrorKind classifies an IndicatorError. New kinds may be added in later
// releases, so callers switching on it should keep a default arm.
type ErrorKind int

const (
	// NotEnoughData means the input is shorter than the window requires.
	NotEnoughData ErrorKind = iota + 1

	// InvalidWindow means a window parameter is < 1, or a MACD long window
	// is shorter than its short window.
	InvalidWindow

	// InvalidInput means a container or snapshot cannot be used as input.
	InvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case NotEnoughData:
		return "NotEnoughData"
	case InvalidWindow:
		return "InvalidWindow"
	case InvalidInput:
		return "InvalidInput"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// IndicatorError is returned by every calculation in this package.
type IndicatorError struct {
	Kind ErrorKind
	Msg  string
}

func (e *IndicatorError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is reports whether target is an *IndicatorError of the same kind. The
// message is ignored so the sentinels below can be used with errors.Is.
func (e *IndicatorError) Is(target error) bool {
	t, ok := target.(*IndicatorError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is matching.
var (
	ErrNotEnoughData = &IndicatorError{Kind: NotEnoughData}
	ErrInvalidWindow = &IndicatorError{Kind: InvalidWindow}
	ErrInvalidInput  = &IndicatorError{Kind: InvalidInput}
)

func notEnoughData(format string, args ...any) error {
	return &IndicatorError{Kind: NotEnoughData, Msg: fmt.Sprintf(format, args...)}
}

func invalidWindow(format string, args ...any) error {
	return &IndicatorError{Kind: InvalidWindow, Msg: fmt.Sprintf(format, args...)}
}

func invalidInput(format string, args ...any) error {
	return &IndicatorError{Kind: InvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func checkWindow(name string, window int) error {
	if window < 1 {
		return invalidWindow("%s must be >= 1, got %d", name, window)
	}
	return nil
}
