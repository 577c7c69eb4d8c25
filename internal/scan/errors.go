package scan

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a scan failure into the taxonomy spec.md §7 defines.
type ErrorKind int

const (
	// KindIOErr marks an underlying read/write failure.
	KindIOErr ErrorKind = iota
	// KindFormatErr marks a decoder rejecting malformed input.
	KindFormatErr
	// KindDispatchErr marks no plugin being able to start on the root —
	// fatal to the scan.
	KindDispatchErr
	// KindPatternErr marks an invalid glob supplied at configuration
	// time — fatal before the scan begins.
	KindPatternErr
	// KindChannelErr marks cooperative cancellation: the consumer
	// dropped the iterator.
	KindChannelErr
)

func (k ErrorKind) String() string {
	switch k {
	case KindIOErr:
		return "io"
	case KindFormatErr:
		return "format"
	case KindDispatchErr:
		return "dispatch"
	case KindPatternErr:
		return "pattern"
	case KindChannelErr:
		return "channel"
	default:
		return "unknown"
	}
}

// Sentinel errors used with errors.Is/errors.As and as wrap targets for Error.
var (
	ErrNotStartPlugin  = errors.New("scan: this plugin cannot be used as a start plugin")
	ErrNotScanPlugin   = errors.New("scan: this plugin cannot scan other plugin nodes")
	ErrNoPluginToStart = errors.New("scan: no plugin could start on this root")
	ErrPattern         = errors.New("scan: invalid pattern")
	ErrChannelClosed   = errors.New("scan: receiver is gone")
)

// Error is the error value carried on the result stream and returned from
// setup functions. It names which decoder produced it (when applicable), at
// what relative path, and why, grouped into a Kind so a caller can render it
// without inspecting internal types.
type Error struct {
	Kind    ErrorKind
	Plugin  string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	prefix := e.Kind.String()
	if e.Plugin != "" {
		prefix = fmt.Sprintf("%s[%s]", prefix, e.Plugin)
	}
	if e.Path != "" {
		prefix = fmt.Sprintf("%s %q", prefix, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newIOError(plugin, path string, err error) *Error {
	return &Error{Kind: KindIOErr, Plugin: plugin, Path: path, Message: "io failure", Err: err}
}

func newFormatError(plugin, path string, err error) *Error {
	return &Error{Kind: KindFormatErr, Plugin: plugin, Path: path, Message: "decoder rejected input", Err: err}
}

func newDispatchError(root string) *Error {
	return &Error{Kind: KindDispatchErr, Path: root, Message: "no plugin could start", Err: ErrNoPluginToStart}
}

func newChannelError() *Error {
	return &Error{Kind: KindChannelErr, Message: "receiver dropped", Err: ErrChannelClosed}
}

// WrapPluginError classifies an error returned from Plugin.Scan/Start into
// the scan error taxonomy. Decoders that already know their failure kind
// (e.g. io vs format) should return a *scan.Error directly; this is the
// fallback classifier Context.Recurse applies to anything else.
func WrapPluginError(plugin, path string, err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return newFormatError(plugin, path, err)
}
