package csg

// Error is the flat error taxonomy shared by the CSG core and its
// collaborators. Errors are carried as explicit value state (most notably
// inside Geometry) rather than raised, so a batch of unrelated operations
// can continue after one of them fails.
type Error int

const (
	// NoError marks a valid result.
	NoError Error = iota
	// AbortedError reports that an inspection hook stopped an operation
	// before it finished.
	AbortedError
	// RecursionError reports that BSP tree construction exceeded the
	// configured recursion limit.
	RecursionError
	// NotSupportedError reports an unknown primitive name or an
	// unsupported file format.
	NotSupportedError
	// FileSystemError reports an I/O failure while reading or writing
	// geometry files.
	FileSystemError
	// FileFormatError reports malformed textual input.
	FileFormatError
)

func (e Error) String() string {
	switch e {
	case NoError:
		return "no error"
	case AbortedError:
		return "operation aborted"
	case RecursionError:
		return "recursion limit exceeded"
	case NotSupportedError:
		return "not supported"
	case FileSystemError:
		return "file system error"
	case FileFormatError:
		return "file format error"
	default:
		return "unknown error"
	}
}

// Error implements the error interface so an Error can be wrapped or logged
// directly. Callers should still compare against the enumerated constants
// instead of inspecting messages.
func (e Error) Error() string {
	return e.String()
}
