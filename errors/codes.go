package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Contract errors (caller bugs)
const (
	// ErrCodeShapeMismatch indicates an input does not have the required number of elements.
	ErrCodeShapeMismatch ErrorCode = "SHAPE_MISMATCH"
	// ErrCodeArityMismatch indicates a function was called with an unsupported number of arguments.
	ErrCodeArityMismatch ErrorCode = "ARITY_MISMATCH"
	// ErrCodeTypeMismatch indicates a value does not have the type a stage expects.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeNotIterable indicates a value cannot be traversed as a sequence.
	ErrCodeNotIterable ErrorCode = "NOT_ITERABLE"
	// ErrCodeInvalidStage indicates a nil or otherwise unusable stage.
	ErrCodeInvalidStage ErrorCode = "INVALID_STAGE"
)

// Numeric errors
const (
	// ErrCodeEmptyInput indicates an aggregate was requested over no values.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
)

// Input and configuration errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates the configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var contractCodes = map[ErrorCode]bool{
	ErrCodeShapeMismatch: true,
	ErrCodeArityMismatch: true,
	ErrCodeTypeMismatch:  true,
	ErrCodeNotIterable:   true,
	ErrCodeInvalidStage:  true,
}

// IsContractCode returns true if the code reports a caller bug rather than bad data.
func IsContractCode(code ErrorCode) bool {
	return contractCodes[code]
}
