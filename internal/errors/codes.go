package errors

// Code classifies an error for the layers above. Recoverable codes
// describe something the user can correct and become corrective reply
// text in the chat handler; CodeInternal means a server fault.
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Recoverable reports whether the error is the user's to fix: bad
// input, a missing or duplicate record, or drained resources.
func (c Code) Recoverable() bool {
	switch c {
	case CodeInvalidArgument, CodeNotFound, CodeAlreadyExists,
		CodeResourceExhausted, CodeFailedPrecondition:
		return true
	default:
		return false
	}
}
