package order

import "fmt"

// ValidationKind names the category of data missing from a payload.
type ValidationKind int

const (
	MissingItems ValidationKind = iota + 1
	MissingCustomerFields
)

// ValidationError reports a payload that cannot be accepted.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingItems:
		return "Missing data."
	case MissingCustomerFields:
		return "Missing data: Email, name, street, postal code or city is missing."
	default:
		return "invalid order"
	}
}

// Is matches another ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// Sentinel validation errors for use with errors.Is.
var (
	ErrMissingItems          = &ValidationError{Kind: MissingItems}
	ErrMissingCustomerFields = &ValidationError{Kind: MissingCustomerFields}
)

// StorageOp identifies which side of the read-modify-write failed.
type StorageOp int

const (
	ReadFailure StorageOp = iota + 1
	WriteFailure
)

func (op StorageOp) String() string {
	switch op {
	case ReadFailure:
		return "read"
	case WriteFailure:
		return "write"
	default:
		return "unknown"
	}
}

// StorageError wraps a failure of the underlying order store.
type StorageError struct {
	Op  StorageOp
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("order store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
