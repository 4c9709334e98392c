package db

// Op constants name the failing operation for error context.
const (
	OpGet         = "GET"
	OpIncrBy      = "INCRBY"
	OpExpire      = "EXPIRE"
	OpZIncrBy     = "ZINCRBY"
	OpZRevRange   = "ZREVRANGE"
	OpMultiSearch = "multi_search"
	OpUnionSearch = "multi_search_union"
	OpHealth      = "health"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
