package restcountries

// Status classifies the outcome of a service call.
type Status int

const (
	// StatusOK means the value holds data.
	StatusOK Status = iota
	// StatusEmpty means the lookup succeeded but matched nothing.
	StatusEmpty
	// StatusFailed means the data could not be obtained; Err has the cause.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Source tells where a result's data came from.
type Source int

const (
	SourceRemote Source = iota
	SourceCache
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceCache:
		return "cache"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is returned by every Service operation in place of an error.
// Err is a diagnostic: it is set on failure and also when the fallback
// dataset substituted for a failed remote fetch.
type Result[T any] struct {
	Value  T
	Status Status
	Source Source
	Err    error
}

// OK reports whether the result carries data.
func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}
