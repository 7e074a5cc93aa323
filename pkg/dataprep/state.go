package dataprep

// fitState is either unfit or fit with a table of type T.
type fitState[T any] interface {
	table() (T, error)
}

type unfit[T any] struct{}

func (unfit[T]) table() (T, error) {
	var zero T
	return zero, ErrNotFitted
}

type fitted[T any] struct{ t T }

func (f fitted[T]) table() (T, error) { return f.t, nil }

// lookup treats a nil state, as found in a zero-value builder, as unfit.
func lookup[T any](s fitState[T]) (T, error) {
	if s == nil {
		return unfit[T]{}.table()
	}
	return s.table()
}
