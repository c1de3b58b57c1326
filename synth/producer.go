package synth

// Producer yields one value per call.
type Producer[T any] interface {
	Next() (T, error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc[T any] func() (T, error)

func (f ProducerFunc[T]) Next() (T, error) { return f() }

// Infallible adapts a generator that cannot fail.
func Infallible[T any](next func() T) Producer[T] {
	return ProducerFunc[T](func() (T, error) { return next(), nil })
}
