package envutil

// Option modifies a Reader. Accessors such as String and Bool take options so
// callers can attach defaults and validation inline.
type Option[T any] func(Reader[T]) Reader[T]

// Default supplies dfl when the variable is not set.
func Default[T any](dfl T) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithDefault(dfl)
	}
}

// Validate runs f on a present value; a non-nil result becomes the Reader's error.
func Validate[T any](f func(T) error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return Map(rdr, func(val T) (T, error) {
			return val, f(val)
		})
	}
}
