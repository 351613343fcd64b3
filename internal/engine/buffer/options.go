package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithChangeListener registers a listener at construction time.
func WithChangeListener(fn ChangeListener) Option {
	return func(b *Buffer) {
		if fn != nil {
			b.listeners = append(b.listeners, fn)
		}
	}
}
