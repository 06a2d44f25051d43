package shapes_test

// Sink is declared in the external test package.
type Sink interface {
	Emit(err error)
	error
}
