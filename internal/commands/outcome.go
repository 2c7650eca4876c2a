package commands

// Outcome is the answer to a modal request: either a value or a cancellation.
type Outcome[T any] struct {
	Value     T
	Cancelled bool
}

func Done[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

func Cancelled[T any]() Outcome[T] {
	return Outcome[T]{Cancelled: true}
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (Outcome[bool], error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (Outcome[bool], error)

func (f ConfirmFunc) Confirm(prompt string) (Outcome[bool], error) {
	return f(prompt)
}

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) (Outcome[bool], error) {
	return Done(true), nil
})
