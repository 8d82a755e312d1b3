package ports

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	// Confirm blocks until the operator answers. Empty input selects defaultYes.
	Confirm(question string, defaultYes bool) (bool, error)
}
