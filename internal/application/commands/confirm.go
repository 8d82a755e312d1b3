package commands

import "ramws/internal/ports"

// ConfirmDestructive asks before an operation that overwrites or discards
// data. Non-interactive callers always proceed without asking.
func ConfirmDestructive(c ports.Confirmer, question string, noninteractive bool) (bool, error) {
	if noninteractive {
		return true, nil
	}
	if c == nil {
		return false, nil
	}
	return c.Confirm(question, true)
}
