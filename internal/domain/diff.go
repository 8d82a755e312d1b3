package domain

import "strings"

// DiffSummary counts pending changes for one or more path pairs
type DiffSummary struct {
	Added   int `json:"added"`
	Changed int `json:"changed"`
	Deleted int `json:"deleted"`
}

// Add returns the element-wise sum of two summaries
func (d DiffSummary) Add(other DiffSummary) DiffSummary {
	return DiffSummary{
		Added:   d.Added + other.Added,
		Changed: d.Changed + other.Changed,
		Deleted: d.Deleted + other.Deleted,
	}
}

// Total returns the number of pending entries
func (d DiffSummary) Total() int {
	return d.Added + d.Changed + d.Deleted
}

// IsZero reports whether nothing is pending
func (d DiffSummary) IsZero() bool {
	return d.Total() == 0
}

// ChangeKind classifies one itemization line
type ChangeKind int

const (
	ChangeIgnored ChangeKind = iota
	ChangeAdded
	ChangeChanged
	ChangeDeleted
)

const (
	newFilePrefix  = ">f+++++++++"
	deletingPrefix = "*deleting"
)

// changedPrefixes mark content transfer, metadata-only updates and
// device entries respectively.
var changedPrefixes = []string{">f", ".f", "cD"}

// ClassifyLine maps an rsync --itemize-changes line to a ChangeKind.
// The new-file prefix must be tested before the generic ">f" prefix.
func ClassifyLine(line string) ChangeKind {
	if strings.HasPrefix(line, newFilePrefix) {
		return ChangeAdded
	}
	if strings.HasPrefix(line, deletingPrefix) {
		return ChangeDeleted
	}
	for _, p := range changedPrefixes {
		if strings.HasPrefix(line, p) {
			return ChangeChanged
		}
	}
	return ChangeIgnored
}

// Summarize classifies every line of an itemization
func Summarize(changes *ItemizedChanges) DiffSummary {
	var s DiffSummary
	if changes == nil {
		return s
	}
	for _, line := range changes.Lines {
		switch ClassifyLine(line) {
		case ChangeAdded:
			s.Added++
		case ChangeChanged:
			s.Changed++
		case ChangeDeleted:
			s.Deleted++
		}
	}
	return s
}
