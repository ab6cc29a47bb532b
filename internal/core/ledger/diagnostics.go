package ledger

import (
	"fmt"
	"strings"
)

// Severity ranks a diagnostic.
type Severity string

// Constants for diagnostic severities.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Kind names the pipeline stage that produced a diagnostic.
type Kind string

// Constants for diagnostic kinds.
const (
	KindSchema         Kind = "schema"
	KindNormalization  Kind = "normalization"
	KindSync           Kind = "sync"
	KindClassification Kind = "classification"
	KindAnnotation     Kind = "annotation"
	KindWithholding    Kind = "withholding"
	KindConsistency    Kind = "consistency"
)

// Diagnostic is a structured note about a row or the whole table. Row is the 1-based data
// row, or 0 when the note concerns the table.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Kind     Kind     `json:"kind"`
	Row      int      `json:"row,omitempty"`
	Entity   string   `json:"entity,omitempty"`
	Field    string   `json:"field,omitempty"`
	Old      string   `json:"old,omitempty"`
	New      string   `json:"new,omitempty"`
	Reason   string   `json:"reason"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s/%s]", d.Severity, d.Kind)
	if d.Row > 0 {
		fmt.Fprintf(&b, " linha %d", d.Row)
	}
	if d.Entity != "" {
		fmt.Fprintf(&b, " (%s)", d.Entity)
	}
	if d.Field != "" {
		fmt.Fprintf(&b, " %s", d.Field)
		if d.Old != "" || d.New != "" {
			fmt.Fprintf(&b, ": %q → %q", d.Old, d.New)
		}
	}
	b.WriteString(": ")
	b.WriteString(d.Reason)
	return b.String()
}

// Diagnostics is a batch of notes in emission order.
type Diagnostics []Diagnostic

// OfKind returns the subset with the given kind.
func (ds Diagnostics) OfKind(k Kind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Count returns how many diagnostics have the given severity.
func (ds Diagnostics) Count(s Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == s {
			n++
		}
	}
	return n
}
