// Package ledger turns clearing-house tables into double-entry postings.
//
// The package is pure: it performs no I/O and never logs. Every correction, gap or repair
// is returned as a Diagnostic so the caller decides how to surface it.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vcollos/camara/internal/domain"
)

// LargeAmountThreshold is the value above which a posting is flagged for review.
var LargeAmountThreshold = decimal.NewFromInt(100000)

// DateLayout is the DD/MM/YYYY rendering used for the DATA column.
const DateLayout = "02/01/2006"

// Option configures an Engine.
type Option func(*Engine)

// WithReferenceDate fixes the posting date instead of deriving it from the clock.
func WithReferenceDate(d time.Time) Option {
	return func(e *Engine) {
		if !d.IsZero() {
			e.reference = d
		}
	}
}

// WithClock replaces time.Now when deriving the default posting date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine runs the transformation pipeline. It holds no mutable state; one Engine may be
// shared by concurrent callers.
type Engine struct {
	reference time.Time
	now       func() time.Time
}

// New builds an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PostingDate is the date stamped on every entry.
func (e *Engine) PostingDate() time.Time {
	if !e.reference.IsZero() {
		return e.reference
	}
	return LastDayOfPreviousMonth(e.now())
}

// LastDayOfPreviousMonth returns the last calendar day of the month before t, at midnight.
func LastDayOfPreviousMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -1)
}

// Result is the outcome of one Transform call.
type Result struct {
	Detection   Detection             `json:"detection"`
	Records     []domain.SourceRecord `json:"records"`
	Entries     []domain.LedgerEntry  `json:"entries"`
	Primary     int                   `json:"primary"`
	Diagnostics Diagnostics           `json:"diagnostics"`
}

// Withholding returns the synthetic IRRF entries.
func (r *Result) Withholding() []domain.LedgerEntry {
	return r.Entries[r.Primary:]
}

// Table renders the entries as an export table. preserve appends the source columns.
func (r *Result) Table(preserve bool) *domain.Table {
	return ExportTable(r.Entries, preserve)
}

// Transform maps t to ledger entries. t is never modified. The only error is a
// *SchemaError when the columns cannot be recognised; everything else degrades to
// diagnostics.
func (e *Engine) Transform(t *domain.Table) (*Result, error) {
	canonical, det, err := DetectSchema(t)
	if err != nil {
		return nil, fmt.Errorf("detectar formato: %w", err)
	}

	res := &Result{Detection: det}
	res.Diagnostics = append(res.Diagnostics, det.Diagnostics...)

	records, diags := Records(canonical)
	res.Diagnostics = append(res.Diagnostics, diags...)
	res.Diagnostics = append(res.Diagnostics, SynchronizeCodes(records)...)

	snapshot := SnapshotCodes(records)

	classes := make([]Classification, len(records))
	for i, r := range records {
		classes[i] = Classify(r)
		res.Diagnostics = append(res.Diagnostics, classificationGaps(r, classes[i])...)
	}
	res.Diagnostics = append(res.Diagnostics, snapshot.Verify(records, "classificação")...)

	date := e.PostingDate()
	primaries := make([]domain.LedgerEntry, len(records))
	for i, r := range records {
		amount, err := Normalize(r.ValorBruto)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Kind:     KindNormalization,
				Row:      r.Row,
				Entity:   r.NomeSingular,
				Field:    domain.ColValorBruto,
				Old:      r.ValorBruto,
				New:      "0",
				Reason:   err.Error(),
			})
		}
		if amount.Abs().GreaterThan(LargeAmountThreshold) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Kind:     KindNormalization,
				Row:      r.Row,
				Entity:   r.NomeSingular,
				Field:    domain.ColValorBruto,
				Old:      r.ValorBruto,
				New:      FormatAmount(amount),
				Reason:   "valor muito alto, verifique a conversão",
			})
		}

		primaries[i] = Assemble(r, classes[i], amount, date)
		if IsInconsistent(r) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Kind:     KindAnnotation,
				Row:      r.Row,
				Entity:   r.NomeSingular,
				Field:    domain.ColDescricao,
				Old:      r.Descricao,
				Reason:   "custo operacional com menção a mensalidade",
			})
		}
	}

	if diags := snapshot.Verify(records, "montagem"); len(diags) > 0 {
		res.Diagnostics = append(res.Diagnostics, diags...)
		for i := range primaries {
			primaries[i].Source.CodigoTipoRecebimento = records[i].CodigoTipoRecebimento
		}
	}

	withholding, diags := SynthesizeWithholding(records, primaries, date)
	res.Diagnostics = append(res.Diagnostics, diags...)

	res.Records = records
	res.Primary = len(primaries)
	res.Entries = append(primaries, withholding...)
	return res, nil
}

func classificationGaps(r domain.SourceRecord, c Classification) Diagnostics {
	var diags Diagnostics
	reason := fmt.Sprintf("sem regra para tipo=%q, tipoSingular=%q, código=%d", r.Tipo, r.TipoSingular, r.CodigoTipoRecebimento)
	for _, field := range []struct {
		name    string
		account domain.Account
	}{
		{domain.ColDebito, c.Debit},
		{domain.ColCredito, c.Credit},
		{domain.ColHistorico, c.History},
	} {
		if !field.account.IsBlank() {
			continue
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Kind:     KindClassification,
			Row:      r.Row,
			Entity:   r.NomeSingular,
			Field:    field.name,
			Reason:   reason,
		})
	}
	return diags
}
