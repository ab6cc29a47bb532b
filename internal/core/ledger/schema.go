package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/schollz/closestmatch"
	"github.com/shopspring/decimal"

	"github.com/vcollos/camara/internal/domain"
)

// SchemaFormat identifies which shape a loaded table was recognised as.
type SchemaFormat string

// Constants for recognised table shapes.
const (
	FormatCanonical  SchemaFormat = "canonical"
	FormatSimplified SchemaFormat = "simplified"
	FormatMapped     SchemaFormat = "mapped"
)

// ErrUnrecognizedSchema is the sentinel wrapped by every *SchemaError.
var ErrUnrecognizedSchema = errors.New("formato de arquivo não reconhecido")

// SchemaError describes why a table could not be mapped to the canonical columns.
type SchemaError struct {
	Reason      string
	Available   []string
	Expected    []string
	Missing     []string
	Suggestions map[string]string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason)
	fmt.Fprintf(&b, "; colunas disponíveis: %s", strings.Join(e.Available, ", "))
	fmt.Fprintf(&b, "; colunas esperadas: %s", strings.Join(e.Expected, ", "))
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "; ausentes: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Suggestions) > 0 {
		keys := make([]string, 0, len(e.Suggestions))
		for k := range e.Suggestions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		hints := make([]string, 0, len(keys))
		for _, k := range keys {
			hints = append(hints, fmt.Sprintf("%s ≈ %s", k, e.Suggestions[k]))
		}
		fmt.Fprintf(&b, "; sugestões: %s", strings.Join(hints, ", "))
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error { return ErrUnrecognizedSchema }

// Detection reports how a table was recognised and what was changed to make it canonical.
type Detection struct {
	Format      SchemaFormat      `json:"format"`
	Message     string            `json:"message"`
	Mapping     map[string]string `json:"mapping,omitempty"`
	Defaulted   []string          `json:"defaulted,omitempty"`
	Diagnostics Diagnostics       `json:"diagnostics,omitempty"`
}

// columnDefaults fills canonical columns that a mapped file does not provide.
var columnDefaults = map[string]string{
	domain.ColTipo:                     string(domain.DirectionReceivable),
	domain.ColCodigoSingular:           "0",
	domain.ColNomeSingular:             "Não informado",
	domain.ColTipoSingular:             string(domain.EntityOperator),
	domain.ColCodigoTipoRecebimento:    "6",
	domain.ColDescricaoTipoRecebimento: domain.ReceiptOther.Description(),
	domain.ColValorBruto:               "0",
	domain.ColIRRF:                     "0",
	domain.ColDescricao:                "Importado automaticamente",
}

// simplifiedDefaults fills the columns a simplified financial report never has.
var simplifiedDefaults = []struct{ column, value string }{
	{domain.ColTipoSingular, string(domain.EntityOperator)},
	{domain.ColCodigoTipoRecebimento, "6"},
	{domain.ColDescricaoTipoRecebimento, domain.ReceiptOther.Description()},
	{domain.ColIRRF, "0"},
	{domain.ColDescricao, "Importado de relatório simplificado"},
}

// Simplified report column names.
const (
	simpleDueDate    = "Vencimento"
	simpleCode       = "Código"
	simpleName       = "Nome"
	simpleType       = "Tipo"
	simpleReceivable = "Valor a Receber"
	simplePayable    = "Valor a Pagar"
)

// columnAliases lists accepted alternative names per canonical column, in lookup order.
var columnAliases = []struct {
	canonical string
	aliases   []string
}{
	{domain.ColTipo, []string{"tipo", "Type", "TIPO"}},
	{domain.ColCodigoSingular, []string{"codigo_singular", "codigo singular", "CodSingular", "CODIGO_SINGULAR"}},
	{domain.ColNomeSingular, []string{"nome_singular", "nome singular", "NomeSing", "NOME_SINGULAR", "Nome"}},
	{domain.ColTipoSingular, []string{"tipo_singular", "tipo singular", "TipoSing", "TIPO_SINGULAR"}},
	{domain.ColCodigoTipoRecebimento, []string{"codigo_tipo_recebimento", "cod_tipo_receb", "CodTipoReceb", "CODIGO_TIPO_RECEBIMENTO"}},
	{domain.ColDescricaoTipoRecebimento, []string{"descricao_tipo_recebimento", "desc_tipo_receb", "DescTipoReceb", "DESCRICAO_TIPO_RECEBIMENTO"}},
	{domain.ColValorBruto, []string{"valor_bruto", "valor bruto", "Valor", "VALOR_BRUTO", "ValorTotal"}},
	{domain.ColIRRF, []string{"irrf", "ir", "IR", "ImpostoRenda"}},
	{domain.ColDescricao, []string{"descricao", "desc", "Desc", "DESCRICAO", "Observacao"}},
}

var essentialKeywords = []string{"tipo", "singular", "valor", "recebimento"}

const (
	minResolvedColumns   = 5
	maxDefaultedColumns  = 3
	minEssentialKeywords = 2
	minSimplifiedMatches = 4
)

// DetectSchema recognises the shape of t and returns a table carrying the nine canonical
// columns. A canonical table is returned as is; the other shapes produce a new table and t is
// never modified. On failure it returns a *SchemaError; callers skip the file and continue.
func DetectSchema(t *domain.Table) (*domain.Table, Detection, error) {
	if missingColumns(t) == nil {
		return t, Detection{Format: FormatCanonical, Message: "formato padrão da câmara de compensação detectado"}, nil
	}
	if out, det, ok := detectSimplified(t); ok {
		return out, det, nil
	}
	return detectMapped(t)
}

func missingColumns(t *domain.Table) []string {
	var missing []string
	for _, c := range domain.RequiredColumns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

func detectSimplified(t *domain.Table) (*domain.Table, Detection, bool) {
	receivableCol := findColumnContaining(t, simpleReceivable)
	payableCol := findColumnContaining(t, simplePayable)

	matches := 0
	for _, c := range []string{simpleDueDate, simpleCode, simpleName, simpleType} {
		if t.Has(c) {
			matches++
		}
	}
	if receivableCol != "" || payableCol != "" {
		matches++
	}
	if matches < minSimplifiedMatches {
		return nil, Detection{}, false
	}

	out := t.Clone()
	det := Detection{
		Format:  FormatSimplified,
		Message: "formato simplificado convertido para o formato da câmara de compensação",
		Mapping: map[string]string{},
	}
	for from, to := range map[string]string{simpleName: domain.ColNomeSingular, simpleCode: domain.ColCodigoSingular} {
		if out.Has(from) && !out.Has(to) {
			out.Rename(from, to)
			det.Mapping[from] = to
		}
	}

	// Tipo e ValorBruto só são derivados com as duas colunas de valor; com apenas uma, o Tipo
	// do arquivo é mantido e ValorBruto recebe o valor padrão
	if receivableCol != "" && payableCol != "" {
		receivable := make([]decimal.Decimal, len(t.Rows))
		payable := make([]decimal.Decimal, len(t.Rows))
		for i := range t.Rows {
			receivable[i] = simplifiedAmount(t, i, receivableCol, &det)
			payable[i] = simplifiedAmount(t, i, payableCol, &det)
		}
		out.SetColumn(domain.ColValorBruto, func(i int) string {
			if receivable[i].IsPositive() {
				return receivable[i].String()
			}
			return payable[i].String()
		})
		out.SetColumn(domain.ColTipo, func(i int) string {
			if receivable[i].IsPositive() {
				return string(domain.DirectionReceivable)
			}
			return string(domain.DirectionPayable)
		})
	}

	for _, d := range simplifiedDefaults {
		if !out.Has(d.column) {
			value := d.value
			out.SetColumn(d.column, func(int) string { return value })
		}
	}
	fillDefaults(out, &det)
	return out, det, true
}

func simplifiedAmount(t *domain.Table, row int, column string, det *Detection) decimal.Decimal {
	if column == "" {
		return decimal.Zero
	}
	raw := t.Value(row, column)
	v, err := Normalize(raw)
	if err != nil {
		det.Diagnostics = append(det.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Kind:     KindNormalization,
			Row:      row + 1,
			Field:    column,
			Old:      raw,
			New:      "0",
			Reason:   err.Error(),
		})
	}
	return v
}

func findColumnContaining(t *domain.Table, needle string) string {
	if t.Has(needle) {
		return needle
	}
	for _, c := range t.Columns {
		if strings.Contains(c, needle) {
			return c
		}
	}
	return ""
}

func detectMapped(t *domain.Table) (*domain.Table, Detection, error) {
	essential := 0
	for _, kw := range essentialKeywords {
		for _, c := range t.Columns {
			if strings.Contains(strings.ToLower(c), kw) {
				essential++
				break
			}
		}
	}
	if essential < minEssentialKeywords {
		return nil, Detection{}, newSchemaError(t, "arquivo não compatível com a câmara de compensação", missingColumns(t))
	}

	mapping := map[string]string{}
	resolved := 0
	for _, entry := range columnAliases {
		if t.Has(entry.canonical) {
			resolved++
			continue
		}
		for _, alias := range entry.aliases {
			if t.Has(alias) {
				mapping[alias] = entry.canonical
				resolved++
				break
			}
		}
	}
	if resolved < minResolvedColumns {
		return nil, Detection{}, newSchemaError(t, "não foi possível mapear as colunas automaticamente", missingColumns(t))
	}

	out := t.Clone()
	for from, to := range mapping {
		out.Rename(from, to)
	}
	if missing := missingColumns(out); len(missing) > maxDefaultedColumns {
		return nil, Detection{}, newSchemaError(t, "muitas colunas ausentes após o mapeamento", missing)
	}

	det := Detection{
		Format:  FormatMapped,
		Message: "mapeamento de colunas aplicado",
		Mapping: mapping,
	}
	fillDefaults(out, &det)
	return out, det, nil
}

func fillDefaults(t *domain.Table, det *Detection) {
	for _, c := range missingColumns(t) {
		value := columnDefaults[c]
		t.SetColumn(c, func(int) string { return value })
		det.Defaulted = append(det.Defaulted, c)
		det.Diagnostics = append(det.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Kind:     KindSchema,
			Field:    c,
			New:      value,
			Reason:   "coluna não encontrada, usando valor padrão",
		})
	}
}

func newSchemaError(t *domain.Table, reason string, missing []string) *SchemaError {
	return &SchemaError{
		Reason:      reason,
		Available:   append([]string(nil), t.Columns...),
		Expected:    append([]string(nil), domain.RequiredColumns...),
		Missing:     missing,
		Suggestions: suggestColumns(t.Columns, missing),
	}
}

// suggestColumns pairs each missing canonical column with the closest available header.
func suggestColumns(available, missing []string) map[string]string {
	if len(available) == 0 || len(missing) == 0 {
		return nil
	}
	byKey := make(map[string]string, len(available))
	keys := make([]string, 0, len(available))
	for _, c := range available {
		k := strings.ToLower(strings.TrimSpace(c))
		if k == "" {
			continue
		}
		if _, seen := byKey[k]; !seen {
			byKey[k] = c
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	cm := closestmatch.New(keys, []int{2, 3})
	out := map[string]string{}
	for _, m := range missing {
		if match := cm.Closest(strings.ToLower(m)); match != "" {
			out[m] = byKey[match]
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
