// package domain/models.go
package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction indica se a transação da câmara é a pagar ou a receber.
type Direction string

// Constants for transaction directions, as they appear in the clearing-house exports.
const (
	DirectionPayable    Direction = "A pagar"
	DirectionReceivable Direction = "A receber"
)

// ParseDirection maps a raw Tipo cell to a Direction. Unknown values are kept verbatim.
func ParseDirection(raw string) Direction {
	s := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(s, string(DirectionPayable)):
		return DirectionPayable
	case strings.EqualFold(s, string(DirectionReceivable)):
		return DirectionReceivable
	}
	return Direction(s)
}

// Known reports whether d is one of the two recognised directions.
func (d Direction) Known() bool {
	return d == DirectionPayable || d == DirectionReceivable
}

// EntityKind classifica a singular como operadora ou prestadora.
type EntityKind string

// Constants for singular kinds.
const (
	EntityOperator EntityKind = "Operadora"
	EntityProvider EntityKind = "Prestadora"
)

// ParseEntityKind maps a raw TipoSingular cell to an EntityKind. Unknown values are kept verbatim.
func ParseEntityKind(raw string) EntityKind {
	s := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(s, string(EntityOperator)):
		return EntityOperator
	case strings.EqualFold(s, string(EntityProvider)):
		return EntityProvider
	}
	return EntityKind(s)
}

// ReceiptType is the closed set of receipt-type codes (CodigoTipoRecebimento).
type ReceiptType int

// Constants for receipt types.
const (
	ReceiptPrePayment    ReceiptType = 1
	ReceiptOperatingCost ReceiptType = 2
	ReceiptMaintenance   ReceiptType = 3
	ReceiptMarketing     ReceiptType = 4
	ReceiptInterest      ReceiptType = 5
	ReceiptOther         ReceiptType = 6
)

var receiptDescriptions = map[ReceiptType]string{
	ReceiptPrePayment:    "Repasse em Pré-pagamento",
	ReceiptOperatingCost: "Repasse em Custo Operacional",
	ReceiptMaintenance:   "Taxa de Manutenção",
	ReceiptMarketing:     "Fundo de Marketing",
	ReceiptInterest:      "Juros",
	ReceiptOther:         "Outros",
}

var receiptByDescription = func() map[string]ReceiptType {
	m := make(map[string]ReceiptType, len(receiptDescriptions))
	for code, desc := range receiptDescriptions {
		m[desc] = code
	}
	return m
}()

// ReceiptTypes returns every receipt type in code order.
func ReceiptTypes() []ReceiptType {
	return []ReceiptType{
		ReceiptPrePayment, ReceiptOperatingCost, ReceiptMaintenance,
		ReceiptMarketing, ReceiptInterest, ReceiptOther,
	}
}

// Valid reports whether r is one of the six catalogued codes.
func (r ReceiptType) Valid() bool {
	_, ok := receiptDescriptions[r]
	return ok
}

// Description returns the canonical description for r, or "" when r is not valid.
func (r ReceiptType) Description() string {
	return receiptDescriptions[r]
}

// ReceiptTypeFromDescription resolves a canonical description (exact match after trimming).
func ReceiptTypeFromDescription(desc string) (ReceiptType, bool) {
	r, ok := receiptByDescription[strings.TrimSpace(desc)]
	return r, ok
}

// CoerceReceiptType applies the numeric coercion used everywhere a code is consumed:
// anything outside 1..6 becomes ReceiptOther.
func CoerceReceiptType(code int) ReceiptType {
	r := ReceiptType(code)
	if !r.Valid() {
		return ReceiptOther
	}
	return r
}

// Account is an accounting code used for debit, credit and history columns. Zero means blank.
type Account int

// IsBlank reports whether no account was produced.
func (a Account) IsBlank() bool { return a == 0 }

func (a Account) String() string {
	if a == 0 {
		return ""
	}
	return strconv.Itoa(int(a))
}

// MarshalText renders blank accounts as an empty string.
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// --- Modelos da Câmara de Compensação ---

// SourceRecord representa uma linha de transação do arquivo da câmara, já mapeada para o formato canônico.
type SourceRecord struct {
	Row                      int    `json:"row"`
	Tipo                     string `json:"tipo"`
	CodigoSingular           int    `json:"codigo_singular"`
	NomeSingular             string `json:"nome_singular"`
	TipoSingular             string `json:"tipo_singular"`
	CodigoTipoRecebimento    int    `json:"codigo_tipo_recebimento"`
	DescricaoTipoRecebimento string `json:"descricao_tipo_recebimento"`
	ValorBruto               string `json:"valor_bruto"`
	IRRF                     string `json:"irrf"`
	Descricao                string `json:"descricao"`
}

// Direction parses the Tipo field.
func (r SourceRecord) Direction() Direction { return ParseDirection(r.Tipo) }

// EntityKind parses the TipoSingular field.
func (r SourceRecord) EntityKind() EntityKind { return ParseEntityKind(r.TipoSingular) }

// ReceiptType returns the coerced receipt-type code.
func (r SourceRecord) ReceiptType() ReceiptType { return CoerceReceiptType(r.CodigoTipoRecebimento) }

// LedgerEntry representa um lançamento contábil de saída (seis campos) e as colunas de origem preservadas.
type LedgerEntry struct {
	Debito      Account         `json:"debito"`
	Credito     Account         `json:"credito"`
	Historico   Account         `json:"historico"`
	Data        time.Time       `json:"data"`
	Valor       decimal.Decimal `json:"valor"`
	Complemento string          `json:"complemento"`
	Source      SourceRecord    `json:"source"`
}
