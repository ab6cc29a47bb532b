package ledger

import (
	"strings"

	"github.com/vcollos/camara/internal/domain"
)

// NationalFederation is the singular whose maintenance and marketing fees post to the
// central accounts instead of the regional federation ones.
const NationalFederation = "UNIODONTO DO BRASIL"

// Classification is the (debit, credit, history) triple for one record. Blank accounts mean
// no posting was generated for that field.
type Classification struct {
	Debit   domain.Account `json:"debito"`
	Credit  domain.Account `json:"credito"`
	History domain.Account `json:"historico"`
}

// Convention-override accounts.
const (
	conventionPayableDebit             domain.Account = 53742
	conventionReceivableDebit          domain.Account = 84679
	conventionPayableCredit            domain.Account = 21898
	conventionPayableCreditPaulista    domain.Account = 22036
	conventionReceivableCredit         domain.Account = 11021
	conventionReceivableCreditPaulista domain.Account = 19265
	conventionPayableHistory           domain.Account = 2005
	conventionReceivableHistory        domain.Account = 1021
)

// Interest (code 5) keyword-override accounts.
const (
	keywordReceivableDebit           domain.Account = 84679
	keywordPayableDebitLGPD          domain.Account = 52129
	keywordPayableDebitActuarial     domain.Account = 52451
	keywordReceivableCreditLGPD      domain.Account = 30173
	keywordReceivableCreditActuarial domain.Account = 30088
	keywordPayableCredit             domain.Account = 22036
	keywordReceivableHistory         domain.Account = 1021
	keywordPayableHistory            domain.Account = 2005
)

// facts are the classification inputs derived once per record.
type facts struct {
	direction  domain.Direction
	kind       domain.EntityKind
	code       domain.ReceiptType
	national   bool
	convention bool
	paulista   bool
	lgpd       bool
	actuarial  bool
}

func factsOf(r domain.SourceRecord) facts {
	narrative := foldText(r.Descricao)
	return facts{
		direction:  r.Direction(),
		kind:       r.EntityKind(),
		code:       domain.ReceiptType(r.CodigoTipoRecebimento),
		national:   strings.EqualFold(strings.TrimSpace(r.NomeSingular), NationalFederation),
		convention: containsWord(narrative, "convenção"),
		paulista:   containsWord(narrative, "paulista"),
		lgpd:       containsWord(narrative, "lgpd"),
		actuarial:  containsWord(narrative, "atuário"),
	}
}

// rule resolves one field; ok=false defers to the next layer.
type rule func(f facts) (domain.Account, bool)

// Classify maps a record to its posting accounts. Each field is resolved independently
// through the same layer order: convention override, code-5 keyword override, default
// table. It is total: uncovered combinations yield blank accounts.
func Classify(r domain.SourceRecord) Classification {
	f := factsOf(r)
	return Classification{
		Debit:   firstMatch(f, conventionDebit, keywordDebit, tableDebit),
		Credit:  firstMatch(f, conventionCredit, keywordCredit, tableCredit),
		History: firstMatch(f, conventionHistory, keywordHistory, tableHistory),
	}
}

func firstMatch(f facts, layers ...rule) domain.Account {
	for _, layer := range layers {
		if a, ok := layer(f); ok {
			return a
		}
	}
	return 0
}

// --- camada 1: convenção ---

func conventionDebit(f facts) (domain.Account, bool) {
	if !f.convention {
		return 0, false
	}
	switch f.direction {
	case domain.DirectionPayable:
		return conventionPayableDebit, true
	case domain.DirectionReceivable:
		return conventionReceivableDebit, true
	}
	return 0, false
}

func conventionCredit(f facts) (domain.Account, bool) {
	if !f.convention {
		return 0, false
	}
	switch f.direction {
	case domain.DirectionPayable:
		if f.paulista {
			return conventionPayableCreditPaulista, true
		}
		return conventionPayableCredit, true
	case domain.DirectionReceivable:
		if f.paulista {
			return conventionReceivableCreditPaulista, true
		}
		return conventionReceivableCredit, true
	}
	return 0, false
}

func conventionHistory(f facts) (domain.Account, bool) {
	if !f.convention {
		return 0, false
	}
	switch f.direction {
	case domain.DirectionPayable:
		return conventionPayableHistory, true
	case domain.DirectionReceivable:
		return conventionReceivableHistory, true
	}
	return 0, false
}

// --- camada 2: código 5 com LGPD/atuário ---
// Anything that is not "A receber" takes the payable branch here.

func keywordDebit(f facts) (domain.Account, bool) {
	if f.code != domain.ReceiptInterest {
		return 0, false
	}
	if f.direction == domain.DirectionReceivable {
		if f.lgpd || f.actuarial {
			return keywordReceivableDebit, true
		}
		return 0, false
	}
	switch {
	case f.lgpd:
		return keywordPayableDebitLGPD, true
	case f.actuarial:
		return keywordPayableDebitActuarial, true
	}
	return 0, false
}

func keywordCredit(f facts) (domain.Account, bool) {
	if f.code != domain.ReceiptInterest {
		return 0, false
	}
	if f.direction == domain.DirectionReceivable {
		switch {
		case f.lgpd:
			return keywordReceivableCreditLGPD, true
		case f.actuarial:
			return keywordReceivableCreditActuarial, true
		}
		return 0, false
	}
	if f.lgpd || f.actuarial {
		return keywordPayableCredit, true
	}
	return 0, false
}

func keywordHistory(f facts) (domain.Account, bool) {
	if f.code != domain.ReceiptInterest || !(f.lgpd || f.actuarial) {
		return 0, false
	}
	if f.direction == domain.DirectionReceivable {
		return keywordReceivableHistory, true
	}
	return keywordPayableHistory, true
}

// --- camada 3: tabela padrão ---

type tableKey struct {
	direction domain.Direction
	kind      domain.EntityKind
	code      domain.ReceiptType
}

type historyKey struct {
	direction domain.Direction
	code      domain.ReceiptType
}

// federationPair holds the account for the national federation and for everyone else.
type federationPair struct {
	national, regional domain.Account
}

func fixed(a domain.Account) federationPair { return federationPair{a, a} }

func (p federationPair) pick(national bool) domain.Account {
	if national {
		return p.national
	}
	return p.regional
}

const (
	pagar     = domain.DirectionPayable
	receber   = domain.DirectionReceivable
	operadora = domain.EntityOperator
	prestador = domain.EntityProvider
)

var debitTable = map[tableKey]federationPair{
	{pagar, operadora, 1}: fixed(31731),
	{pagar, operadora, 2}: fixed(40507),
	{pagar, operadora, 3}: {52631, 52632},
	{pagar, operadora, 4}: fixed(52532),
	{pagar, operadora, 5}: fixed(51818),
	{pagar, operadora, 6}: fixed(51202),

	{pagar, prestador, 1}: fixed(40140),
	{pagar, prestador, 2}: fixed(40140),
	{pagar, prestador, 3}: {52631, 52632},
	{pagar, prestador, 4}: fixed(52532),
	{pagar, prestador, 5}: fixed(51818),
	{pagar, prestador, 6}: fixed(51202),

	{receber, operadora, 1}: fixed(19958),
	{receber, operadora, 2}: fixed(85433),
	{receber, operadora, 3}: fixed(84679),
	{receber, operadora, 4}: fixed(84679),
	{receber, operadora, 5}: fixed(84679),
	{receber, operadora, 6}: fixed(19253),

	{receber, prestador, 1}: fixed(19253),
	{receber, prestador, 2}: fixed(19253),
	{receber, prestador, 3}: fixed(84679),
	{receber, prestador, 4}: fixed(84679),
	{receber, prestador, 5}: fixed(84679),
	{receber, prestador, 6}: fixed(19253),
}

var creditTable = map[tableKey]federationPair{
	{pagar, operadora, 1}: fixed(90918),
	{pagar, operadora, 2}: fixed(90919),
	{pagar, operadora, 3}: {21898, 22036},
	{pagar, operadora, 4}: {21898, 22036},
	{pagar, operadora, 5}: fixed(51818),
	{pagar, operadora, 6}: fixed(90919),

	{pagar, prestador, 1}: fixed(92003),
	{pagar, prestador, 2}: fixed(92003),
	{pagar, prestador, 3}: {21898, 22036},
	{pagar, prestador, 4}: {21898, 22036},
	{pagar, prestador, 5}: fixed(51818),
	{pagar, prestador, 6}: fixed(90919),

	{receber, operadora, 1}: fixed(30203),
	{receber, operadora, 2}: fixed(40413),
	{receber, operadora, 3}: fixed(30069),
	{receber, operadora, 4}: fixed(30071),
	{receber, operadora, 5}: fixed(31426),
	{receber, operadora, 6}: fixed(30127),

	{receber, prestador, 1}: fixed(30203),
	{receber, prestador, 2}: fixed(40413),
	{receber, prestador, 3}: fixed(30069),
	{receber, prestador, 4}: fixed(30071),
	{receber, prestador, 5}: fixed(31426),
	{receber, prestador, 6}: fixed(30127),
}

// History does not depend on the singular kind.
var historyTable = map[historyKey]federationPair{
	{pagar, 1}: fixed(2005),
	{pagar, 2}: fixed(2005),
	{pagar, 3}: {361, 368},
	{pagar, 4}: fixed(365),
	{pagar, 5}: fixed(179),
	{pagar, 6}: fixed(2005),

	{receber, 1}: fixed(1021),
	{receber, 2}: fixed(1021),
	{receber, 3}: fixed(33),
	{receber, 4}: fixed(228),
	{receber, 5}: fixed(30),
	{receber, 6}: fixed(1021),
}

func tableDebit(f facts) (domain.Account, bool) {
	p, ok := debitTable[tableKey{f.direction, f.kind, f.code}]
	return p.pick(f.national), ok
}

func tableCredit(f facts) (domain.Account, bool) {
	p, ok := creditTable[tableKey{f.direction, f.kind, f.code}]
	return p.pick(f.national), ok
}

func tableHistory(f facts) (domain.Account, bool) {
	p, ok := historyTable[historyKey{f.direction, f.code}]
	return p.pick(f.national), ok
}
