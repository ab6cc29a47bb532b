package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcollos/camara/internal/domain"
)

func record(tipo, tipoSingular string, code int, nome, descricao string) domain.SourceRecord {
	return domain.SourceRecord{
		Tipo:                     tipo,
		TipoSingular:             tipoSingular,
		CodigoTipoRecebimento:    code,
		DescricaoTipoRecebimento: domain.ReceiptType(code).Description(),
		NomeSingular:             nome,
		Descricao:                descricao,
	}
}

func TestClassify_DefaultTable(t *testing.T) {
	t.Parallel()

	const (
		pay  = "A pagar"
		recv = "A receber"
		op   = "Operadora"
		pr   = "Prestadora"
	)
	cases := []struct {
		tipo, singular string
		code           int
		nome           string
		want           Classification
	}{
		{pay, op, 1, "Singular X", Classification{31731, 90918, 2005}},
		{pay, op, 2, "Singular X", Classification{40507, 90919, 2005}},
		{pay, op, 3, "Uniodonto do Brasil", Classification{52631, 21898, 361}},
		{pay, op, 3, "Singular X", Classification{52632, 22036, 368}},
		{pay, op, 4, "UNIODONTO DO BRASIL", Classification{52532, 21898, 365}},
		{pay, op, 4, "Singular X", Classification{52532, 22036, 365}},
		{pay, op, 5, "Singular X", Classification{51818, 51818, 179}},
		{pay, op, 6, "Singular X", Classification{51202, 90919, 2005}},

		{pay, pr, 1, "Singular X", Classification{40140, 92003, 2005}},
		{pay, pr, 2, "Singular X", Classification{40140, 92003, 2005}},
		{pay, pr, 3, "Uniodonto do Brasil", Classification{52631, 21898, 361}},
		{pay, pr, 3, "Singular X", Classification{52632, 22036, 368}},
		{pay, pr, 4, "Singular X", Classification{52532, 22036, 365}},
		{pay, pr, 5, "Singular X", Classification{51818, 51818, 179}},
		{pay, pr, 6, "Singular X", Classification{51202, 90919, 2005}},

		{recv, op, 1, "Singular X", Classification{19958, 30203, 1021}},
		{recv, op, 2, "Singular X", Classification{85433, 40413, 1021}},
		{recv, op, 3, "Singular X", Classification{84679, 30069, 33}},
		{recv, op, 4, "Singular X", Classification{84679, 30071, 228}},
		{recv, op, 5, "Singular X", Classification{84679, 31426, 30}},
		{recv, op, 6, "Singular X", Classification{19253, 30127, 1021}},

		{recv, pr, 1, "Singular X", Classification{19253, 30203, 1021}},
		{recv, pr, 2, "Singular X", Classification{19253, 40413, 1021}},
		{recv, pr, 3, "Uniodonto do Brasil", Classification{84679, 30069, 33}},
		{recv, pr, 4, "Singular X", Classification{84679, 30071, 228}},
		{recv, pr, 5, "Singular X", Classification{84679, 31426, 30}},
		{recv, pr, 6, "Singular X", Classification{19253, 30127, 1021}},
	}
	for _, tc := range cases {
		got := Classify(record(tc.tipo, tc.singular, tc.code, tc.nome, "lançamento mensal"))
		require.Equalf(t, tc.want, got, "%s/%s/%d/%s", tc.tipo, tc.singular, tc.code, tc.nome)
	}
}

func TestClassify_TotalOverTableDomain(t *testing.T) {
	t.Parallel()

	for _, dir := range []string{"A pagar", "A receber"} {
		for _, kind := range []string{"Operadora", "Prestadora"} {
			for _, code := range domain.ReceiptTypes() {
				got := Classify(record(dir, kind, int(code), "Singular X", ""))
				require.False(t, got.Debit.IsBlank(), "%s/%s/%d debit", dir, kind, code)
				require.False(t, got.Credit.IsBlank(), "%s/%s/%d credit", dir, kind, code)
				require.False(t, got.History.IsBlank(), "%s/%s/%d history", dir, kind, code)
			}
		}
	}
}

func TestClassify_UncoveredCombinationsAreBlank(t *testing.T) {
	t.Parallel()

	require.Equal(t, Classification{}, Classify(record("Estorno", "Operadora", 1, "X", "")))
	require.Equal(t, Classification{History: 2005}, Classify(record("A pagar", "Cooperado", 1, "X", "")))
	require.Equal(t, Classification{}, Classify(record("A pagar", "Operadora", 9, "X", "")))
}

func TestClassify_NationalFederationMatchIgnoresCaseOnly(t *testing.T) {
	t.Parallel()

	for _, nome := range []string{"Uniodonto do Brasil", "  uniodonto do brasil ", "UNIODONTO DO BRASIL"} {
		got := Classify(record("A pagar", "Operadora", 3, nome, ""))
		require.Equal(t, domain.Account(52631), got.Debit, nome)
	}
	for _, nome := range []string{"Uniodonto do Brasil Sul", "Uniodonto-do-Brasil", "UNIODONTO  DO BRASIL"} {
		got := Classify(record("A pagar", "Operadora", 3, nome, ""))
		require.Equal(t, domain.Account(52632), got.Debit, nome)
	}
}

func TestClassify_ConventionOverridesTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  domain.SourceRecord
		want Classification
	}{
		{"payable accented", record("A pagar", "Operadora", 1, "X", "Repasse convenção março"), Classification{53742, 21898, 2005}},
		{"payable unaccented", record("A pagar", "Prestadora", 3, "Uniodonto do Brasil", "CONVENCAO"), Classification{53742, 21898, 2005}},
		{"payable paulista", record("A pagar", "Operadora", 2, "X", "Convenção Paulista"), Classification{53742, 22036, 2005}},
		{"receivable", record("A receber", "Operadora", 6, "X", "convenção"), Classification{84679, 11021, 1021}},
		{"receivable paulista", record("A receber", "Prestadora", 1, "X", "Convencao paulista"), Classification{84679, 19265, 1021}},
		{"beats code 5 keyword", record("A pagar", "Operadora", 5, "X", "convenção LGPD"), Classification{53742, 21898, 2005}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.rec), tc.name)
	}
}

func TestClassify_ConventionWithUnknownDirectionFallsThrough(t *testing.T) {
	t.Parallel()

	require.Equal(t, Classification{}, Classify(record("Estorno", "Operadora", 1, "X", "convenção")))
}

// Code 5 with LGPD/atuário keeps the asymmetric rules of the legacy routine: the receivable
// debit is shared by both keywords while the receivable credit is keyword specific, and any
// direction other than "A receber" takes the payable branch. Recorded as observed behaviour.
func TestClassify_InterestKeywordOverride(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  domain.SourceRecord
		want Classification
	}{
		{"payable lgpd", record("A pagar", "Operadora", 5, "X", "Adequação LGPD"), Classification{52129, 22036, 2005}},
		{"payable atuario accented", record("A pagar", "Prestadora", 5, "X", "cálculo atuário"), Classification{52451, 22036, 2005}},
		{"payable atuario unaccented", record("A pagar", "Operadora", 5, "X", "ATUARIO"), Classification{52451, 22036, 2005}},
		{"payable both prefers lgpd", record("A pagar", "Operadora", 5, "X", "LGPD e atuário"), Classification{52129, 22036, 2005}},
		{"receivable lgpd", record("A receber", "Operadora", 5, "X", "lgpd"), Classification{84679, 30173, 1021}},
		{"receivable atuario", record("A receber", "Prestadora", 5, "X", "Atuário"), Classification{84679, 30088, 1021}},
		{"receivable without keyword", record("A receber", "Operadora", 5, "X", "juros"), Classification{84679, 31426, 30}},
		{"other code ignores keyword", record("A pagar", "Operadora", 6, "X", "LGPD"), Classification{51202, 90919, 2005}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.rec), tc.name)
	}

	// direção desconhecida cai no ramo "a pagar" apenas nesta camada
	got := Classify(record("Estorno", "Operadora", 5, "X", "LGPD"))
	require.Equal(t, Classification{52129, 22036, 2005}, got)
}
