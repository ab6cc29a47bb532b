package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vcollos/camara/internal/domain"
)

func TestCodeSnapshot_NoDriftNoDiagnostics(t *testing.T) {
	t.Parallel()

	records := []domain.SourceRecord{{Row: 1, CodigoTipoRecebimento: 3}, {Row: 2, CodigoTipoRecebimento: 5}}
	snap := SnapshotCodes(records)
	require.Equal(t, 2, snap.Len())
	require.Empty(t, snap.Verify(records, "classificação"))
}

func TestCodeSnapshot_RestoresDivergingRows(t *testing.T) {
	t.Parallel()

	records := []domain.SourceRecord{
		{Row: 1, NomeSingular: "Singular A", CodigoTipoRecebimento: 3, Descricao: "taxa"},
		{Row: 2, NomeSingular: "Singular B", CodigoTipoRecebimento: 1},
	}
	snap := SnapshotCodes(records)

	records[0].CodigoTipoRecebimento = 5
	diags := snap.Verify(records, "montagem")

	require.Len(t, diags, 1)
	d := diags[0]
	require.Equal(t, SeverityCritical, d.Severity)
	require.Equal(t, KindConsistency, d.Kind)
	require.Equal(t, 1, d.Row)
	require.Equal(t, "Singular A", d.Entity)
	require.Equal(t, "3", d.Old)
	require.Equal(t, "5", d.New)
	require.Contains(t, d.Reason, "montagem")
	require.Contains(t, d.Reason, "taxa")

	require.Equal(t, 3, records[0].CodigoTipoRecebimento)
	require.Equal(t, 1, records[1].CodigoTipoRecebimento)
}

func TestCodeSnapshot_ComparesCoercedForm(t *testing.T) {
	t.Parallel()

	records := []domain.SourceRecord{{Row: 1, CodigoTipoRecebimento: 9}}
	snap := SnapshotCodes(records)

	diags := snap.Verify(records, "classificação")
	require.Len(t, diags, 1)
	require.Equal(t, 6, records[0].CodigoTipoRecebimento)
}

func TestCodeSnapshot_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	records := []domain.SourceRecord{{CodigoTipoRecebimento: 2}}
	snap := SnapshotCodes(records)
	records[0].CodigoTipoRecebimento = 4

	snap.Verify(records, "x")
	require.Equal(t, 2, records[0].CodigoTipoRecebimento)
}

func TestCodeSnapshot_LengthChange(t *testing.T) {
	t.Parallel()

	snap := SnapshotCodes([]domain.SourceRecord{{CodigoTipoRecebimento: 1}, {CodigoTipoRecebimento: 2}})
	diags := snap.Verify([]domain.SourceRecord{{CodigoTipoRecebimento: 1}}, "montagem")
	require.Len(t, diags, 1)
	require.Equal(t, SeverityCritical, diags[0].Severity)
	require.Zero(t, diags[0].Row)
}
