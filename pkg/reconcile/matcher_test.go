package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayjaychukwu/reconcilation/pkg/normalize"
	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
	"github.com/jayjaychukwu/reconcilation/pkg/tabular"
)

func normalized(t *testing.T, csv string) *tabular.Dataset {
	t.Helper()
	ds, err := tabular.ParseCSV([]byte(csv), "source")
	require.NoError(t, err)
	norm, err := normalize.Normalize(ds, "source")
	require.NoError(t, err)
	return norm
}

func TestFindMissingSelfIsEmpty(t *testing.T) {
	ds := normalized(t, "id,name,date,amount\n1,a,2024-01-01,100\n2,b,2024-01-02,200\n")
	assert.Empty(t, reconcile.FindMissing(ds, ds))
}

func TestFindMissingDisjointSets(t *testing.T) {
	a := normalized(t, "id,name,date,amount\n1,a,2024-01-01,100\n")
	b := normalized(t, "id,name,date,amount\n2,b,2024-01-02,200\n")

	missingFromB := reconcile.FindMissing(a, b)
	missingFromA := reconcile.FindMissing(b, a)

	require.Len(t, missingFromB, 1)
	require.Len(t, missingFromA, 1)
	assert.Equal(t, "a", missingFromB[0].Name)
	assert.Equal(t, "b", missingFromA[0].Name)
}

func TestFindMissingKeyIsIDAndName(t *testing.T) {
	// Same id but different name does not match on the two-column key.
	have := normalized(t, "id,name,date,amount\n1,alpha,2024-01-01,100\n2,same,2024-01-01,50\n")
	want := normalized(t, "id,name,date,amount\n1,beta,2024-01-01,100\n2,same,2024-12-31,999\n")

	missing := reconcile.FindMissing(have, want)
	require.Len(t, missing, 1)
	assert.Equal(t, "alpha", missing[0].Name)
}

func TestFindMissingPreservesInputOrder(t *testing.T) {
	have := normalized(t, "id,name,date,amount\n3,c,2024-01-03,3\n1,a,2024-01-01,1\n2,b,2024-01-02,2\n")
	want := normalized(t, "id,name,date,amount\n1,a,2024-01-01,1\n")

	missing := reconcile.FindMissing(have, want)
	require.Len(t, missing, 2)
	assert.Equal(t, "c", missing[0].Name)
	assert.Equal(t, "b", missing[1].Name)
}

func TestFindDiscrepanciesSkipsUnmatchedRows(t *testing.T) {
	source := normalized(t, "id,name,date,amount\n1,a,2024-01-01,100\n9,z,2024-01-01,1\n")
	target := normalized(t, "id,name,date,amount\n1,a,2024-01-01,100\n8,y,2024-01-01,2\n")

	assert.Empty(t, reconcile.FindDiscrepancies(source, target))
}

func TestFindDiscrepanciesReportsOnlyDifferingFields(t *testing.T) {
	source := normalized(t, "id,name,date,amount\n1,a,2024-01-01,100\n2,b,2024-01-02,10\n")
	target := normalized(t, "id,name,date,amount\n1,a,2024-02-02,250\n2,b,2024-01-02,10\n")

	entries := reconcile.FindDiscrepancies(source, target)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, 1.0, entry.ID)
	require.Len(t, entry.Fields, 2)
	assert.Equal(t, "date", entry.Fields[0].Field)
	assert.Equal(t, "2024-01-01", entry.Fields[0].Source)
	assert.Equal(t, "2024-02-02", entry.Fields[0].Target)
	assert.Equal(t, "amount", entry.Fields[1].Field)
	assert.Equal(t, 100.0, entry.Fields[1].Source)
	assert.Equal(t, 250.0, entry.Fields[1].Target)
}

func TestStatus(t *testing.T) {
	assert.True(t, reconcile.StatusProcessing.Valid())
	assert.True(t, reconcile.StatusSuccess.Terminal())
	assert.True(t, reconcile.StatusFailed.Terminal())
	assert.False(t, reconcile.StatusProcessing.Terminal())
	assert.False(t, reconcile.Status("DONE").Valid())
}
