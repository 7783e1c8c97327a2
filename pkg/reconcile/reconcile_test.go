package reconcile_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayjaychukwu/reconcilation/pkg/errors"
	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
)

func TestReconcileSourceOnlyRow(t *testing.T) {
	source := []byte("id,name,date,amount\n1,A,2024-01-01,100\n")
	target := []byte("id,name,date,amount\n")

	result, err := reconcile.Reconcile(source, target)
	require.NoError(t, err)

	assert.Equal(t, reconcile.StatusSuccess, result.Status)
	require.Len(t, result.MissingInTarget, 1)
	assert.Equal(t, 1.0, result.MissingInTarget[0].ID)
	assert.Equal(t, "a", result.MissingInTarget[0].Name)
	assert.Equal(t, "2024-01-01", result.MissingInTarget[0].Date)
	assert.Equal(t, 100.0, result.MissingInTarget[0].Amount)
	assert.Empty(t, result.MissingInSource)
	assert.Empty(t, result.Discrepancies)
}

func TestReconcileAmountDiscrepancy(t *testing.T) {
	source := []byte("id,name,date,amount\n1,a,2024-01-01,100\n")
	target := []byte("id,name,date,amount\n1,a,2024-01-01,200\n")

	result, err := reconcile.Reconcile(source, target)
	require.NoError(t, err)

	assert.Empty(t, result.MissingInTarget)
	assert.Empty(t, result.MissingInSource)
	require.Len(t, result.Discrepancies, 1)

	entry := result.Discrepancies[0]
	assert.Equal(t, 1.0, entry.ID)
	require.Len(t, entry.Fields, 1)
	assert.Equal(t, "amount", entry.Fields[0].Field)
	assert.Equal(t, 100.0, entry.Fields[0].Source)
	assert.Equal(t, 200.0, entry.Fields[0].Target)

	// The wire entry carries only the differing pair, no name/date keys.
	raw, err := json.Marshal(entry)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, []string{"amount", "id", "target_amount"}, sortedKeys(m))
}

func TestReconcileMissingColumnFails(t *testing.T) {
	source := []byte("id,name,date\n1,a,2024-01-01\n")
	target := []byte("id,name,date,amount\n")

	result, err := reconcile.Reconcile(source, target)
	require.Error(t, err)
	assert.Nil(t, result, "no partial result on failure")
	assert.True(t, errors.IsSchemaError(err))
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "source")
}

func TestReconcileUnparseableDate(t *testing.T) {
	// Null date on both sides compares equal; null against a parsed
	// date is a discrepancy.
	source := []byte("id,name,date,amount\n1,a,not-a-date,100\n2,b,not-a-date,50\n")
	target := []byte("id,name,date,amount\n1,a,2024-01-01,100\n2,b,also-bad,50\n")

	result, err := reconcile.Reconcile(source, target)
	require.NoError(t, err)

	assert.Empty(t, result.MissingInTarget)
	assert.Empty(t, result.MissingInSource)
	require.Len(t, result.Discrepancies, 1)

	entry := result.Discrepancies[0]
	assert.Equal(t, 1.0, entry.ID)
	require.Len(t, entry.Fields, 1)
	assert.Equal(t, "date", entry.Fields[0].Field)
	assert.Nil(t, entry.Fields[0].Source)
	assert.Equal(t, "2024-01-01", entry.Fields[0].Target)
}

func TestReconcileMalformedInput(t *testing.T) {
	source := []byte("id,name,date,amount\n1,a,2024-01-01,100\n2,b\n")
	target := []byte("id,name,date,amount\n")

	_, err := reconcile.Reconcile(source, target)
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
}

func TestReconcileNameMismatchIsNotHidden(t *testing.T) {
	// Same id with a different name misses the two-column match key on
	// both sides, and additionally reports as a name discrepancy on the
	// one-column join.
	source := []byte("id,name,date,amount\n1,alpha,2024-01-01,100\n")
	target := []byte("id,name,date,amount\n1,beta,2024-01-01,100\n")

	result, err := reconcile.Reconcile(source, target)
	require.NoError(t, err)

	require.Len(t, result.MissingInTarget, 1)
	require.Len(t, result.MissingInSource, 1)
	require.Len(t, result.Discrepancies, 1)

	entry := result.Discrepancies[0]
	require.Len(t, entry.Fields, 1)
	assert.Equal(t, "name", entry.Fields[0].Field)
	assert.Equal(t, "alpha", entry.Fields[0].Source)
	assert.Equal(t, "beta", entry.Fields[0].Target)
}

func TestReconcileCaseWhitespaceInvariance(t *testing.T) {
	source := []byte("ID,Name,Date,Amount\n1,  ACME Corp ,2024-01-01,100\n")
	target := []byte("id,name,date,amount\n1,acme corp,2024/01/02,100\n")

	result, err := reconcile.Reconcile(source, target)
	require.NoError(t, err)

	assert.Empty(t, result.MissingInTarget)
	assert.Empty(t, result.MissingInSource)
	require.Len(t, result.Discrepancies, 1)
	assert.Equal(t, "date", result.Discrepancies[0].Fields[0].Field)
}

func TestReconcileJSONShape(t *testing.T) {
	source := []byte("id,name,date,amount\n1,a,not-a-date,100\n")
	target := []byte("id,name,date,amount\n")

	result, err := reconcile.Reconcile(source, target)
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "missing_data_in_target_file")
	assert.Contains(t, m, "missing_data_in_source_file")
	assert.Contains(t, m, "discrepancies")
	assert.Equal(t, "SUCCESS", m["status"])

	rows := m["missing_data_in_target_file"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Nil(t, row["date"], "unparseable date serializes as null")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return keys
}
