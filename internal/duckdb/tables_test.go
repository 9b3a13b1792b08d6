package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vcframe/internal/table"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteTable(t *testing.T) {
	s := openInMemory(t)

	tbl := table.Assemble([]map[string]interface{}{
		{
			"chrom":     "chr1",
			"pos":       int64(100),
			"qual":      50.5,
			"DP":        int64(10),
			"S1.GT":     []int{0, 1},
			"S1.phased": false,
		},
		{
			"chrom": "chr1",
			"pos":   int64(150),
		},
	}, []string{"chrom", "pos", "qual", "DP", "S1.phased", "S1.GT"})

	require.NoError(t, s.WriteTable("variants", tbl))

	n, err := s.CountRows("variants")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Null cells land as SQL NULL, never as a type-specific zero.
	var nulls int64
	err = s.DB().QueryRow(`SELECT COUNT(*) FROM "variants" WHERE "DP" IS NULL`).Scan(&nulls)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nulls)

	var gt string
	err = s.DB().QueryRow(`SELECT "S1.GT" FROM "variants" WHERE "pos" = 100`).Scan(&gt)
	require.NoError(t, err)
	assert.Equal(t, "0,1", gt)
}

func TestWriteTable_Replace(t *testing.T) {
	s := openInMemory(t)

	tbl := table.Assemble([]map[string]interface{}{
		{"chrom": "chr1", "pos": int64(1)},
	}, []string{"chrom", "pos"})

	require.NoError(t, s.WriteTable("variants", tbl))
	require.NoError(t, s.WriteTable("variants", tbl))

	n, err := s.CountRows("variants")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMetadata(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.SetMetadata("source", "input.vcf"))
	require.NoError(t, s.SetMetadata("source", "other.vcf"))

	v, err := s.GetMetadata("source")
	require.NoError(t, err)
	assert.Equal(t, "other.vcf", v)

	v, err = s.GetMetadata("missing")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
