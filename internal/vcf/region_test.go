package vcf

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		input string
		want  Region
	}{
		{"chr1", Region{Chrom: "chr1"}},
		{"chr1:100", Region{Chrom: "chr1", Start: 100}},
		{"chr1:100-200", Region{Chrom: "chr1", Start: 100, End: 200}},
		{"MT:5-5", Region{Chrom: "MT", Start: 5, End: 5}},
	}

	for _, tt := range tests {
		got, err := ParseRegion(tt.input)
		if err != nil {
			t.Errorf("ParseRegion(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRegion(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseRegion_Syntax(t *testing.T) {
	for _, input := range []string{"", ":100-200", "chr1:abc", "chr1:0", "chr1:200-100", "chr1:100-x"} {
		_, err := ParseRegion(input)
		var synErr *RegionSyntaxError
		if !errors.As(err, &synErr) {
			t.Errorf("ParseRegion(%q): expected RegionSyntaxError, got %v", input, err)
		}
	}
}

func collectRecords(t *testing.T, it RecordIterator) []*Record {
	t.Helper()
	var recs []*Record
	for {
		rec, err := it.Next()
		if err != nil {
			t.Fatalf("Error iterating: %v", err)
		}
		if rec == nil {
			return recs
		}
		recs = append(recs, rec)
	}
}

func TestScanQuerier_Region(t *testing.T) {
	q, err := OpenQuerier(filepath.Join("testdata", "multi_chrom.vcf"))
	if err != nil {
		t.Fatalf("Failed to open querier: %v", err)
	}
	defer q.Close()

	it, err := q.Query(Region{Chrom: "chr1", Start: 100, End: 200})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	recs := collectRecords(t, it)

	if len(recs) != 2 {
		t.Fatalf("Expected 2 records in chr1:100-200, got %d", len(recs))
	}
	for i, rec := range recs {
		if rec.Chrom != "chr1" || rec.Pos < 100 || rec.Pos > 200 {
			t.Errorf("Record outside region: %s:%d", rec.Chrom, rec.Pos)
		}
		if i > 0 && recs[i-1].Pos > rec.Pos {
			t.Error("Records not in ascending pos order")
		}
	}
}

func TestScanQuerier_WholeChromosome(t *testing.T) {
	q, err := OpenQuerier(filepath.Join("testdata", "multi_chrom.vcf"))
	if err != nil {
		t.Fatalf("Failed to open querier: %v", err)
	}
	defer q.Close()

	it, err := q.Query(Region{Chrom: "chr2"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	recs := collectRecords(t, it)

	if len(recs) != 2 {
		t.Errorf("Expected 2 records on chr2, got %d", len(recs))
	}
}

func TestScanQuerier_EmptyResult(t *testing.T) {
	q, err := OpenQuerier(filepath.Join("testdata", "multi_chrom.vcf"))
	if err != nil {
		t.Fatalf("Failed to open querier: %v", err)
	}
	defer q.Close()

	// No records in range: an empty sequence, not an error.
	it, err := q.Query(Region{Chrom: "chr1", Start: 500, End: 600})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if recs := collectRecords(t, it); len(recs) != 0 {
		t.Errorf("Expected empty result, got %d records", len(recs))
	}

	it, err = q.Query(Region{Chrom: "chr9"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if recs := collectRecords(t, it); len(recs) != 0 {
		t.Errorf("Expected empty result for unknown chrom, got %d records", len(recs))
	}
}

func TestScanQuerier_QueryAll(t *testing.T) {
	q, err := OpenQuerier(filepath.Join("testdata", "multi_chrom.vcf"))
	if err != nil {
		t.Fatalf("Failed to open querier: %v", err)
	}
	defer q.Close()

	it, err := q.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll failed: %v", err)
	}
	recs := collectRecords(t, it)

	if len(recs) != 5 {
		t.Errorf("Expected 5 records, got %d", len(recs))
	}
}

func TestRegionContains(t *testing.T) {
	rg := Region{Chrom: "chr1", Start: 100, End: 200}

	cases := []struct {
		chrom string
		pos   int64
		want  bool
	}{
		{"chr1", 100, true},
		{"chr1", 200, true},
		{"chr1", 99, false},
		{"chr1", 201, false},
		{"chr2", 150, false},
	}
	for _, c := range cases {
		if got := rg.Contains(c.chrom, c.pos); got != c.want {
			t.Errorf("Contains(%s, %d) = %v, want %v", c.chrom, c.pos, got, c.want)
		}
	}
}
