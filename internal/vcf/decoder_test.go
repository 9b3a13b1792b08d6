package vcf

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func testDecoder(t *testing.T) *Decoder {
	t.Helper()
	h, err := ParseHeader(testHeader)
	if err != nil {
		t.Fatalf("Failed to parse header: %v", err)
	}
	return NewDecoder(h)
}

func tabLine(cols ...string) string {
	return strings.Join(cols, "\t")
}

func TestDecode_FixedFields(t *testing.T) {
	d := testDecoder(t)

	line := tabLine("chr1", "100", "rs1", "A", "G,T", "50.5", "PASS", "DP=10")
	r, err := d.Decode(line, 9)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if r.Chrom != "chr1" || r.Pos != 100 || r.ID != "rs1" || r.Ref != "A" {
		t.Errorf("Fixed fields wrong: %+v", r)
	}
	if !reflect.DeepEqual(r.Alts, []string{"G", "T"}) {
		t.Errorf("Expected alts [G T], got %v", r.Alts)
	}
	if r.Qual == nil || *r.Qual != 50.5 {
		t.Errorf("Expected qual 50.5, got %v", r.Qual)
	}
	if !reflect.DeepEqual(r.Filters, []string{"PASS"}) {
		t.Errorf("Expected filters [PASS], got %v", r.Filters)
	}
}

func TestDecode_FixedFieldRoundTrip(t *testing.T) {
	d := testDecoder(t)

	lines := []string{
		tabLine("chr1", "100", "rs1", "A", "G,T", "50.5", "PASS", "DP=10"),
		tabLine("chr2", "42", ".", "C", ".", ".", ".", "."),
		tabLine("chrX", "7", "rs9", "GA", "G", "12", "q10;s50", "DB"),
		// Large and tiny QUAL values must not re-encode in exponent
		// notation or a reshaped lexeme.
		tabLine("chr1", "100", ".", "A", "G", "1234567", "PASS", "DP=1"),
		tabLine("chr1", "100", ".", "A", "G", "0.00001", "PASS", "DP=1"),
		tabLine("chr1", "100", ".", "A", "G", "50.50", "PASS", "DP=1"),
	}

	for _, line := range lines {
		r, err := d.Decode(line, 1)
		if err != nil {
			t.Fatalf("Failed to decode %q: %v", line, err)
		}

		got := tabLine(r.FixedColumns()...)
		want := line[:len(got)]
		if got != want {
			t.Errorf("Round trip mismatch:\n got %q\nwant %q", got, want)
		}
	}
}

func TestDecode_MissingQualIsNil(t *testing.T) {
	d := testDecoder(t)

	r, err := d.Decode(tabLine("chr1", "100", ".", "A", "G", ".", ".", "."), 1)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if r.Qual != nil {
		t.Errorf("Expected nil qual for '.', got %v", *r.Qual)
	}
	if len(r.Filters) != 0 {
		t.Errorf("Expected empty filters, got %v", r.Filters)
	}
}

func TestDecode_TypedInfo(t *testing.T) {
	d := testDecoder(t)

	r, err := d.Decode(tabLine("chr1", "100", ".", "A", "G,C", "50", "PASS", "DP=10;AF=0.5,0.25;DB"), 1)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	dp := r.Info("DP")
	if dp.Kind != Scalar || dp.Scalar() != int64(10) {
		t.Errorf("Expected DP scalar int64(10), got %#v", dp)
	}

	af := r.Info("AF")
	if af.Kind != Sequence {
		t.Fatalf("Expected AF sequence, got %#v", af)
	}
	if !reflect.DeepEqual(af.Sequence(), []interface{}{0.5, 0.25}) {
		t.Errorf("Expected AF [0.5 0.25], got %v", af.Sequence())
	}

	db := r.Info("DB")
	if db.Kind != Scalar || db.Scalar() != true {
		t.Errorf("Expected DB flag presence, got %#v", db)
	}

	// Absence is represented, never an error.
	if r.Info("MQ").Kind != Absent {
		t.Error("Expected absent INFO field to be Absent")
	}

	if !reflect.DeepEqual(r.InfoNames(), []string{"DP", "AF", "DB"}) {
		t.Errorf("Expected INFO order [DP AF DB], got %v", r.InfoNames())
	}
}

func TestDecode_InfoIgnoresEmptyTokens(t *testing.T) {
	d := testDecoder(t)

	r, err := d.Decode(tabLine("chr1", "100", ".", "A", "G", "50", "PASS", "DP=10;;DB;"), 1)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if !reflect.DeepEqual(r.InfoNames(), []string{"DP", "DB"}) {
		t.Errorf("Expected INFO names [DP DB], got %v", r.InfoNames())
	}
	if empty := r.Info(""); empty.Kind != Absent {
		t.Errorf("Expected no empty-name INFO entry, got %#v", empty)
	}
}

func TestDecode_Genotypes(t *testing.T) {
	d := testDecoder(t)

	line := tabLine("chr1", "100", ".", "A", "G", "50", "PASS", "DP=10",
		"GT:DP:AD", "0/1:5:3,2", "1|1:7:0,7")
	r, err := d.Decode(line, 1)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	s1 := r.Sample("S1")
	if s1 == nil || s1.Genotype == nil {
		t.Fatal("Expected S1 genotype")
	}
	if !reflect.DeepEqual(s1.Genotype.Alleles, []int{0, 1}) {
		t.Errorf("Expected S1 alleles [0 1], got %v", s1.Genotype.Alleles)
	}
	if s1.Genotype.Phased {
		t.Error("S1 uses /, expected unphased")
	}
	if s1.Field("DP").Scalar() != int64(5) {
		t.Errorf("Expected S1 DP 5, got %#v", s1.Field("DP"))
	}
	if !reflect.DeepEqual(s1.Field("AD").Sequence(), []interface{}{int64(3), int64(2)}) {
		t.Errorf("Expected S1 AD [3 2], got %v", s1.Field("AD").Sequence())
	}

	s2 := r.Sample("S2")
	if !s2.Genotype.Phased {
		t.Error("S2 uses |, expected phased")
	}
	if !reflect.DeepEqual(s2.Genotype.Alleles, []int{1, 1}) {
		t.Errorf("Expected S2 alleles [1 1], got %v", s2.Genotype.Alleles)
	}
}

func TestDecode_MissingGenotypeValues(t *testing.T) {
	d := testDecoder(t)

	line := tabLine("chr1", "100", ".", "A", "G", "50", "PASS", "DP=10",
		"GT:DP:AD", "./.:.:.", ".")
	r, err := d.Decode(line, 1)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	s1 := r.Sample("S1")
	if !reflect.DeepEqual(s1.Genotype.Alleles, []int{MissingAllele, MissingAllele}) {
		t.Errorf("Expected missing alleles, got %v", s1.Genotype.Alleles)
	}
	if s1.Field("DP").Kind != Absent {
		t.Error("Expected S1 DP to be Absent for '.'")
	}

	// A bare "." sample column decodes to all-absent, not an error.
	s2 := r.Sample("S2")
	if s2 == nil {
		t.Fatal("Expected S2 sample data")
	}
	if s2.Genotype != nil || s2.Field("DP").Kind != Absent {
		t.Error("Expected all S2 fields absent")
	}
}

func TestDecode_Malformed(t *testing.T) {
	d := testDecoder(t)

	tests := []struct {
		name string
		line string
	}{
		{"five columns", tabLine("chr1", "100", ".", "A", "G")},
		{"bad position", tabLine("chr1", "abc", ".", "A", "G", "50", "PASS", "DP=1")},
		{"zero position", tabLine("chr1", "0", ".", "A", "G", "50", "PASS", "DP=1")},
		{"format count mismatch", tabLine("chr1", "100", ".", "A", "G", "50", "PASS", "DP=1",
			"GT:DP:AD", "0/1:5", "1|1:7:0,7")},
		{"bad genotype", tabLine("chr1", "100", ".", "A", "G", "50", "PASS", "DP=1",
			"GT", "x/y", "0/0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := d.Decode(tt.line, 17)
			var recErr *MalformedRecordError
			if !errors.As(err, &recErr) {
				t.Fatalf("Expected MalformedRecordError, got %v", err)
			}
			if recErr.Line != 17 {
				t.Errorf("Expected line 17 in error, got %d", recErr.Line)
			}
			if r != nil {
				t.Error("Expected no partial record on decode error")
			}
		})
	}
}
