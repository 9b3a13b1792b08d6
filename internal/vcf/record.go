package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// SampleData holds the decoded FORMAT values for one sample column.
// Genotype is non-nil only when the record's FORMAT includes GT.
type SampleData struct {
	Genotype *Genotype
	fields   map[string]Value
	order    []string
}

// Field looks up a decoded FORMAT value by name. Absent fields return
// AbsentValue, never an error.
func (s *SampleData) Field(name string) Value {
	v, ok := s.fields[name]
	if !ok {
		return AbsentValue
	}
	return v
}

// FieldNames returns the decoded field names in FORMAT column order.
func (s *SampleData) FieldNames() []string { return s.order }

// Record is a single decoded VCF data line. Records are immutable once
// constructed and hold no references to other records.
type Record struct {
	Chrom   string
	Pos     int64 // 1-based
	ID      string
	Ref     string
	Alts    []string
	Qual    *float64 // nil when the QUAL column is "."
	Filters []string

	qualText string // original QUAL lexeme, kept for re-encoding

	info       map[string]Value
	infoOrder  []string
	samples    map[string]*SampleData
	sampleList []string
}

// Info looks up a decoded INFO value by name. Absent entries return
// AbsentValue, never an error.
func (r *Record) Info(name string) Value {
	v, ok := r.info[name]
	if !ok {
		return AbsentValue
	}
	return v
}

// InfoNames returns the INFO keys present on this record in line order.
func (r *Record) InfoNames() []string { return r.infoOrder }

// Sample returns the decoded data for one sample column, or nil if the
// sample is not present.
func (r *Record) Sample(name string) *SampleData { return r.samples[name] }

// SampleNames returns the sample names present on this record in column order.
func (r *Record) SampleNames() []string { return r.sampleList }

// FixedColumns re-encodes the seven fixed fields in VCF column notation.
// Joining the result with tabs reproduces the original CHROM..FILTER text
// for a well-formed input line.
func (r *Record) FixedColumns() []string {
	alts := "."
	if len(r.Alts) > 0 {
		alts = strings.Join(r.Alts, ",")
	}

	qual := "."
	if r.qualText != "" {
		qual = r.qualText
	} else if r.Qual != nil {
		// Records built outside the decoder have no lexeme to restore;
		// 'f' keeps the rendering free of exponent notation.
		qual = strconv.FormatFloat(*r.Qual, 'f', -1, 64)
	}

	filters := "."
	if len(r.Filters) > 0 {
		filters = strings.Join(r.Filters, ";")
	}

	return []string{
		r.Chrom,
		strconv.FormatInt(r.Pos, 10),
		r.ID,
		r.Ref,
		alts,
		qual,
		filters,
	}
}

// String renders a compact identifier for log messages.
func (r *Record) String() string {
	return fmt.Sprintf("%s:%d %s>%s", r.Chrom, r.Pos, r.Ref, strings.Join(r.Alts, ","))
}
