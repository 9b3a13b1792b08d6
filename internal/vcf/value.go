package vcf

// ValueKind discriminates the shape of a decoded field value.
type ValueKind int

const (
	Absent ValueKind = iota
	Scalar
	Sequence
)

// Value is a decoded INFO or FORMAT value. Fields with a declared arity of
// one decode to a Scalar; multi-valued and variable-arity fields decode to
// a Sequence; a field missing from a record is Absent. This keeps the
// single-value/list distinction explicit instead of relying on runtime
// type inspection of an interface{}.
type Value struct {
	Kind ValueKind
	s    interface{}
	seq  []interface{}
}

// AbsentValue is the decoded representation of a missing optional field.
var AbsentValue = Value{Kind: Absent}

// ScalarValue wraps a single decoded value.
func ScalarValue(v interface{}) Value {
	return Value{Kind: Scalar, s: v}
}

// SequenceValue wraps an ordered multi-value decode.
func SequenceValue(vs []interface{}) Value {
	return Value{Kind: Sequence, seq: vs}
}

// Scalar returns the scalar payload; nil unless Kind == Scalar.
func (v Value) Scalar() interface{} {
	if v.Kind != Scalar {
		return nil
	}
	return v.s
}

// Sequence returns the sequence payload; nil unless Kind == Sequence.
func (v Value) Sequence() []interface{} {
	if v.Kind != Sequence {
		return nil
	}
	return v.seq
}

// Unwrap returns the payload as a plain interface{} suitable for a table
// cell: the scalar itself, the []interface{} for sequences, nil for Absent.
func (v Value) Unwrap() interface{} {
	switch v.Kind {
	case Scalar:
		return v.s
	case Sequence:
		return v.seq
	default:
		return nil
	}
}

// MissingAllele marks a "." allele inside a GT value.
const MissingAllele = -1

// Genotype is a decoded GT value: allele indices in call order plus
// whether the separator was "|" (phased) or "/" (unphased).
type Genotype struct {
	Alleles []int
	Phased  bool
}
