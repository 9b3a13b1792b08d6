package vcf

import "fmt"

// MalformedHeaderError reports an invalid ##INFO or ##FORMAT declaration.
type MalformedHeaderError struct {
	Line    int
	Message string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("vcf header error at line %d: %s", e.Line, e.Message)
}

// MalformedRecordError reports a structural violation of a data line.
type MalformedRecordError struct {
	Line    int
	Message string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("vcf record error at line %d: %s", e.Line, e.Message)
}

// UnknownFieldError reports a requested field that is not declared in the
// header. Only returned in strict mode; otherwise unknown names are treated
// as unspecified.
type UnknownFieldError struct {
	Field string
	Kind  string // "INFO", "FORMAT", or "sample"
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown %s field %q", e.Kind, e.Field)
}

// RegionSyntaxError reports an unparsable region query string.
type RegionSyntaxError struct {
	Input string
}

func (e *RegionSyntaxError) Error() string {
	return fmt.Sprintf("invalid region query %q (expected chrom, chrom:start or chrom:start-end)", e.Input)
}
