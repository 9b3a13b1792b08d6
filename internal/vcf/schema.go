// Package vcf provides VCF header parsing, record decoding and region queries.
package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType is the declared type of an INFO or FORMAT field.
type ValueType string

const (
	TypeInteger ValueType = "Integer"
	TypeFloat   ValueType = "Float"
	TypeString  ValueType = "String"
	TypeFlag    ValueType = "Flag"
)

// ArityKind classifies the declared Number of a field.
type ArityKind int

const (
	ArityFixed       ArityKind = iota // Number is an integer literal
	ArityPerAlt                       // Number=A, one value per alt allele
	ArityPerAllele                    // Number=R, one value per allele incl. ref
	ArityPerGenotype                  // Number=G, one value per possible genotype
	ArityVariable                     // Number=., unknown or unbounded
)

// Arity is the declared cardinality of a field's values per record.
type Arity struct {
	Kind ArityKind
	N    int // only meaningful for ArityFixed
}

// ParseArity parses a VCF Number attribute.
func ParseArity(s string) (Arity, error) {
	switch s {
	case "A":
		return Arity{Kind: ArityPerAlt}, nil
	case "R":
		return Arity{Kind: ArityPerAllele}, nil
	case "G":
		return Arity{Kind: ArityPerGenotype}, nil
	case ".":
		return Arity{Kind: ArityVariable}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Arity{}, fmt.Errorf("invalid Number %q", s)
	}
	return Arity{Kind: ArityFixed, N: n}, nil
}

// String renders the arity back in VCF header notation.
func (a Arity) String() string {
	switch a.Kind {
	case ArityPerAlt:
		return "A"
	case ArityPerAllele:
		return "R"
	case ArityPerGenotype:
		return "G"
	case ArityVariable:
		return "."
	default:
		return strconv.Itoa(a.N)
	}
}

// IsScalar reports whether the field holds at most one value per record.
func (a Arity) IsScalar() bool {
	return a.Kind == ArityFixed && a.N <= 1
}

// FieldDescriptor describes one declared INFO or FORMAT field.
type FieldDescriptor struct {
	Name        string
	Arity       Arity
	Type        ValueType
	Description string
}

// Header holds the parsed schema of a VCF file: INFO and FORMAT field
// declarations in header order plus the sample names from the #CHROM line.
// A Header is immutable once built.
type Header struct {
	info        []FieldDescriptor
	format      []FieldDescriptor
	samples     []string
	infoIndex   map[string]int
	formatIndex map[string]int
}

// InfoFields returns the INFO declarations in header order.
func (h *Header) InfoFields() []FieldDescriptor { return h.info }

// FormatFields returns the FORMAT declarations in header order.
func (h *Header) FormatFields() []FieldDescriptor { return h.format }

// SampleNames returns the sample names from the #CHROM line in column order.
func (h *Header) SampleNames() []string { return h.samples }

// InfoField looks up an INFO declaration by name.
func (h *Header) InfoField(name string) (FieldDescriptor, bool) {
	i, ok := h.infoIndex[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return h.info[i], true
}

// FormatField looks up a FORMAT declaration by name.
func (h *Header) FormatField(name string) (FieldDescriptor, bool) {
	i, ok := h.formatIndex[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return h.format[i], true
}

// HasSample reports whether the header declares the given sample column.
func (h *Header) HasSample(name string) bool {
	for _, s := range h.samples {
		if s == name {
			return true
		}
	}
	return false
}

// ParseHeader parses the full header block (## lines plus the #CHROM line).
// Line numbers in errors are 1-based within the given text.
func ParseHeader(raw string) (*Header, error) {
	h := &Header{
		infoIndex:   make(map[string]int),
		formatIndex: make(map[string]int),
	}

	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	for i, line := range lines {
		lineNum := i + 1
		line = strings.TrimRight(line, "\r")

		switch {
		case strings.HasPrefix(line, "##INFO=<"):
			fd, err := parseFieldDeclaration(line, "##INFO=<")
			if err != nil {
				return nil, &MalformedHeaderError{Line: lineNum, Message: err.Error()}
			}
			h.infoIndex[fd.Name] = len(h.info)
			h.info = append(h.info, fd)

		case strings.HasPrefix(line, "##FORMAT=<"):
			fd, err := parseFieldDeclaration(line, "##FORMAT=<")
			if err != nil {
				return nil, &MalformedHeaderError{Line: lineNum, Message: err.Error()}
			}
			h.formatIndex[fd.Name] = len(h.format)
			h.format = append(h.format, fd)

		case strings.HasPrefix(line, "#CHROM"):
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				h.samples = fields[9:]
			}
		}
	}

	return h, nil
}

// parseFieldDeclaration parses one ##INFO=<...> or ##FORMAT=<...> line.
func parseFieldDeclaration(line, prefix string) (FieldDescriptor, error) {
	body := strings.TrimPrefix(line, prefix)
	body = strings.TrimSuffix(body, ">")

	attrs := splitDeclaration(body)

	id, ok := attrs["ID"]
	if !ok {
		return FieldDescriptor{}, fmt.Errorf("declaration missing ID")
	}
	numberStr, ok := attrs["Number"]
	if !ok {
		return FieldDescriptor{}, fmt.Errorf("declaration %s missing Number", id)
	}
	typeStr, ok := attrs["Type"]
	if !ok {
		return FieldDescriptor{}, fmt.Errorf("declaration %s missing Type", id)
	}

	arity, err := ParseArity(numberStr)
	if err != nil {
		return FieldDescriptor{}, fmt.Errorf("declaration %s: %v", id, err)
	}

	var vt ValueType
	switch ValueType(typeStr) {
	case TypeInteger, TypeFloat, TypeString, TypeFlag:
		vt = ValueType(typeStr)
	default:
		return FieldDescriptor{}, fmt.Errorf("declaration %s has unrecognized Type %q", id, typeStr)
	}

	// Number=0 is only meaningful for presence flags.
	if arity.Kind == ArityFixed && arity.N == 0 && vt != TypeFlag {
		return FieldDescriptor{}, fmt.Errorf("declaration %s has Number=0 but Type=%s", id, vt)
	}

	return FieldDescriptor{
		Name:        id,
		Arity:       arity,
		Type:        vt,
		Description: attrs["Description"],
	}, nil
}

// splitDeclaration splits `ID=DP,Number=1,Type=Integer,Description="Read depth"`
// into key/value pairs, honoring quoted values containing commas.
func splitDeclaration(body string) map[string]string {
	attrs := make(map[string]string)

	var key, val strings.Builder
	inKey := true
	inQuote := false

	flush := func() {
		if key.Len() > 0 {
			attrs[key.String()] = val.String()
		}
		key.Reset()
		val.Reset()
		inKey = true
	}

	for _, r := range body {
		switch {
		case inQuote:
			if r == '"' {
				inQuote = false
			} else {
				val.WriteRune(r)
			}
		case r == '"':
			inQuote = true
		case inKey && r == '=':
			inKey = false
		case r == ',':
			flush()
		case inKey:
			key.WriteRune(r)
		default:
			val.WriteRune(r)
		}
	}
	flush()

	return attrs
}
