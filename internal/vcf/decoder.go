package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// Decoder decodes VCF data lines against a parsed header schema.
type Decoder struct {
	header *Header
}

// NewDecoder creates a decoder for records governed by the given header.
func NewDecoder(h *Header) *Decoder {
	return &Decoder{header: h}
}

// Header returns the schema this decoder decodes against.
func (d *Decoder) Header() *Header { return d.header }

// Decode decodes a single tab-separated data line into a Record.
// lineNum is the 1-based line number in the source file and is carried on
// any MalformedRecordError.
func (d *Decoder) Decode(line string, lineNum int) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &MalformedRecordError{
			Line:    lineNum,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || pos < 1 {
		return nil, &MalformedRecordError{
			Line:    lineNum,
			Message: fmt.Sprintf("invalid position %q", fields[1]),
		}
	}

	r := &Record{
		Chrom: fields[0],
		Pos:   pos,
		ID:    fields[2],
		Ref:   fields[3],
	}

	if fields[4] != "." {
		r.Alts = strings.Split(fields[4], ",")
	}

	if fields[5] != "." {
		q, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, &MalformedRecordError{
				Line:    lineNum,
				Message: fmt.Sprintf("invalid quality %q", fields[5]),
			}
		}
		r.Qual = &q
		r.qualText = fields[5]
	}

	if fields[6] != "." {
		r.Filters = strings.Split(fields[6], ";")
	}

	r.info, r.infoOrder = d.decodeInfo(fields[7])

	if len(fields) > 9 {
		if err := d.decodeSamples(r, fields[8], fields[9:], lineNum); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// decodeInfo decodes the INFO column into typed values, preserving key order.
func (d *Decoder) decodeInfo(info string) (map[string]Value, []string) {
	values := make(map[string]Value)
	var order []string

	if info == "." || info == "" {
		return values, order
	}

	for _, kv := range strings.Split(info, ";") {
		// Trailing or doubled separators ("DP=10;") yield empty tokens.
		if kv == "" {
			continue
		}
		parts := strings.SplitN(kv, "=", 2)
		name := parts[0]

		desc, declared := d.header.InfoField(name)
		if len(parts) == 1 {
			// Flag-type entry: presence only, no value.
			values[name] = ScalarValue(true)
			order = append(order, name)
			continue
		}

		if declared && desc.Type == TypeFlag {
			values[name] = ScalarValue(true)
			order = append(order, name)
			continue
		}

		values[name] = decodeTyped(parts[1], desc, declared)
		order = append(order, name)
	}

	return values, order
}

// decodeSamples decodes the FORMAT column and per-sample columns.
func (d *Decoder) decodeSamples(r *Record, format string, cols []string, lineNum int) error {
	keys := strings.Split(format, ":")
	names := d.header.SampleNames()

	r.samples = make(map[string]*SampleData, len(cols))

	for i, col := range cols {
		if i >= len(names) {
			break
		}
		name := names[i]

		sd := &SampleData{fields: make(map[string]Value, len(keys))}

		// A bare "." sample column means all fields are missing.
		if col == "." {
			r.samples[name] = sd
			r.sampleList = append(r.sampleList, name)
			continue
		}

		vals := strings.Split(col, ":")
		if len(vals) != len(keys) {
			return &MalformedRecordError{
				Line: lineNum,
				Message: fmt.Sprintf("sample %s has %d genotype values for %d FORMAT fields",
					name, len(vals), len(keys)),
			}
		}

		for j, key := range keys {
			if key == "GT" {
				gt, err := decodeGenotype(vals[j])
				if err != nil {
					return &MalformedRecordError{
						Line:    lineNum,
						Message: fmt.Sprintf("sample %s: %v", name, err),
					}
				}
				sd.Genotype = gt
				sd.order = append(sd.order, key)
				continue
			}

			if vals[j] == "." {
				// Missing optional entry; represented, never an error.
				sd.fields[key] = AbsentValue
				sd.order = append(sd.order, key)
				continue
			}

			desc, declared := d.header.FormatField(key)
			sd.fields[key] = decodeTyped(vals[j], desc, declared)
			sd.order = append(sd.order, key)
		}

		r.samples[name] = sd
		r.sampleList = append(r.sampleList, name)
	}

	return nil
}

// decodeGenotype decodes a GT value like "0/1", "0|1" or "./.".
func decodeGenotype(gt string) (*Genotype, error) {
	phased := strings.Contains(gt, "|")

	var parts []string
	if phased {
		parts = strings.Split(gt, "|")
	} else {
		parts = strings.Split(gt, "/")
	}

	alleles := make([]int, len(parts))
	for i, p := range parts {
		if p == "." {
			alleles[i] = MissingAllele
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid genotype %q", gt)
		}
		alleles[i] = n
	}

	return &Genotype{Alleles: alleles, Phased: phased}, nil
}

// decodeTyped decodes a raw value string according to its declaration.
// Undeclared fields decode as strings. Declared scalar arity produces a
// Scalar; anything else produces a Sequence in comma order.
func decodeTyped(raw string, desc FieldDescriptor, declared bool) Value {
	vt := TypeString
	scalar := !strings.Contains(raw, ",")
	if declared {
		vt = desc.Type
		scalar = desc.Arity.IsScalar()
	}

	if scalar {
		return ScalarValue(coerce(raw, vt))
	}

	parts := strings.Split(raw, ",")
	seq := make([]interface{}, len(parts))
	for i, p := range parts {
		seq[i] = coerce(p, vt)
	}
	return SequenceValue(seq)
}

// coerce converts one raw token to its declared Go type. A "." token is a
// missing element and coerces to nil regardless of type.
func coerce(raw string, vt ValueType) interface{} {
	if raw == "." {
		return nil
	}
	switch vt {
	case TypeInteger:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case TypeFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return raw
}
