// Package project flattens decoded VCF records into row mappings.
package project

import (
	"go.uber.org/zap"

	"github.com/inodb/vcframe/internal/vcf"
)

// FixedColumns are the seven columns every row carries, in output order.
var FixedColumns = []string{"chrom", "pos", "id", "ref", "alts", "qual", "filters"}

// Request selects which INFO fields, sample fields and samples a projection
// emits. A nil slice means "all declared in the header". Names outside the
// declared sets are an UnknownFieldError in strict mode and are otherwise
// treated as unspecified.
type Request struct {
	InfoFields         []string
	SampleFields       []string
	Samples            []string
	IncludeUnspecified bool
	Strict             bool
}

// Projector is a pure per-record row builder: it keeps no cross-record
// state, so independent records may be projected concurrently.
type Projector struct {
	header       *vcf.Header
	req          Request
	infoSet      map[string]bool // nil means all
	sampleFields map[string]bool
	samples      map[string]bool
	logger       *zap.Logger
}

// NewProjector validates the request against the header and returns a
// projector. In strict mode a requested name absent from the header fails
// with UnknownFieldError.
func NewProjector(header *vcf.Header, req Request) (*Projector, error) {
	p := &Projector{
		header: header,
		req:    req,
		logger: zap.NewNop(),
	}

	if req.InfoFields != nil {
		p.infoSet = make(map[string]bool, len(req.InfoFields))
		for _, name := range req.InfoFields {
			if _, ok := header.InfoField(name); !ok {
				if req.Strict {
					return nil, &vcf.UnknownFieldError{Field: name, Kind: "INFO"}
				}
				continue
			}
			p.infoSet[name] = true
		}
	}

	if req.SampleFields != nil {
		p.sampleFields = make(map[string]bool, len(req.SampleFields))
		for _, name := range req.SampleFields {
			if _, ok := header.FormatField(name); !ok {
				if req.Strict {
					return nil, &vcf.UnknownFieldError{Field: name, Kind: "FORMAT"}
				}
				continue
			}
			p.sampleFields[name] = true
		}
	}

	if req.Samples != nil {
		p.samples = make(map[string]bool, len(req.Samples))
		for _, name := range req.Samples {
			if !header.HasSample(name) {
				if req.Strict {
					return nil, &vcf.UnknownFieldError{Field: name, Kind: "sample"}
				}
				continue
			}
			p.samples[name] = true
		}
	}

	return p, nil
}

// SetLogger sets the logger for diagnostic messages.
func (p *Projector) SetLogger(l *zap.Logger) {
	p.logger = l
}

func (p *Projector) wantInfo(name string) bool {
	if p.infoSet == nil {
		_, declared := p.header.InfoField(name)
		return declared
	}
	return p.infoSet[name]
}

func (p *Projector) wantSampleField(name string) bool {
	if p.sampleFields == nil {
		_, declared := p.header.FormatField(name)
		return declared
	}
	return p.sampleFields[name]
}

func (p *Projector) wantSample(name string) bool {
	if p.samples == nil {
		return true
	}
	return p.samples[name]
}

// Project flattens one record into a column-name-to-value mapping.
// Requested fields absent from the record are left out of the mapping;
// the table assembler reconciles them with the null sentinel later.
func (p *Projector) Project(rec *vcf.Record) map[string]interface{} {
	row := make(map[string]interface{}, len(FixedColumns))

	row["chrom"] = rec.Chrom
	row["pos"] = rec.Pos
	row["id"] = rec.ID
	row["ref"] = rec.Ref
	row["alts"] = rec.Alts
	if rec.Qual != nil {
		row["qual"] = *rec.Qual
	}
	row["filters"] = rec.Filters

	for _, name := range rec.InfoNames() {
		if p.wantInfo(name) || p.req.IncludeUnspecified {
			if _, declared := p.header.InfoField(name); !declared {
				p.logger.Debug("including undeclared INFO field",
					zap.String("field", name),
					zap.String("chrom", rec.Chrom),
					zap.Int64("pos", rec.Pos))
			}
			row[name] = rec.Info(name).Unwrap()
		}
	}

	for _, sample := range rec.SampleNames() {
		if !p.wantSample(sample) && !p.req.IncludeUnspecified {
			continue
		}
		sd := rec.Sample(sample)

		// GT defines the call itself and is always emitted for a
		// projected sample, with its companion phased column.
		if sd.Genotype != nil {
			row[sample+".GT"] = sd.Genotype.Alleles
			row[sample+".phased"] = sd.Genotype.Phased
		}

		for _, field := range sd.FieldNames() {
			if field == "GT" {
				continue
			}
			if !p.wantSampleField(field) && !p.req.IncludeUnspecified {
				continue
			}
			v := sd.Field(field)
			if v.Kind == vcf.Absent {
				continue
			}
			row[sample+"."+field] = v.Unwrap()
		}
	}

	return row
}
