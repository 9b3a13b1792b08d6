package project

// ColumnOrder returns the canonical column order for this projection:
// the seven fixed columns, then INFO fields in request (or header) order,
// then for each selected sample its phased and GT columns followed by the
// selected non-GT sample fields. Fields discovered at projection time that
// fall outside this order are appended by the table assembler.
func (p *Projector) ColumnOrder() []string {
	cols := make([]string, 0, 16)
	cols = append(cols, FixedColumns...)

	if p.req.InfoFields == nil {
		for _, d := range p.header.InfoFields() {
			cols = append(cols, d.Name)
		}
	} else {
		for _, name := range p.req.InfoFields {
			if p.infoSet[name] {
				cols = append(cols, name)
			}
		}
	}

	var samples []string
	if p.req.Samples == nil {
		samples = p.header.SampleNames()
	} else {
		for _, name := range p.req.Samples {
			if p.samples[name] {
				samples = append(samples, name)
			}
		}
	}

	_, hasGT := p.header.FormatField("GT")

	for _, sample := range samples {
		if hasGT {
			cols = append(cols, sample+".phased", sample+".GT")
		}
		if p.req.SampleFields == nil {
			for _, d := range p.header.FormatFields() {
				if d.Name == "GT" {
					continue
				}
				cols = append(cols, sample+"."+d.Name)
			}
		} else {
			for _, name := range p.req.SampleFields {
				if name != "GT" && p.sampleFields[name] {
					cols = append(cols, sample+"."+name)
				}
			}
		}
	}

	return cols
}
