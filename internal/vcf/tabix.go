package vcf

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/brentp/bix"
	"github.com/brentp/irelate/interfaces"
)

// hasTabixIndex reports whether a .tbi or .csi sidecar exists next to path.
func hasTabixIndex(path string) bool {
	for _, ext := range []string{".tbi", ".csi"} {
		if _, err := os.Stat(path + ext); err == nil {
			return true
		}
	}
	return false
}

// tabixQuerier answers region queries through a tabix index, delegating
// BGZF decompression and the coordinate lookup to bix. Retrieved lines are
// decoded with the same schema-aware decoder as the scan path.
type tabixQuerier struct {
	path    string
	tbx     *bix.Bix
	header  *Header
	decoder *Decoder
}

func openTabixQuerier(path string) (*tabixQuerier, error) {
	// BGZF blocks are valid multi-member gzip, so the header block can be
	// read with the ordinary reader.
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	header := r.Header()
	if err := r.Close(); err != nil {
		return nil, err
	}

	tbx, err := bix.New(path)
	if err != nil {
		return nil, fmt.Errorf("open tabix index: %w", err)
	}

	return &tabixQuerier{
		path:    path,
		tbx:     tbx,
		header:  header,
		decoder: NewDecoder(header),
	}, nil
}

func (q *tabixQuerier) Header() *Header { return q.header }

func (q *tabixQuerier) Close() error { return q.tbx.Close() }

// QueryAll scans the whole file; the index buys nothing for a full pass.
func (q *tabixQuerier) QueryAll() (RecordIterator, error) {
	r, err := Open(q.path)
	if err != nil {
		return nil, err
	}
	return &readerIterator{reader: r}, nil
}

func (q *tabixQuerier) Query(rg Region) (RecordIterator, error) {
	// bix takes 0-based half-open coordinates.
	start := int(rg.Start)
	if start > 0 {
		start--
	}
	end := int(rg.End)
	if end == 0 {
		end = math.MaxInt32
	}

	it, err := q.tbx.Query(position{chrom: rg.Chrom, start: start, end: end})
	if err != nil {
		return nil, fmt.Errorf("tabix query %s: %w", rg.Chrom, err)
	}

	return &tabixIterator{inner: it, decoder: q.decoder}, nil
}

// position adapts a region to the IPosition shape bix queries expect.
type position struct {
	chrom string
	start int
	end   int
}

func (p position) Chrom() string { return p.chrom }
func (p position) Start() uint32 { return uint32(p.start) }
func (p position) End() uint32   { return uint32(p.end) }

// tabixIterator decodes the raw lines an index query yields. Line numbers
// are unknown on the indexed path and reported as 0.
type tabixIterator struct {
	inner   interfaces.RelatableIterator
	decoder *Decoder
	done    bool
}

func (it *tabixIterator) Next() (*Record, error) {
	if it.done {
		return nil, nil
	}

	v, err := it.inner.Next()
	if err != nil {
		it.done = true
		it.inner.Close()
		// bix signals clean exhaustion as io.EOF; anything else is a
		// stream failure and aborts the iteration.
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("tabix read: %w", err)
	}

	variant, ok := v.(interfaces.IVariant)
	if !ok {
		it.done = true
		it.inner.Close()
		return nil, fmt.Errorf("tabix query returned non-variant result %T", v)
	}

	return it.decoder.Decode(variant.String(), 0)
}

func (it *tabixIterator) Close() error {
	if it.done {
		return nil
	}
	it.done = true
	return it.inner.Close()
}
