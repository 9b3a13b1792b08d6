package vcf

import (
	"strconv"
	"strings"
)

// Region is a 1-based inclusive genomic interval. Start and End of 0 mean
// "unbounded" on that side, so a bare chromosome name selects the whole
// chromosome.
type Region struct {
	Chrom string
	Start int64
	End   int64
}

// Contains reports whether the record at (chrom, pos) falls in the region.
func (rg Region) Contains(chrom string, pos int64) bool {
	if chrom != rg.Chrom {
		return false
	}
	if rg.Start > 0 && pos < rg.Start {
		return false
	}
	if rg.End > 0 && pos > rg.End {
		return false
	}
	return true
}

// ParseRegion parses a region query string: "chrom", "chrom:start" or
// "chrom:start-end". Start and end are 1-based and inclusive.
func ParseRegion(s string) (Region, error) {
	if s == "" {
		return Region{}, &RegionSyntaxError{Input: s}
	}

	chrom, span, hasSpan := strings.Cut(s, ":")
	if chrom == "" {
		return Region{}, &RegionSyntaxError{Input: s}
	}
	if !hasSpan {
		return Region{Chrom: chrom}, nil
	}

	startStr, endStr, hasEnd := strings.Cut(span, "-")
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 1 {
		return Region{}, &RegionSyntaxError{Input: s}
	}

	if !hasEnd {
		return Region{Chrom: chrom, Start: start}, nil
	}

	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil || end < start {
		return Region{}, &RegionSyntaxError{Input: s}
	}

	return Region{Chrom: chrom, Start: start, End: end}, nil
}

// RecordIterator is a finite, single-pass sequence of records in ascending
// (chrom, pos) order as stored. It is not restartable once consumed.
type RecordIterator interface {
	// Next returns the next record, or nil, nil when the sequence is
	// exhausted. An empty sequence is not an error.
	Next() (*Record, error)
	Close() error
}

// RegionQuerier maps a region query onto a record iteration. Region queries
// and full-file scans are mutually exclusive on a given open handle: one
// active iteration at a time.
type RegionQuerier interface {
	// Query returns the records overlapping the region.
	Query(rg Region) (RecordIterator, error)
	// QueryAll returns every record in the file.
	QueryAll() (RecordIterator, error)
	// Header returns the schema of the underlying file.
	Header() *Header
	Close() error
}

// scanQuerier answers region queries with a linear forward scan, for files
// without a tabix sidecar. Each query reopens the file.
type scanQuerier struct {
	path   string
	header *Header
}

// OpenQuerier opens a VCF file for region queries. When a tabix index
// (.tbi or .csi sidecar) exists the query path uses it; otherwise queries
// fall back to a full forward scan.
func OpenQuerier(path string) (RegionQuerier, error) {
	if hasTabixIndex(path) {
		return openTabixQuerier(path)
	}

	// Parse the header once so schema introspection works before any query.
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	header := r.Header()
	if err := r.Close(); err != nil {
		return nil, err
	}

	return &scanQuerier{path: path, header: header}, nil
}

func (q *scanQuerier) Header() *Header { return q.header }

func (q *scanQuerier) Close() error { return nil }

func (q *scanQuerier) QueryAll() (RecordIterator, error) {
	r, err := Open(q.path)
	if err != nil {
		return nil, err
	}
	return &readerIterator{reader: r}, nil
}

func (q *scanQuerier) Query(rg Region) (RecordIterator, error) {
	r, err := Open(q.path)
	if err != nil {
		return nil, err
	}
	return &filterIterator{reader: r, region: rg}, nil
}

// Iterate adapts an open Reader to the RecordIterator contract, for
// callers that already hold a forward stream (e.g. stdin).
func Iterate(r *Reader) RecordIterator {
	return &readerIterator{reader: r}
}

// readerIterator adapts a Reader to the RecordIterator contract.
type readerIterator struct {
	reader *Reader
	done   bool
}

func (it *readerIterator) Next() (*Record, error) {
	if it.done {
		return nil, nil
	}
	rec, err := it.reader.Next()
	if err != nil || rec == nil {
		it.done = true
		it.reader.Close()
	}
	return rec, err
}

func (it *readerIterator) Close() error {
	if it.done {
		return nil
	}
	it.done = true
	return it.reader.Close()
}

// filterIterator scans forward and yields only records inside the region.
// Data lines are assumed sorted by (chrom, pos) as the VCF spec requires,
// so the scan stops early once past the region on the target chromosome.
type filterIterator struct {
	reader   *Reader
	region   Region
	done     bool
	onTarget bool
}

func (it *filterIterator) Next() (*Record, error) {
	if it.done {
		return nil, nil
	}

	for {
		rec, err := it.reader.Next()
		if err != nil {
			it.stop()
			return nil, err
		}
		if rec == nil {
			it.stop()
			return nil, nil
		}

		if rec.Chrom == it.region.Chrom {
			it.onTarget = true
			if it.region.End > 0 && rec.Pos > it.region.End {
				it.stop()
				return nil, nil
			}
			if it.region.Contains(rec.Chrom, rec.Pos) {
				return rec, nil
			}
			continue
		}

		// Left the target chromosome after having entered it.
		if it.onTarget {
			it.stop()
			return nil, nil
		}
	}
}

func (it *filterIterator) stop() {
	if !it.done {
		it.done = true
		it.reader.Close()
	}
}

func (it *filterIterator) Close() error {
	if it.done {
		return nil
	}
	it.done = true
	return it.reader.Close()
}
