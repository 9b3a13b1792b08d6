package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader reads decoded records from a VCF stream in a single forward pass.
// Only one iteration may be active on a Reader at a time.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	decoder    *Decoder
	header     *Header
	rawHeader  []string
	lineNumber int
}

// Open opens a VCF file for reading. Supports plain and gzipped (.vcf.gz)
// input; "-" reads from stdin. The header block is parsed before Open
// returns; a malformed header aborts the open entirely.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return FromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	r := &Reader{file: file}

	// Sniff gzip magic bytes, then rewind.
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = bufio.NewReader(file)
	}

	if err := r.readHeader(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// FromReader creates a Reader from an io.Reader (e.g. stdin).
func FromReader(src io.Reader) (*Reader, error) {
	r := &Reader{reader: bufio.NewReader(src)}

	if err := r.readHeader(); err != nil {
		return nil, err
	}

	return r, nil
}

// readHeader consumes the header block up to and including the #CHROM line
// and parses it into a schema.
func (r *Reader) readHeader() error {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		r.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			r.rawHeader = append(r.rawHeader, line)
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			r.rawHeader = append(r.rawHeader, line)
			header, err := ParseHeader(strings.Join(r.rawHeader, "\n"))
			if err != nil {
				return err
			}
			r.header = header
			r.decoder = NewDecoder(header)
			return nil
		}

		return &MalformedHeaderError{
			Line:    r.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &MalformedHeaderError{
		Line:    r.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// Next reads the next record. Returns nil, nil at end of input.
// A decode error aborts the iteration; no partial record is returned.
func (r *Reader) Next() (*Record, error) {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if line == "" {
					return nil, nil
				}
				// Final line without trailing newline.
			} else {
				return nil, fmt.Errorf("read record line: %w", err)
			}
		}
		r.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		return r.decoder.Decode(line, r.lineNumber)
	}
}

// Header returns the parsed schema.
func (r *Reader) Header() *Header { return r.header }

// RawHeader returns the verbatim header lines.
func (r *Reader) RawHeader() []string { return r.rawHeader }

// LineNumber returns the line number of the most recently read line.
func (r *Reader) LineNumber() int { return r.lineNumber }

// Close closes the reader and the underlying file on all paths.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
