package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vcframe/internal/duckdb"
	"github.com/inodb/vcframe/internal/output"
	"github.com/inodb/vcframe/internal/project"
	"github.com/inodb/vcframe/internal/table"
	"github.com/inodb/vcframe/internal/vcf"
)

// tableFlags holds the record selection flags shared by table and store.
type tableFlags struct {
	region             string
	infoFields         []string
	sampleFields       []string
	samples            []string
	includeUnspecified bool
	strict             bool
	workers            int
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "region query: chrom, chrom:start or chrom:start-end")
	cmd.Flags().StringSliceVar(&f.infoFields, "info-fields", nil, "INFO fields to extract (default: all declared)")
	cmd.Flags().StringSliceVar(&f.sampleFields, "sample-fields", nil, "FORMAT fields to extract (default: all declared)")
	cmd.Flags().StringSliceVar(&f.samples, "samples", nil, "samples to extract (default: all)")
	cmd.Flags().BoolVar(&f.includeUnspecified, "include-unspecified", false, "also emit fields outside the requested sets")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when a requested field is not declared in the header")
	cmd.Flags().IntVar(&f.workers, "workers", 1, "projection workers (0 = all CPUs)")
}

func (f *tableFlags) request() project.Request {
	return project.Request{
		InfoFields:         f.infoFields,
		SampleFields:       f.sampleFields,
		Samples:            f.samples,
		IncludeUnspecified: f.includeUnspecified,
		Strict:             f.strict,
	}
}

func newTableCmd() *cobra.Command {
	var flags tableFlags
	var outputFile string
	var format string

	cmd := &cobra.Command{
		Use:   "table <vcf-file>",
		Short: "Flatten VCF records into a table",
		Long: `Read VCF records, optionally restricted to a region, and flatten the
fixed fields plus selected INFO and per-sample genotype fields into rows.
Cells missing from a record are written as explicit nulls.`,
		Example: `  vcframe table input.vcf
  vcframe table --region chr1:100-200 input.vcf.gz
  vcframe table --info-fields DP,AF --samples S1 -f jsonl input.vcf
  cat input.vcf | vcframe table -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := buildTable(args[0], &flags)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outputFile != "" {
				out, err = os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer out.Close()
			}

			switch format {
			case "tsv":
				return output.WriteTableTSV(out, tbl)
			case "jsonl":
				return output.WriteTableJSONL(out, tbl)
			default:
				return fmt.Errorf("unknown output format %q (expected tsv or jsonl)", format)
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "tsv", "output format: tsv, jsonl")

	return cmd
}

func newStoreCmd() *cobra.Command {
	var flags tableFlags
	var tableName string

	cmd := &cobra.Command{
		Use:   "store <vcf-file> <duckdb-file>",
		Short: "Materialize VCF records into a DuckDB table",
		Long: `Run the same flattening pipeline as 'table' and write the result into
a DuckDB database for downstream SQL or dataframe use.`,
		Example: `  vcframe store input.vcf variants.duckdb
  vcframe store --region chr1 --samples S1 input.vcf.gz chr1.duckdb`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := buildTable(args[0], &flags)
			if err != nil {
				return err
			}

			store, err := duckdb.Open(args[1])
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.WriteTable(tableName, tbl); err != nil {
				return err
			}
			if err := store.SetMetadata("source", args[0]); err != nil {
				return err
			}
			if flags.region != "" {
				if err := store.SetMetadata("region", flags.region); err != nil {
					return err
				}
			}

			logger.Info("materialized table",
				zap.String("table", tableName),
				zap.Int("rows", tbl.NumRows()),
				zap.Int("columns", len(tbl.Columns)))
			fmt.Fprintf(os.Stderr, "Wrote %d rows, %d columns to %s\n",
				tbl.NumRows(), len(tbl.Columns), args[1])
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&tableName, "table", "variants", "name of the DuckDB table to create")

	return cmd
}

// buildTable runs the read-project-assemble pipeline for one input file.
func buildTable(path string, flags *tableFlags) (*table.Table, error) {
	var header *vcf.Header
	var it vcf.RecordIterator

	if path == "-" {
		if flags.region != "" {
			return nil, fmt.Errorf("region queries require a file path, not stdin")
		}
		r, err := vcf.FromReader(os.Stdin)
		if err != nil {
			return nil, err
		}
		header = r.Header()
		it = vcf.Iterate(r)
	} else {
		q, err := vcf.OpenQuerier(path)
		if err != nil {
			return nil, err
		}
		defer q.Close()
		header = q.Header()

		if flags.region != "" {
			rg, err := vcf.ParseRegion(flags.region)
			if err != nil {
				return nil, err
			}
			it, err = q.Query(rg)
			if err != nil {
				return nil, err
			}
		} else {
			it, err = q.QueryAll()
			if err != nil {
				return nil, err
			}
		}
	}
	defer it.Close()

	proj, err := project.NewProjector(header, flags.request())
	if err != nil {
		return nil, err
	}
	proj.SetLogger(logger)

	asm := table.NewAssembler(proj.ColumnOrder())

	if flags.workers == 1 {
		for {
			rec, err := it.Next()
			if err != nil {
				return nil, err
			}
			if rec == nil {
				break
			}
			asm.Add(proj.Project(rec))
		}
		return asm.Finalize(), nil
	}

	// Parallel projection: records are independent, so only the reader
	// and the assembler stay sequential.
	items := make(chan project.WorkItem, 64)
	var readErr error
	go func() {
		defer close(items)
		seq := 0
		for {
			rec, err := it.Next()
			if err != nil {
				readErr = err
				return
			}
			if rec == nil {
				return
			}
			items <- project.WorkItem{Seq: seq, Record: rec}
			seq++
		}
	}()

	results := proj.ProjectParallel(items, flags.workers)
	if err := project.OrderedCollect(results, func(r project.WorkResult) error {
		asm.Add(r.Row)
		return nil
	}); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}

	return asm.Finalize(), nil
}
