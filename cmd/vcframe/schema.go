package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inodb/vcframe/internal/output"
	"github.com/inodb/vcframe/internal/table"
	"github.com/inodb/vcframe/internal/vcf"
)

func newSchemaCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "schema <vcf-file>",
		Short: "Print the declared INFO and FORMAT field schema",
		Long: `Print the INFO and FORMAT field declarations of a VCF header as a
table with name, number, type and description columns, in declaration order.`,
		Example: `  vcframe schema input.vcf
  vcframe schema --kind info input.vcf.gz
  cat input.vcf | vcframe schema -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(args[0], kind)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "all", "which declarations to print: info, format, samples, all")

	return cmd
}

func runSchema(path, kind string) error {
	r, err := vcf.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	header := r.Header()

	switch kind {
	case "info":
		return output.WriteTableTSV(os.Stdout, table.SchemaTable(header.InfoFields()))
	case "format":
		return output.WriteTableTSV(os.Stdout, table.SchemaTable(header.FormatFields()))
	case "samples":
		for _, s := range header.SampleNames() {
			fmt.Println(s)
		}
		return nil
	case "all":
		fmt.Println("##INFO")
		if err := output.WriteTableTSV(os.Stdout, table.SchemaTable(header.InfoFields())); err != nil {
			return err
		}
		fmt.Println("##FORMAT")
		if err := output.WriteTableTSV(os.Stdout, table.SchemaTable(header.FormatFields())); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown schema kind %q (expected info, format, samples or all)", kind)
	}
}
