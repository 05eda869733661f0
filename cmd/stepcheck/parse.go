package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stepcheck/internal/ast"
	"stepcheck/internal/diagfmt"
	"stepcheck/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file>",
		Short: "Parse a STEP file and dump its header and instances",
		Long:  `Parse builds the document of a STEP file without semantic checks and prints it`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Uint64("id", 0, "print only instance #N")
	cmd.Flags().String("type", "", "print only instances of this entity type (case-insensitive)")
	cmd.Flags().Bool("header", false, "print only the HEADER section")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	id, err := cmd.Flags().GetUint64("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	typ, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}
	headerOnly, err := cmd.Flags().GetBool("header")
	if err != nil {
		return fmt.Errorf("failed to get header flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(cmd.Context(), filePath, driver.Options{
		OnlyHeader:     headerOnly,
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.Doc == nil {
		colored, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		if err := diagfmt.Report(cmd.ErrOrStderr(), result.Diagnostics(), result.FileSet, diagfmt.PrettyOpts{Color: colored}); err != nil {
			return err
		}
		return exitError{code: 1}
	}

	// nil: все экземпляры
	var instances []*ast.Instance
	switch {
	case headerOnly:
		instances = []*ast.Instance{}
	case id != 0:
		inst, err := result.Doc.ByID(id)
		if err != nil {
			return err
		}
		instances = []*ast.Instance{inst}
	case typ != "":
		instances = result.Doc.ByType(typ)
		if instances == nil {
			instances = []*ast.Instance{}
		}
	}

	switch format {
	case "pretty":
		return diagfmt.FormatDocumentPretty(cmd.OutOrStdout(), result.Doc, instances, result.FileSet)
	case "json":
		return diagfmt.FormatDocumentJSON(cmd.OutOrStdout(), result.Doc, instances, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
