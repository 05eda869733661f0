package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stepcheck/internal/diag"
	"stepcheck/internal/diagfmt"
	"stepcheck/internal/driver"
	"stepcheck/internal/observ"
	"stepcheck/internal/source"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [flags] <file|directory>",
		Short: "Validate a STEP file or every STEP file in a directory",
		Long: `Validate checks the ISO 10303-21 syntax of a file and reports duplicate
instance names. Prints "Valid" when nothing is wrong; exits with status 1
when any diagnostic is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	f := cmd.Flags()
	f.String("format", "pretty", "output format (pretty|json|short)")
	f.Bool("only-header", false, "stop after the HEADER section and check its fields")
	f.Bool("check-refs", false, "report #N references that name no instance")
	f.Bool("check-header", false, "check parameter counts of FILE_DESCRIPTION, FILE_NAME, FILE_SCHEMA")
	f.Bool("with-notes", false, "include diagnostic notes in output")
	f.Bool("fullpath", false, "emit absolute file paths in output")
	f.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	f.String("ui", "auto", "progress view for directories (auto|on|off)")
	f.Bool("cache", false, "reuse results of unchanged files from the disk cache")
	f.String("cache-dir", "", "disk cache directory (default: user cache dir)")
	f.StringSlice("ext", driver.DefaultExtensions, "file extensions picked up in directories")
	return cmd
}

type validateFlags struct {
	format    string
	withNotes bool
	fullPath  bool
	jobs      int
	ui        uiMode
	quiet     bool
	timings   bool
}

func readValidateFlags(cmd *cobra.Command) (validateFlags, driver.Options, error) {
	var (
		vf   validateFlags
		opts driver.Options
		err  error
	)
	flags := cmd.Flags()

	if vf.format, err = flags.GetString("format"); err != nil {
		return vf, opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch vf.format {
	case "pretty", "json", "short":
	default:
		return vf, opts, fmt.Errorf("unknown format: %s", vf.format)
	}
	if vf.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return vf, opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if vf.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return vf, opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if vf.jobs, err = flags.GetInt("jobs"); err != nil {
		return vf, opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return vf, opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if vf.ui, err = readUIMode(uiStr); err != nil {
		return vf, opts, err
	}
	if vf.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return vf, opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if vf.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return vf, opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts.EnableTimings = vf.timings
	if opts.OnlyHeader, err = flags.GetBool("only-header"); err != nil {
		return vf, opts, fmt.Errorf("failed to get only-header flag: %w", err)
	}
	if opts.CheckReferences, err = flags.GetBool("check-refs"); err != nil {
		return vf, opts, fmt.Errorf("failed to get check-refs flag: %w", err)
	}
	if opts.CheckHeader, err = flags.GetBool("check-header"); err != nil {
		return vf, opts, fmt.Errorf("failed to get check-header flag: %w", err)
	}
	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return vf, opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.Extensions, err = flags.GetStringSlice("ext"); err != nil {
		return vf, opts, fmt.Errorf("failed to get ext flag: %w", err)
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return vf, opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		dir, err := flags.GetString("cache-dir")
		if err != nil {
			return vf, opts, fmt.Errorf("failed to get cache-dir flag: %w", err)
		}
		if opts.Cache, err = driver.OpenDiskCache("stepcheck", dir); err != nil {
			return vf, opts, fmt.Errorf("failed to open cache: %w", err)
		}
	}
	return vf, opts, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer dumpTraceOnPanic(ctx)

	target := args[0]
	vf, opts, err := readValidateFlags(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fs      *source.FileSet
		results []driver.DirResult
	)
	if st.IsDir() {
		files, err := driver.ListFiles(target, opts.Extensions)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no files with extensions %s in %s", strings.Join(opts.Extensions, ", "), target)
		}
		if shouldUseTUI(vf.ui) && !vf.quiet {
			fs, results, err = runDirWithUI(ctx, target, files, opts, vf.jobs)
		} else {
			fs, results, err = driver.ValidateDir(ctx, target, opts, vf.jobs, nil)
		}
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	} else {
		res, err := driver.ValidateFile(ctx, target, opts)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fs = res.FileSet
		results = []driver.DirResult{{Path: target, FileID: res.File.ID, Result: res}}
	}

	colored, err := useColor(cmd, outFile(cmd))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := writeValidation(out, fs, results, vf, colored, st.IsDir()); err != nil {
		return err
	}
	if vf.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}

	for _, r := range results {
		if !r.Result.Valid() {
			return exitError{code: 1}
		}
	}
	return nil
}

func writeValidation(out io.Writer, fs *source.FileSet, results []driver.DirResult, vf validateFlags, colored, dir bool) error {
	// в каталоге пути считаются от него
	pathMode := diagfmt.PathModeAuto
	switch {
	case vf.fullPath:
		pathMode = diagfmt.PathModeAbsolute
	case dir:
		pathMode = diagfmt.PathModeRelative
	}

	switch vf.format {
	case "short":
		var all []diag.Diagnostic
		for _, r := range results {
			all = append(all, r.Result.Diagnostics()...)
		}
		output := diag.FormatShortDiagnostics(all, fs, vf.withNotes)
		if output == "" {
			output = diagfmt.ValidText
		}
		_, err := fmt.Fprintln(out, output)
		return err

	case "json":
		jsonOpts := diagfmt.JSONOpts{PathMode: pathMode, IncludeNotes: vf.withNotes}
		if !dir {
			r := results[0]
			return diagfmt.JSON(out, displayPath(fs, r, pathMode), r.Result.Diagnostics(), fs, jsonOpts)
		}
		reports := make([]diagfmt.FileReportJSON, 0, len(results))
		for _, r := range results {
			reports = append(reports, diagfmt.BuildFileReport(displayPath(fs, r, pathMode), r.Result.Diagnostics(), fs, jsonOpts))
		}
		return diagfmt.JSONReports(out, reports)
	}

	prettyOpts := diagfmt.PrettyOpts{Color: colored, PathMode: pathMode, ShowNotes: vf.withNotes}
	if !dir {
		return diagfmt.Report(out, results[0].Result.Diagnostics(), fs, prettyOpts)
	}

	// --quiet: только файлы с ошибками, путь в первой строке отчёта
	if vf.quiet {
		prettyOpts.ShowPath = true
		first := true
		for _, r := range results {
			if r.Result.Valid() {
				continue
			}
			if !first {
				fmt.Fprintln(out)
			}
			first = false
			if err := diagfmt.Report(out, r.Result.Diagnostics(), fs, prettyOpts); err != nil {
				return err
			}
		}
		return nil
	}

	invalid := 0
	for idx, r := range results {
		if idx > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s ==\n", displayPath(fs, r, pathMode))
		if err := diagfmt.Report(out, r.Result.Diagnostics(), fs, prettyOpts); err != nil {
			return err
		}
		if !r.Result.Valid() {
			invalid++
		}
	}
	_, err := fmt.Fprintf(out, "\n%d file(s): %d valid, %d invalid\n", len(results), len(results)-invalid, invalid)
	return err
}

func displayPath(fs *source.FileSet, r driver.DirResult, mode diagfmt.PathMode) string {
	f := fs.Get(r.FileID)
	if f == nil {
		return r.Path
	}
	switch mode {
	case diagfmt.PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case diagfmt.PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}

func printTimings(out io.Writer, results []driver.DirResult) {
	var total observ.Report
	cached := 0
	for _, r := range results {
		if r.Result.Cached {
			cached++
		}
		if r.Result.Timing != nil {
			total.Merge(*r.Result.Timing)
		}
	}
	if len(total.Phases) > 0 {
		fmt.Fprint(out, total.Summary())
	}
	if cached > 0 {
		fmt.Fprintf(out, "  %d of %d file(s) from cache\n", cached, len(results))
	}
}
