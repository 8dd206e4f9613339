package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2docx.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	HTMLPath   string
	Err        error
	Duration   time.Duration
	Warnings   []md2docx.Warning
	Stats      md2docx.Stats
}

// convertBatch processes files concurrently, one worker per pool slot.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool *md2docx.ConverterPool, files []FileToConvert, params *conversionParams, now func() time.Time) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				conv, err := pool.Acquire(ctx)
				if err != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       err,
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params, now)
				pool.Release(conv)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams, now func() time.Time) ConversionResult {
	start := now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return done(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	convResult, err := conv.Convert(ctx, md2docx.Input{
		Markdown:    string(content),
		SourceDir:   filepath.Dir(f.InputPath),
		Page:        params.page,
		Metadata:    params.metadata,
		HTMLPreview: params.html,
	})
	if err != nil {
		return done(err)
	}
	result.Warnings = convResult.Warnings
	result.Stats = convResult.Stats

	if err := fileutil.WriteAtomic(f.OutputPath, convResult.DOCX, filePermissions); err != nil {
		return done(fmt.Errorf("%w: %w", ErrWriteDOCX, err))
	}

	if params.html {
		htmlPath, err := htmlOutputPath(f.OutputPath)
		if err != nil {
			return done(err)
		}
		if err := fileutil.WriteAtomic(htmlPath, convResult.HTML, filePermissions); err != nil {
			return done(fmt.Errorf("writing HTML preview: %w", err))
		}
		result.HTMLPath = htmlPath
	}

	return done(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Warnings  int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Warnings += len(r.Warnings)
	}
	return summary
}

// reportResults prints per-file outcomes and returns the error the command
// exits with. A single failed file returns its own error; a batch with
// failures returns ErrConversionFailed.
func reportResults(results []ConversionResult, common commonFlags, env *Environment) error {
	summary := countResults(results)
	single := len(results) == 1

	created := color.New(color.FgGreen)
	failed := color.New(color.FgRed, color.Bold)
	warned := color.New(color.FgYellow)
	kinds := make(map[md2docx.WarningKind]bool)

	for _, r := range results {
		if r.Err != nil {
			if !single {
				failed.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}

		if common.quiet {
			continue
		}

		if common.verbose {
			created.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			created.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.HTMLPath != "" {
			created.Fprintf(env.Stdout, "Created %s\n", r.HTMLPath)
		}
		for _, w := range r.Warnings {
			warned.Fprintf(env.Stderr, "warning: %s: %s\n", r.InputPath, w)
			kinds[w.Kind] = true
		}
	}

	if !common.quiet {
		printWarningHints(kinds, env)
		if common.verbose && summary.Succeeded > 0 {
			printStatsTable(results, env)
		}
		if len(results) > 1 {
			fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
		}
	}

	if summary.Failed == 0 {
		return nil
	}
	if single {
		return fmt.Errorf("%s: %w", results[0].InputPath, results[0].Err)
	}
	return fmt.Errorf("%w: %d of %d files", ErrConversionFailed, summary.Failed, len(results))
}

// printWarningHints prints one hint per warning kind seen.
func printWarningHints(kinds map[md2docx.WarningKind]bool, env *Environment) {
	var lines []string
	if kinds[md2docx.WarnImageUnavailable] || kinds[md2docx.WarnUnsupportedImage] {
		lines = append(lines, hints.ForImageUnavailable())
	}
	if kinds[md2docx.WarnFormulaFallback] {
		lines = append(lines, hints.ForFormulaFallback())
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(l, "\n"))
	}
}

// printStatsTable renders per-file document statistics.
func printStatsTable(results []ConversionResult, env *Environment) {
	tw := table.NewWriter()
	tw.SetOutputMirror(env.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"File", "Paragraphs", "Tables", "Images", "Equations", "Links", "Warnings", "Time"})

	var total md2docx.Stats
	var warnings int
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		s := r.Stats
		tw.AppendRow(table.Row{
			r.InputPath, s.Paragraphs, s.Tables, s.Images, s.Equations, s.Links,
			len(r.Warnings), r.Duration.Round(time.Millisecond),
		})
		total.Paragraphs += s.Paragraphs
		total.Tables += s.Tables
		total.Images += s.Images
		total.Equations += s.Equations
		total.Links += s.Links
		warnings += len(r.Warnings)
	}
	tw.AppendFooter(table.Row{"Total", total.Paragraphs, total.Tables, total.Images, total.Equations, total.Links, warnings, ""})

	columns := []table.ColumnConfig{{Number: 1, WidthMax: 48}}
	for n := 2; n <= 8; n++ {
		columns = append(columns, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(columns)
	tw.Render()
}
