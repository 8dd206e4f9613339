package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds core property flags.
type documentFlags struct {
	title       string
	author      string
	subject     string
	description string
	keywords    []string
	date        string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64 // cm, all four sides
}

// styleFlags holds preset selection flags.
type styleFlags struct {
	preset    string
	assetPath string
}

// contentFlags holds flags that change how blocks are rendered.
type contentFlags struct {
	noCaptions   bool
	captionLabel string
	numberEqs    bool
	codeLabels   bool
	codeTheme    string
	plainTables  bool
	indentUnit   int
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html bool // HTML preview alongside the DOCX
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	document   documentFlags
	page       pageFlags
	style      styleFlags
	content    contentFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing, statistics and debug logs")
}

// addDocumentFlags adds core property flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = front matter, then first heading)")
	fs.StringVar(&f.author, "author", "", "document author")
	fs.StringVar(&f.subject, "subject", "", "document subject")
	fs.StringVar(&f.description, "description", "", "document description")
	fs.StringSliceVar(&f.keywords, "keywords", nil, "comma-separated keywords")
	fs.StringVar(&f.date, "date", "", "creation date in the configured format, or \"auto\"")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in cm on every side (0.5-10)")
}

// addStyleFlags adds preset flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.preset, "style", "s", "", "style preset name (default: standard)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom presets in styles/")
}

// addContentFlags adds rendering flags to a FlagSet.
func addContentFlags(fs *flag.FlagSet, f *contentFlags) {
	fs.BoolVar(&f.noCaptions, "no-captions", false, "disable figure captions")
	fs.StringVar(&f.captionLabel, "caption-label", "", "figure caption prefix (default: Figure)")
	fs.BoolVar(&f.numberEqs, "number-equations", false, "number display equations")
	fs.BoolVar(&f.codeLabels, "code-labels", false, "write the language above code blocks")
	fs.StringVar(&f.codeTheme, "code-theme", "", "chroma style for code colors (\"none\" = plain)")
	fs.BoolVar(&f.plainTables, "plain-tables", false, "full table grids instead of three-line rules")
	fs.IntVar(&f.indentUnit, "indent-unit", 0, "spaces per list nesting level (0 = config or 2)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write an HTML preview alongside each DOCX")
}

// buildConvertFlagSet returns the convert FlagSet bound to f.
func buildConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addStyleFlags(fs, &f.style)
	addContentFlags(fs, &f.content)
	addOutputFlags(fs, &f.outputMode)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildConvertFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}

	return f, fs.Args(), nil
}

// wantsVerbose reports whether args request verbose output, before any
// command-specific parsing.
func wantsVerbose(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
