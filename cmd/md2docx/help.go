package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to DOCX")
	fmt.Fprintln(w, "  styles     List style presets")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A markdown file as first argument is shorthand for convert.")
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to DOCX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .docx file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --html                Also write an HTML preview")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Title (\"\" = front matter, then first heading)")
	fmt.Fprintln(w, "      --author <s>          Author")
	fmt.Fprintln(w, "      --subject <s>         Subject")
	fmt.Fprintln(w, "      --description <s>     Description")
	fmt.Fprintln(w, "      --keywords <a,b>      Keywords")
	fmt.Fprintln(w, "      --date <s>            Creation date (YYYY-MM-DD, or \"auto\" = now)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <cm>         Margin on every side (0.5-10)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <name>        Style preset (see 'md2docx styles')")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom presets in styles/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --no-captions         Disable \"Figure N: alt\" captions")
	fmt.Fprintln(w, "      --caption-label <s>   Caption prefix (default: Figure)")
	fmt.Fprintln(w, "      --number-equations    Number display equations")
	fmt.Fprintln(w, "      --code-labels         Write the language above code blocks")
	fmt.Fprintln(w, "      --code-theme <s>      Chroma style for code colors (\"none\" = plain)")
	fmt.Fprintln(w, "      --plain-tables        Full grids instead of three-line tables")
	fmt.Fprintln(w, "      --indent-unit <n>     Spaces per list nesting level (default: 2)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing, statistics and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2DOCX_CONFIG, MD2DOCX_STYLE, MD2DOCX_ASSET_PATH, MD2DOCX_INPUT_DIR,")
	fmt.Fprintln(w, "  MD2DOCX_OUTPUT_DIR, MD2DOCX_AUTHOR, MD2DOCX_PAGE_SIZE, MD2DOCX_ORIENTATION,")
	fmt.Fprintln(w, "  MD2DOCX_CODE_THEME, MD2DOCX_WORKERS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage, 3 I/O, 4 conversion")
}

// printStylesUsage prints usage for the styles command.
func printStylesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx styles [--asset-path <dir>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List embedded style presets and those found in <dir>/styles/.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "styles":
		printStylesUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
