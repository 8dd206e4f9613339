// Package md2docx converts Markdown documents to Word documents (.docx).
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.docx", result.DOCX, 0644)
//
// Problems in single nodes do not fail a conversion. An unsupported formula
// is kept as plain text and an unreadable image becomes a red placeholder;
// both are reported in result.Warnings with their source line.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line endings, NFC, list indentation, table
//     headers, LaTeX delimiters)
//  2. Parsing into a block tree via Goldmark (GFM, math, front matter)
//  3. Assembly into paragraphs, runs, tables, Office Math and image parts,
//     with list numbering rendered as literal text
//  4. Serialization into a byte-deterministic DOCX package
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2docx.NewConverter(
//	    md2docx.WithStyle("academic"),
//	    md2docx.WithEquationNumbers(true),
//	    md2docx.WithStyleOverrides(map[string]md2docx.RoleSpec{
//	        "Heading1": {Font: md2docx.FontSpec{Color: ptr("1F3864")}},
//	    }),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown:  content,
//	    SourceDir: "/path/to/markdown", // for relative image paths
//	    Page:      &md2docx.PageSettings{Size: "letter", Orientation: "landscape"},
//	    Metadata:  &md2docx.Metadata{Title: "Report"},
//	})
//
// # Images
//
// The built-in resolver reads files under Input.SourceDir, data: URIs, and
// bytes pre-fetched into Input.Images. It never touches the network; remote
// images must be pre-fetched or served by a custom ImageResolver.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. ConverterPool bounds how many
// conversions run at once:
//
//	pool, err := md2docx.NewConverterPool(md2docx.ResolvePoolSize(0))
//	conv, err := pool.Acquire(ctx)
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Styles
//
// Override built-in presets with a directory holding styles/{name}.yaml:
//
//	loader, err := md2docx.NewAssetLoader("/path/to/assets")
//	conv, err := md2docx.NewConverter(md2docx.WithAssetLoader(loader))
package md2docx
