package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	flag "github.com/spf13/pflag"

	md2docx "github.com/alnah/go-md2docx"
)

// runStyles lists the available style presets.
func runStyles(args []string, env *Environment) error {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	var assetPath string
	fs.StringVar(&assetPath, "asset-path", "", "directory with custom presets in styles/")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printStylesUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: styles takes no arguments", ErrTooManyInputs)
	}

	loader := env.AssetLoader
	if loader == nil {
		if assetPath == "" {
			assetPath = os.Getenv("MD2DOCX_ASSET_PATH")
		}
		var err error
		loader, err = md2docx.NewAssetLoader(assetPath)
		if err != nil {
			return withStyleHint(err, env)
		}
	}

	infos, err := md2docx.ListStyles(loader)
	if err != nil {
		return withStyleHint(fmt.Errorf("listing styles: %w", err), env)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(env.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Name", "Description"})
	for _, info := range infos {
		name := info.Name
		if name == md2docx.DefaultStyle {
			name += " (default)"
		}
		tw.AppendRow(table.Row{name, info.Description})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 72}})
	tw.Render()
	return nil
}
