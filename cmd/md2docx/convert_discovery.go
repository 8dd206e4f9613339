package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrRemoteInput        = errors.New("remote input is not supported")
	ErrTooManyInputs      = errors.New("too many inputs")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// resolveInputPath picks the positional argument, falling back to the
// configured default directory.
func resolveInputPath(args []string, defaultDir string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one file or directory, got %d", ErrTooManyInputs, len(args))
	}
	if len(args) == 1 {
		if fileutil.IsURL(args[0]) {
			return "", fmt.Errorf("%w: %s (download it first)", ErrRemoteInput, args[0])
		}
		return args[0], nil
	}
	if defaultDir != "" {
		return defaultDir, nil
	}
	return "", fmt.Errorf("%w: pass a file or directory, or set input.defaultDir", ErrNoInput)
}

// discoverFiles finds all markdown files to convert. Directory results are
// sorted by path.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "")
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.IsMarkdown(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].InputPath < files[j].InputPath })
	return files, nil
}

// resolveOutputPath determines the DOCX output path for a markdown file.
// An outputDir ending in .docx names the file directly; otherwise the
// input's path relative to baseInputDir is mirrored under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) (string, error) {
	if outputDir == "" {
		return fileutil.ReplaceExt(inputPath, "docx")
	}

	if strings.EqualFold(filepath.Ext(outputDir), ".docx") {
		return outputDir, nil
	}

	name, err := fileutil.ReplaceExt(filepath.Base(inputPath), "docx")
	if err != nil {
		return "", err
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name), nil
		}
	}

	return filepath.Join(outputDir, name), nil
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)%s", ErrInvalidWorkerCount, n, hints.ForWorkers(md2docx.MaxPoolSize))
	}
	if n > md2docx.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)%s", ErrInvalidWorkerCount, n, md2docx.MaxPoolSize, hints.ForWorkers(md2docx.MaxPoolSize))
	}
	return nil
}

// htmlOutputPath returns the HTML preview path corresponding to a DOCX path.
func htmlOutputPath(docxPath string) (string, error) {
	return fileutil.ReplaceExt(docxPath, "html")
}
