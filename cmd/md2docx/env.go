package main

import (
	"io"
	"os"
	"time"

	md2docx "github.com/alnah/go-md2docx"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and preset loading.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// AssetLoader, when set, replaces the embedded presets and --asset-path.
	AssetLoader md2docx.AssetLoader
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
