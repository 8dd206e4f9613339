package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

func main() {
	setMaxProcs(wantsVerbose(os.Args[1:]), os.Stderr)

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// setMaxProcs configures GOMAXPROCS from the container CPU quota, logging
// the decision only when verbose.
func setMaxProcs(verbose bool, w io.Writer) {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}
}

// run dispatches a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch cmd := args[0]; cmd {
	case "convert":
		err = runConvert(ctx, args[1:], env)
	case "styles":
		err = runStyles(args[1:], env)
	case "version", "--version":
		printVersion(env.Stdout)
	case "help", "-h", "--help":
		return runHelp(args[1:], env)
	default:
		if fileutil.IsMarkdown(cmd) {
			err = runConvert(ctx, args, env)
			break
		}
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "%s %v\n", color.RedString("error:"), err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// usageError marks a flag parsing error as a usage error. Help requests
// pass through unchanged.
func usageError(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// printVersion prints the version with the toolchain and platform.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "md2docx %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
