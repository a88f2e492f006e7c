package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess = 0 // every input converted
	exitError   = 1 // at least one conversion failed
	exitUsage   = 2 // bad flags or arguments
)

// usageError marks errors caused by the invocation itself rather than by
// a failed conversion, so main exits with the usage code.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

func main() {
	root := &cobra.Command{
		Use:           "folio",
		Short:         "Convert scanned PDFs and images into Markdown and DOCX",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(convertCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var uerr usageError
		if errors.As(err, &uerr) {
			os.Exit(exitUsage)
		}
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}
