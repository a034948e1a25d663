/*
Command urldefang defangs URLs so they can be pasted into chat, email or
tickets without being turned into live links, and refangs them back.

	urldefang sanitize   < urls.txt      # https://a.com -> hXXps://a[.]com
	urldefang unsanitize defanged.txt    # hXXps://a[.]com -> https://a.com
	urldefang domains    < urls.txt      # unique second-level domains

Input is read from the files given as arguments, or stdin when there are
none. Only the first --max-lines lines are looked at; blank lines are
skipped. Lines that fail domain validation during unsanitize are listed on
stderr.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/avivbaron/urldefang/internal/buildinfo"
	"github.com/avivbaron/urldefang/internal/defang"
	"github.com/avivbaron/urldefang/internal/logs"
)

const (
	emptySanitize   = "No URLs to sanitize."
	emptyUnsanitize = "No valid URLs converted."
	emptyDomains    = "No valid domains extracted."
	rejectedHeader  = "The following URLs could not be processed:"
)

// exitError carries a process exit code through cobra's RunE.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

type options struct {
	maxLines int
	copy     bool
	strict   bool
	logLevel string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
	// clipboard writer, swapped in tests
	copyFn func(string) error
}

func newOptions(stdin io.Reader, stdout, stderr io.Writer) *options {
	return &options{stdin: stdin, stdout: stdout, stderr: stderr, copyFn: clipboard.WriteAll}
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "urldefang",
		Short:         "urldefang - defang and refang URLs, extract their domains",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.logger = logs.NewWithOptions(logs.Options{Level: o.logLevel, Console: o.stderr, Pretty: true})
		},
	}
	root.PersistentFlags().IntVarP(&o.maxLines, "max-lines", "n", defang.MaxLines, "Maximum number of input lines to process (0 for no limit)")
	root.PersistentFlags().BoolVarP(&o.copy, "copy", "c", false, "Copy the output to the system clipboard")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	sanitizeCmd := &cobra.Command{
		Use:   "sanitize [file...]",
		Short: "Defang URLs (https://a.com -> hXXps://a[.]com)",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := o.readLines(args)
			if err != nil {
				return err
			}
			return o.emit(defang.SanitizeLines(lines), emptySanitize)
		},
	}

	unsanitizeCmd := &cobra.Command{
		Use:     "unsanitize [file...]",
		Aliases: []string{"refang"},
		Short:   "Refang URLs and validate their domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := o.readLines(args)
			if err != nil {
				return err
			}
			return o.unsanitize(lines)
		},
	}
	unsanitizeCmd.Flags().BoolVar(&o.strict, "strict", false, "Exit with status 2 when any line is rejected")

	domainsCmd := &cobra.Command{
		Use:   "domains [file...]",
		Short: "List the unique second-level domains of URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := o.readLines(args)
			if err != nil {
				return err
			}
			return o.emit(defang.ExtractDomains(lines).Slice(), emptyDomains)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(o.stdout, buildinfo.Get().String())
		},
	}

	root.AddCommand(sanitizeCmd, unsanitizeCmd, domainsCmd, versionCmd)
	return root
}

// readLines reads the named files (stdin when none) and applies the line cap.
// The cap counts raw lines across all inputs, blanks included.
func (o *options) readLines(paths []string) ([]string, error) {
	var raw []string
	if len(paths) == 0 {
		b, err := io.ReadAll(o.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = defang.RawLines(string(b))
	}
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		raw = append(raw, defang.RawLines(string(b))...)
	}
	lines := defang.CleanLines(raw, o.maxLines)
	o.logger.Debug().Int("raw", len(raw)).Int("lines", len(lines)).Int("max_lines", o.maxLines).Msg("input read")
	return lines, nil
}

func (o *options) unsanitize(lines []string) error {
	accepted, rejected := defang.UnsanitizeLines(lines)
	if len(rejected) > 0 {
		fmt.Fprintln(o.stderr, rejectedHeader)
		for _, r := range rejected {
			fmt.Fprintln(o.stderr, r)
		}
		o.logger.Info().Int("accepted", len(accepted)).Int("rejected", len(rejected)).Msg("unsanitize finished with rejections")
	}
	if err := o.emit(accepted, emptyUnsanitize); err != nil {
		return err
	}
	if o.strict && len(rejected) > 0 {
		return &exitError{code: 2, msg: fmt.Sprintf("%d line(s) rejected", len(rejected))}
	}
	return nil
}

// emit prints results one per line, or the placeholder when there are none.
// Only real results are copied to the clipboard.
func (o *options) emit(results []string, placeholder string) error {
	if len(results) == 0 {
		fmt.Fprintln(o.stdout, placeholder)
		return nil
	}
	text := strings.Join(results, "\n")
	fmt.Fprintln(o.stdout, text)
	if o.copy {
		if err := o.copyFn(text); err != nil {
			// output is already on stdout; a missing clipboard is not fatal
			o.logger.Warn().Err(err).Msg("copy to clipboard failed")
		}
	}
	return nil
}

func main() {
	if err := newRootCmd(newOptions(os.Stdin, os.Stdout, os.Stderr)).Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
