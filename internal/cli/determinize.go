package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lbehrens/powerset/pkg/cache"
	"github.com/lbehrens/powerset/pkg/machine"
	"github.com/lbehrens/powerset/pkg/pipeline"
)

// determinizeOpts holds the command-line flags for the determinize command.
type determinizeOpts struct {
	output  string // output file path ("" writes to stdout)
	text    bool   // human-readable text output instead of JSON
	noCache bool   // skip the file cache
}

// newDeterminizeCmd creates the determinize command. It reads an automaton
// description (JSON, or TOML for .toml files), runs subset construction, and
// writes the resulting machine as JSON (or text with --text).
func newDeterminizeCmd() *cobra.Command {
	var opts determinizeOpts

	cmd := &cobra.Command{
		Use:   "determinize [file]",
		Short: "Convert an NFA description into a deterministic machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeterminize(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.text, "text", false, "write a human-readable transition table instead of JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the determinization cache")

	return cmd
}

func runDeterminize(cmd *cobra.Command, path string, opts *determinizeOpts) error {
	logger := loggerFromContext(cmd.Context())

	desc, err := machine.ReadDescriptionFile(path)
	if err != nil {
		return err
	}

	c, err := openCache(opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	prog := newProgress(logger)
	runner := pipeline.NewRunner(c, nil, logger)
	result, err := runner.Determinize(cmd.Context(), desc)
	if err != nil {
		return err
	}

	m := result.Machine
	if result.Cached {
		logger.Debug("served from cache")
	} else {
		prog.done(fmt.Sprintf("Determinized %d states", len(m.States())))
	}

	if err := writeMachineOutput(m, opts); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote %d states, %d accepting", len(m.States()), len(m.Accept))
		printFile(opts.output)
	}
	return nil
}

// writeMachineOutput writes m to the configured destination in the
// configured format.
func writeMachineOutput(m machine.Machine, opts *determinizeOpts) error {
	w := os.Stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.output, err)
		}
		defer f.Close()
		w = f
	}
	if opts.text {
		return machine.WriteText(m, w)
	}
	return machine.WriteMachine(m, w)
}

// openCache opens the file cache under the user cache directory, or the
// null cache when disabled.
func openCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the determinization cache directory.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "powerset"), nil
}
