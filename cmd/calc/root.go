package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-chi-calculator/internal/calculator/engine"
)

type options struct {
	maxLength int
	wide      bool
	verbose   bool
	logger    *zap.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          "calc",
		Short:        "Keypad calculator with operator precedence",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = newLogger(errOut, opts.verbose)
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().IntVar(&opts.maxLength, "max-length", engine.DefaultMaxLength, "maximum operand length")
	root.PersistentFlags().BoolVar(&opts.wide, "wide", false, "use the wide layout operand length")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every key to stderr")

	root.AddCommand(newEvalCmd(opts), newReplCmd(opts))
	return root
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

func (o *options) newSession(cmd *cobra.Command) (*engine.Session, error) {
	n := o.maxLength
	if o.wide && !cmd.Flags().Changed("max-length") {
		n = engine.WideMaxLength
	}
	s, err := engine.NewSession(engine.WithMaxLength(n))
	if err != nil {
		return nil, fmt.Errorf("max-length %d: %w", n, err)
	}
	return s, nil
}

func (o *options) apply(s *engine.Session, keys []engine.Key, trace io.Writer) {
	for _, k := range keys {
		res := s.Press(k)
		o.logger.Debug("key",
			zap.Stringer("key", k),
			zap.String("display", res.Display),
			zap.Stringer("state", res.State),
			zap.Int("depth", s.Depth()),
		)
		if res.Err != nil {
			o.logger.Warn("arithmetic error", zap.Stringer("key", k), zap.Error(res.Err))
		}
		if trace != nil {
			fmt.Fprintf(trace, "%-4s %-*s %s\n", k, s.MaxLength(), res.Display, res.State)
		}
	}
}

func newEvalCmd(opts *options) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "eval <keys...>",
		Short: "Replay keys and print the final display",
		Example: `  calc eval 3 + 4 x 2 =
  calc eval --trace "100 + 10 % ="`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := engine.ParseKeyList(args)
			if err != nil {
				return err
			}
			s, err := opts.newSession(cmd)
			if err != nil {
				return err
			}

			var w io.Writer
			if trace {
				w = cmd.OutOrStdout()
			}
			opts.apply(s, keys, w)
			if !trace {
				fmt.Fprintln(cmd.OutOrStdout(), s.Display())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print key, display and state after every key")
	return cmd
}

func newReplCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read keys line by line from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "q", "quit", "exit":
					return nil
				}

				keys, err := engine.ParseKeys(line)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					continue
				}
				opts.apply(s, keys, nil)
				fmt.Fprintln(out, s.Display())
			}
			return scanner.Err()
		},
	}
}
