package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gopkg.in/hlandau/reloc.v1"
	"gopkg.in/hlandau/reloc.v1/resource"
)

type resolverFunc func(log *zap.Logger) (*reloc.Resolver, error)

func defaultResolver(log *zap.Logger) (*reloc.Resolver, error) {
	return reloc.New(reloc.Options{Logger: log})
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}

func newCLI(newResolver resolverFunc) *cobra.Command {
	var verbose bool
	var r *reloc.Resolver

	// resolved returns the resolver, failing if the executable was not found.
	resolved := func() (*reloc.Resolver, error) {
		if err := r.Err(); err != nil {
			return nil, err
		}
		return r, nil
	}

	printPath := func(get func(*reloc.Resolver) reloc.Path) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			r, err := resolved()
			if err != nil {
				return err
			}

			p := get(r)
			if !p.Valid() {
				return fmt.Errorf("path not known (located via %s)", r.Strategy())
			}

			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		}
	}

	rootCmd := &cobra.Command{
		Use:           "reloc",
		Short:         "Show where this program is running from",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd.ErrOrStderr(), verbose)
			var err error
			r, err = newResolver(log)
			return err
		},
		RunE: printPath((*reloc.Resolver).ApplicationDir),
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each attempt to locate the executable")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "appdir",
			Short: "Print the directory containing this executable",
			Args:  cobra.NoArgs,
			RunE:  printPath((*reloc.Resolver).ApplicationDir),
		},
		&cobra.Command{
			Use:     "resourcedir",
			Aliases: []string{"resdir"},
			Short:   "Print the resource directory",
			Args:    cobra.NoArgs,
			RunE:    printPath((*reloc.Resolver).ResourceDir),
		},
		&cobra.Command{
			Use:   "exe",
			Short: "Print the path of this executable",
			Args:  cobra.NoArgs,
			RunE:  printPath((*reloc.Resolver).Executable),
		},
		&cobra.Command{
			Use:   "layout",
			Short: "Print the installation layout around this executable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := resolved()
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				l := r.Layout()
				fmt.Fprintf(w, "strategy  %s\n", r.Strategy())
				fmt.Fprintf(w, "exe       %s\n", r.Executable())
				fmt.Fprintf(w, "appdir    %s\n", r.ApplicationDir())
				fmt.Fprintf(w, "resource  %s\n", l.Resource)
				fmt.Fprintf(w, "prefix    %s\n", l.Prefix)
				fmt.Fprintf(w, "bin       %s\n", l.Bin)
				fmt.Fprintf(w, "sbin      %s\n", l.Sbin)
				fmt.Fprintf(w, "data      %s\n", l.Data)
				fmt.Fprintf(w, "locale    %s\n", l.Locale)
				fmt.Fprintf(w, "lib       %s\n", l.Lib)
				fmt.Fprintf(w, "libexec   %s\n", l.LibExec)
				fmt.Fprintf(w, "etc       %s\n", l.Etc)
				return nil
			},
		},
		&cobra.Command{
			Use:   "resource [name]",
			Short: "Print a file from the resource directory (default " + resource.Name + ")",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := resolved()
				if err != nil {
					return err
				}

				name := resource.Name
				if len(args) > 0 {
					name = args[0]
				}

				f, err := resource.Open(r.ResourceDir(), name)
				if err != nil {
					return err
				}
				defer f.Close()

				_, err = io.Copy(cmd.OutOrStdout(), f)
				return err
			},
		},
	)

	return rootCmd
}
