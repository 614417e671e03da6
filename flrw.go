/*flrw evaluates the background expansion history of flat FLRW cosmologies
from the command line or over HTTP.*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/flrw/cmd"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/server"
	"github.com/phil-mansfield/flrw/version"
)

var modeDescriptions = map[string]string{
	"params": "Print the parameters of the cosmology",
	"eval":   "Evaluate columns at redshifts read from stdin",
	"table":  "Evaluate columns on a grid uniform in ln(1 + z)",
}

var exampleUsage = strings.TrimSpace(`
  flrw params --h100 0.7 --omega-cdm 0.25
  echo "0 0.5 1 2" | tr ' ' '\n' | flrw eval z H age lookback
  flrw table --z-max 1100 --steps 100 --format json z Omega_m Omega_r
  flrw --config my.config serve --addr :8080
`)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	root := newRootCommand(os.Stdin, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}

// newRootCommand builds the flrw command tree.
func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	gConfig := cmd.DefaultGlobalConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "flrw",
		Short:         "Evaluate flat FLRW cosmologies",
		Example:       exampleUsage,
		Version:       version.SourceVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			changed := cmd.ChangedFlags(c.Flags())
			if err := gConfig.Load(cfgPath, changed); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			mode, _ := logging.ParseFlag(gConfig.LogMode)
			logging.Mode = mode
			return nil
		},
	}
	root.SetOut(stdout)

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "",
		"config file, in the [cosmology] format or .toml (default $FLRW_CONFIG)")
	gConfig.AddFlags(pf)

	for _, name := range []string{"params", "eval", "table"} {
		root.AddCommand(modeCommand(name, gConfig, stdin, stdout))
	}
	root.AddCommand(
		serveCommand(gConfig),
		configCommand(gConfig, stdout),
		versionCommand(stdout),
	)

	return root
}

func modeCommand(
	name string, gConfig *cmd.GlobalConfig, stdin io.Reader, stdout io.Writer,
) *cobra.Command {
	mode := cmd.ModeNames[name]()
	var modeConfig string

	c := &cobra.Command{
		Use:   name + " [flags] [columns...]",
		Short: modeDescriptions[name],
		RunE: func(c *cobra.Command, args []string) error {
			changed := cmd.ChangedFlags(c.Flags())
			if err := mode.ReadConfig(modeConfig, changed); err != nil {
				return fmt.Errorf("load %s config: %w", name, err)
			}

			out, err := mode.Run(c.Context(), args, gConfig, stdin)
			if err != nil {
				return fmt.Errorf("running mode %s: %w", name, err)
			}
			return cmd.WriteOutput(stdout, gConfig.Format, out)
		},
	}
	if name == "params" {
		c.Use = name
		c.Args = cobra.NoArgs
	} else {
		c.Long = modeDescriptions[name] + ".\n\n" + columnHelp()
		c.Flags().StringVar(&modeConfig, "mode-config", "",
			fmt.Sprintf("[%s] config file (see 'flrw config %s')", name, name))
	}
	mode.AddFlags(c.Flags())

	return c
}

func columnHelp() string {
	lines := []string{"Columns:"}
	for _, col := range cmd.Columns {
		units := ""
		if col.Units != "" {
			units = " [" + col.Units + "]"
		}
		lines = append(lines,
			fmt.Sprintf("  %-12s %s%s", col.Name, col.Doc, units))
	}
	lines = append(lines, "", "Default: "+strings.Join(cmd.DefaultColumns, " "))
	return strings.Join(lines, "\n")
}

func serveCommand(gConfig *cmd.GlobalConfig) *cobra.Command {
	var addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cosmology over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			log := gConfig.Logger()
			s, err := server.New(gConfig, log,
				prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
			if err != nil {
				return err
			}
			return s.ListenAndServe(c.Context(), addr)
		},
	}
	c.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return c
}

func configCommand(gConfig *cmd.GlobalConfig, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:       "config [params | eval | table]",
		Short:     "Print an example config file",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"params", "eval", "table"},
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprintln(stdout, gConfig.ExampleConfig())
				return err
			}
			mode, ok := cmd.ModeNames[args[0]]
			if !ok {
				return fmt.Errorf("I don't recognize the mode '%s'", args[0])
			}
			_, err := fmt.Fprintln(stdout, mode().ExampleConfig())
			return err
		},
	}
}

func versionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of flrw",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(stdout, "flrw version %s\n",
				version.SourceVersion)
			return err
		},
	}
}
