package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"hdrbar/internal/config"
)

// Execute runs the hdrbar command line. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around a fresh configuration
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "hdrbar",
		Short: "Interactive multi-column table header in the terminal",
		Long: `hdrbar shows a table under a header whose columns can be resized,
reordered, sorted and hidden with the mouse. The layout is saved between
sessions and can be driven remotely over JSON-RPC.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(v, cfgFile); err != nil {
				return err
			}
			return bindFlags(cmd, v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hdrbar.yaml)")
	flags.String("data", "", "CSV file to show, the built-in sample when empty")
	flags.String("theme", "dark", "color theme: dark or light")
	flags.String("layout-backend", "yaml", "layout store: yaml or sqlite")
	flags.String("layout-path", "", "layout store file")
	flags.String("layout-name", "default", "name the layout is saved under")
	flags.String("rpc-listen", "", "address the remote control server listens on")
	flags.String("log-file", "", "log file, logging is off when empty")
	flags.String("log-level", "info", "log level")

	rootCmd.AddCommand(
		newRunCmd(v),
		newPrintCmd(v),
		newRemoteCmd(v),
		newConfigCmd(v),
	)
	return rootCmd
}

// configKey maps a flag name to its configuration key: log-level is
// log.level. Flags without a dash keep their name.
func configKey(flag string) string {
	return strings.Replace(flag, "-", ".", 1)
}

// bindFlags applies config values to flags that were not given explicitly
// and lets the configuration read the flags back. Explicit flags win.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" || f.Name == "help" {
			return
		}

		key := configKey(f.Name)
		if !f.Changed && v.IsSet(key) {
			if serr := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(key))); serr != nil {
				err = fmt.Errorf("failed to set flag %s from config: %w", f.Name, serr)
				return
			}
		}
		if f.Changed {
			v.Set(key, f.Value.String())
		}
	})
	return err
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
