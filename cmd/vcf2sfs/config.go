package main

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configKeys lists the settings understood by vcf2sfs.
var configKeys = []string{
	"input.populations",
	"input.skip_invalid",
	"input.strict_samples",
	"output.dir",
	"output.name",
	"output.formats",
	"log.progress_interval",
	"log.verbose",
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vcf2sfs configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.vcf2sfs.yaml.",
		Example: `  vcf2sfs config                              # show all config
  vcf2sfs config set output.formats dadi       # only write dadi files
  vcf2sfs config set input.skip_invalid true   # skip malformed records
  vcf2sfs config get log.progress_interval     # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Known keys: " + strings.Join(configKeys, ", "),
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	settings := make(map[string]any, len(configKeys))
	for _, key := range configKeys {
		settings[key] = viper.Get(key)
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "# No config file. Defaults shown; write one with 'vcf2sfs config set'.")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

// parseValue converts a command-line value to the type stored for key.
func parseValue(key, value string) (any, error) {
	switch key {
	case "input.skip_invalid", "input.strict_samples", "log.verbose":
		switch value {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
		return nil, fmt.Errorf("%s: %q is not a boolean", key, value)
	case "log.progress_interval":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: %q is not a non-negative integer", key, value)
		}
		return n, nil
	case "output.formats":
		formats := strings.Split(value, ",")
		for i := range formats {
			formats[i] = strings.TrimSpace(formats[i])
		}
		return formats, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	if !slices.Contains(configKeys, key) {
		known := append([]string(nil), configKeys...)
		sort.Strings(known)
		return usageError{fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(known, ", "))}
	}

	v, err := parseValue(key, value)
	if err != nil {
		return usageError{err}
	}
	viper.Set(key, v)

	// Ensure config file exists
	cfgPath := viper.ConfigFileUsed()
	if cfgPath == "" {
		cfgPath, err = defaultConfigPath()
		if err != nil {
			return err
		}
	}

	if err := viper.WriteConfigAs(cfgPath); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, cfgPath)
	return nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
