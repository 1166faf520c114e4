package cli

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/triviarpg/internal/config"
)

// ConfigValidation holds config validate results.
type ConfigValidation struct {
	Valid  bool     `json:"valid"`
	Path   string   `json:"path,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func (v ConfigValidation) String() string {
	if v.Valid {
		return "Config valid"
	}
	out := "Config invalid:"
	for _, e := range v.Errors {
		out += "\n  - " + e
	}
	return out
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and check configuration",
	}
	cmd.AddCommand(newConfigValidateCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	return cmd
}

func newConfigValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a config file and the environment overrides",
		Long: `Check a config file, together with TRIVIARPG_* environment overrides,
against the configuration rules and the balance schema.

Every problem is reported, not just the first. Without a file argument the
--config flag is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.ConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigValidate(rootOpts, path, cmd)
		},
	}
}

func runConfigValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	formatter.VerboseLog("Validating config %q", path)

	_, err := config.Load(path)
	if err == nil {
		return formatter.Success(ConfigValidation{Valid: true, Path: path})
	}

	if errors.Is(err, fs.ErrNotExist) {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return WrapExitError(ExitCommandError, "config not found", err)
	}

	result := ConfigValidation{Path: path, Errors: splitJoined(err)}
	if opts.Format == "json" {
		_ = formatter.Error(ErrCodeConfig, "config invalid", result)
	} else {
		_ = formatter.Success(result)
	}
	return WrapExitError(ExitFailure, "config invalid", err)
}

// splitJoined unpacks an errors.Join tree into one message per error.
func splitJoined(err error) []string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	for _, e := range joined.Unwrap() {
		out = append(out, splitJoined(e)...)
	}
	return out
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			formatter := newFormatter(rootOpts, cmd)
			if rootOpts.Format == "json" {
				return formatter.Success(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to encode config", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
