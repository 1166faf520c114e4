package cli

import (
	"github.com/spf13/cobra"
)

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	Yes bool
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved game and start over",
		Long: `Delete the saved game and start over from a fresh profile.

The action journal is kept; the reset itself is journaled like any other action.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "confirm the reset")

	return cmd
}

func runReset(opts *ResetOptions, cmd *cobra.Command) error {
	if !opts.Yes {
		return NewExitError(ExitCommandError, "reset deletes the saved game; pass --yes to confirm")
	}
	ctx := cmdContext(cmd)
	sess, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer sess.Close(ctx)

	formatter := newFormatter(opts.RootOptions, cmd)
	if err := sess.engine.Reset(ctx); err != nil {
		return formatter.Rejected("reset", err)
	}
	return formatter.Success(DoResult{Action: "reset", Seq: sess.engine.Seq()})
}
