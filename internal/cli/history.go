package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/triviarpg/internal/engine"
	"github.com/roach88/triviarpg/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit  int
	Action string // optional - filter to one action name
}

// HistoryEntry is one journaled action attempt.
type HistoryEntry struct {
	Seq    int64           `json:"seq"`
	ID     string          `json:"id"`
	Action string          `json:"action"`
	Args   json.RawMessage `json:"args"`
	OK     bool            `json:"ok"`
	Error  string          `json:"error,omitempty"`
	At     time.Time       `json:"at"`
}

// HistoryResult holds the history output.
type HistoryResult struct {
	Entries []HistoryEntry `json:"entries"`
	Stats   HistoryStats   `json:"stats"`
}

// HistoryStats summarizes the listed entries.
type HistoryStats struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

func (r HistoryResult) String() string {
	if len(r.Entries) == 0 {
		return "No actions recorded"
	}
	var b strings.Builder
	for _, e := range r.Entries {
		status := "ok"
		if !e.OK {
			status = "rejected: " + e.Error
		}
		args := string(e.Args)
		if args == "{}" {
			args = ""
		}
		fmt.Fprintf(&b, "%6d  %s  %-22s %s  %s\n", e.Seq, e.At.Format(time.RFC3339), e.Action, args, status)
	}
	fmt.Fprintf(&b, "%d actions: %d accepted, %d rejected", r.Stats.Total, r.Stats.Accepted, r.Stats.Rejected)
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the action journal",
		Long: `Show the most recent action attempts from the journal, oldest first.

Rejected attempts are listed with the reason they were refused.

Examples:
  triviarpg history
  triviarpg history --limit 100 --action open-chest
  triviarpg history --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "number of entries to show (0 = all)")
	cmd.Flags().StringVar(&opts.Action, "action", "", "filter to one action name")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var recs []engine.ActionRecord
	if opts.Action != "" {
		recs, err = st.ReadActionsNamed(ctx, opts.Action, opts.Limit)
	} else {
		recs, err = st.ReadActions(ctx, opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	return newFormatter(opts.RootOptions, cmd).Success(buildHistory(recs))
}

func buildHistory(recs []engine.ActionRecord) HistoryResult {
	result := HistoryResult{Entries: make([]HistoryEntry, 0, len(recs))}
	for _, rec := range recs {
		result.Entries = append(result.Entries, HistoryEntry{
			Seq:    rec.Seq,
			ID:     rec.ID,
			Action: rec.Action,
			Args:   rec.Args,
			OK:     rec.OK,
			Error:  rec.Error,
			At:     rec.At,
		})
		if rec.OK {
			result.Stats.Accepted++
		} else {
			result.Stats.Rejected++
		}
	}
	result.Stats.Total = len(result.Entries)
	return result
}
