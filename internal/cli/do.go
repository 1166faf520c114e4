package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/triviarpg/internal/engine"
)

// DoResult is the outcome of one invoked action.
type DoResult struct {
	Action string `json:"action"`
	Seq    int64  `json:"seq"`
	Result any    `json:"result,omitempty"`
}

func (r DoResult) String() string {
	if r.Result == nil {
		return fmt.Sprintf("%s ok (seq %d)", r.Action, r.Seq)
	}
	data, err := json.MarshalIndent(r.Result, "", "  ")
	if err != nil {
		return fmt.Sprintf("%s ok (seq %d): %v", r.Action, r.Seq, r.Result)
	}
	return fmt.Sprintf("%s ok (seq %d)\n%s", r.Action, r.Seq, data)
}

// NewDoCommand creates the do command.
func NewDoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "do <action> [key=value...]",
		Short: "Apply one action to the saved game",
		Long: `Apply one action to the saved game and save the result.

Arguments are passed as key=value pairs. Lists are comma separated.
Run "triviarpg actions" for the available actions and their arguments.

Examples:
  triviarpg do start-combat
  triviarpg do attack hit=true category=science
  triviarpg do open-chest cost=500
  triviarpg do bulk-sell kind=weapon ids=w1,w2,w3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDo(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runDo(opts *RootOptions, action string, pairs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	args, err := parseArgs(pairs)
	if err != nil {
		_ = formatter.Error(ErrCodeArgs, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}

	ctx := cmdContext(cmd)
	sess, err := openSession(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer sess.Close(ctx)

	formatter.VerboseLog("Invoking %s with %v", action, pairs)
	result, err := sess.engine.Invoke(ctx, action, args)
	if err != nil {
		return formatter.Rejected(action, err)
	}
	return formatter.Success(DoResult{Action: action, Seq: sess.engine.Seq(), Result: result})
}

// parseArgs turns key=value pairs into action arguments. Values stay
// strings; the engine converts them per argument.
func parseArgs(pairs []string) (engine.Args, error) {
	args := engine.Args{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q: want key=value", pair)
		}
		if _, dup := args[key]; dup {
			return nil, fmt.Errorf("argument %q given twice", key)
		}
		args[key] = value
	}
	return args, nil
}

// ActionInfo describes an action for the actions command.
type ActionInfo struct {
	Name    string   `json:"name"`
	Args    []string `json:"args,omitempty"`
	Summary string   `json:"summary"`
}

type actionList []ActionInfo

func (l actionList) String() string {
	var b strings.Builder
	for i, a := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		usage := a.Name
		for _, arg := range a.Args {
			if name, optional := strings.CutSuffix(arg, "?"); optional {
				usage += " [" + name + "=...]"
			} else {
				usage += " " + arg + "=..."
			}
		}
		fmt.Fprintf(&b, "%-44s %s", usage, a.Summary)
	}
	return b.String()
}

// NewActionsCommand creates the actions command.
func NewActionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the actions accepted by do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := engine.Actions()
			list := make(actionList, 0, len(specs))
			for _, spec := range specs {
				list = append(list, ActionInfo{Name: spec.Name, Args: spec.Args, Summary: spec.Summary})
			}
			return newFormatter(rootOpts, cmd).Success(list)
		},
	}
}
