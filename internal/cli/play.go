package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/triviarpg/internal/engine"
	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/trivia"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Fights int
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Fight through zones by answering questions",
		Long: `Fight through zones by answering trivia questions on stdin.

A right answer strikes the enemy, a wrong one lets it strike back.
Type "skip" to use a selected skip card and "quit" (or end the input) to stop.
The game is saved in the background and once more on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Fights, "fights", "n", 0, "stop after this many fights (0 = until quit)")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	if opts.Format != "text" {
		return NewExitError(ExitCommandError, "play is interactive and only supports --format text")
	}
	ctx, cancel := context.WithCancel(cmdContext(cmd))
	defer cancel()

	sess, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer sess.Close(context.WithoutCancel(ctx))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sess.saver.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	p := &player{
		eng: sess.engine,
		in:  bufio.NewScanner(cmd.InOrStdin()),
		out: cmd.OutOrStdout(),
	}
	return p.loop(ctx, opts.Fights)
}

// player drives combat from a line-oriented terminal.
type player struct {
	eng *engine.Engine
	in  *bufio.Scanner
	out io.Writer
}

func (p *player) loop(ctx context.Context, fights int) error {
	for fought := 0; fights <= 0 || fought < fights; fought++ {
		if !p.eng.Snapshot().InCombat {
			if err := p.eng.StartCombat(ctx); err != nil {
				return WrapExitError(ExitFailure, "could not start combat", err)
			}
		}
		if err := p.offerSkills(ctx); err != nil {
			return err
		}
		s := p.eng.Snapshot()
		fmt.Fprintf(p.out, "\nZone %d: %s appears (HP %d, ATK %d)\n", s.Zone, s.CurrentEnemy.Name, s.CurrentEnemy.HP, s.CurrentEnemy.Atk)

		quit, err := p.fight(ctx)
		if err != nil || quit {
			return err
		}
	}
	return nil
}

// fight answers questions until the current fight ends. It reports whether
// the player asked to stop.
func (p *player) fight(ctx context.Context) (bool, error) {
	for p.eng.Snapshot().InCombat {
		q, ok := p.eng.CurrentQuestion()
		if !ok {
			return false, NewExitError(ExitCommandError, "no question available")
		}
		printQuestion(p.out, q)

		line, ok := p.readLine()
		if !ok || line == "quit" {
			return true, nil
		}

		var res engine.AnswerResult
		var err error
		if line == "skip" {
			res.Correct = true
			res.Outcome, err = p.eng.UseSkipCard(ctx)
		} else {
			res, err = p.eng.Answer(ctx, line)
		}
		if err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		p.report(res)
	}
	return false, nil
}

func (p *player) report(res engine.AnswerResult) {
	out := res.Outcome
	if res.Correct {
		fmt.Fprintf(p.out, "  Correct! You deal %d damage", out.Damage)
		if out.Critical {
			fmt.Fprint(p.out, " (critical)")
		}
		fmt.Fprintln(p.out)
	} else {
		fmt.Fprintf(p.out, "  Wrong. You take %d damage\n", out.DamageTaken)
	}
	if out.PoisonDamage > 0 {
		fmt.Fprintf(p.out, "  Poison deals %d\n", out.PoisonDamage)
	}
	switch {
	case out.Victory:
		fmt.Fprintf(p.out, "  Victory: +%d coins, +%d xp\n", out.Coins, out.Experience)
		if out.LevelsGained > 0 {
			fmt.Fprintf(p.out, "  Level up! (+%d)\n", out.LevelsGained)
		}
		if out.Drop != nil {
			fmt.Fprintf(p.out, "  Found %s (%s)\n", out.Drop.Name, out.Drop.Rarity)
		}
	case out.Revived:
		fmt.Fprintln(p.out, "  You fall, and rise again")
	case out.Defeat:
		fmt.Fprintln(p.out, "  Defeated.")
	}
	s := p.eng.Snapshot()
	fmt.Fprintf(p.out, "  HP %d/%d\n", s.PlayerStats.HP, s.PlayerStats.MaxHP)
}

// offerSkills asks for an adventure skill when the run offers a selection.
func (p *player) offerSkills(ctx context.Context) error {
	adv := p.eng.Snapshot().AdventureSkills
	if !adv.ShowSelectionModal || len(adv.AvailableSkills) == 0 {
		return nil
	}
	fmt.Fprintln(p.out, "\nChoose an adventure skill (number, or anything else to skip):")
	for i, sk := range adv.AvailableSkills {
		fmt.Fprintf(p.out, "  %d) %s: %s\n", i+1, sk.Name, sk.Description)
	}
	line, _ := p.readLine()
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(adv.AvailableSkills) {
		return ignoreRejected(p.eng.SelectAdventureSkill(ctx, adv.AvailableSkills[n-1].ID))
	}
	return ignoreRejected(p.eng.SkipAdventureSkills(ctx))
}

func ignoreRejected(err error) error {
	if err == nil || game.CodeOf(err) != "" {
		return nil
	}
	return err
}

func (p *player) readLine() (string, bool) {
	fmt.Fprint(p.out, "> ")
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func printQuestion(w io.Writer, q trivia.Question) {
	fmt.Fprintf(w, "[%s, %s] %s\n", q.Category, q.Difficulty, q.Text)
	switch q.Type {
	case trivia.MultipleChoice:
		for i, opt := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", i, opt)
		}
	case trivia.ColorPicker:
		fmt.Fprintf(w, "  colors: %s\n", strings.Join(q.Colors, " "))
	case trivia.NumberSlider:
		fmt.Fprintf(w, "  a number from %d to %d\n", q.SliderMin, q.SliderMax)
	case trivia.FillBlanks:
		fmt.Fprintf(w, "  %d blanks, comma separated\n", q.BlankCount())
	}
}
