package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/snapshot"
)

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the saved game",
		Long: `Show a summary of the saved game.

With --format json the full game state is printed in its save format.
Loading stages offline rewards for the time away; they are claimed with
"triviarpg do claim-offline-rewards".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(rootOpts, cmd)
		},
	}
}

func runState(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	sess, err := openSession(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer sess.Close(ctx)

	formatter := newFormatter(opts, cmd)
	s := sess.engine.Snapshot()
	if opts.Format == "json" {
		data, err := snapshot.Encode(s)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to encode state", err)
		}
		return formatter.Success(json.RawMessage(data))
	}
	return formatter.Success(summarize(s, sess.engine.ActiveSkill(), sess.engine.DailyRewardAvailable()))
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// stateSummary is the text rendering of a game state.
type stateSummary struct {
	s           *game.GameState
	skill       *game.MenuSkill
	dailyReward bool
}

func summarize(s *game.GameState, skill *game.MenuSkill, daily bool) stateSummary {
	return stateSummary{s: s, skill: skill, dailyReward: daily}
}

func (v stateSummary) String() string {
	s := v.s
	var b strings.Builder
	p := s.PlayerStats
	fmt.Fprintf(&b, "Zone %d  Level %d (%d/%d xp)  Mode %s\n",
		s.Zone, s.Progression.Level, s.Progression.Experience, s.Progression.ExperienceToNext, s.GameMode.Current)
	fmt.Fprintf(&b, "HP %d/%d  ATK %d  DEF %d\n", p.HP, p.MaxHP, p.Atk, p.Def)
	fmt.Fprintf(&b, "Coins %d  Gems %d  Shiny gems %d\n", s.Coins, s.Gems, s.ShinyGems)
	fmt.Fprintf(&b, "Weapon: %s\n", itemLine(s.Inventory.CurrentWeapon))
	fmt.Fprintf(&b, "Armor:  %s\n", itemLine(s.Inventory.CurrentArmor))
	fmt.Fprintf(&b, "Inventory: %d weapons, %d armor, %d relics (%d equipped)\n",
		len(s.Inventory.Weapons), len(s.Inventory.Armor), len(s.Inventory.Relics), len(s.Inventory.EquippedRelics))

	if s.InCombat && s.CurrentEnemy != nil {
		e := s.CurrentEnemy
		fmt.Fprintf(&b, "Fighting %s: HP %d/%d  ATK %d  DEF %d\n", e.Name, e.HP, e.MaxHP, e.Atk, e.Def)
	}
	if v.skill != nil {
		fmt.Fprintf(&b, "Skill: %s until %s\n", v.skill.Name, v.skill.ExpiresAt.Format(time.RFC3339))
	}
	if op := s.OfflineProgress; op.Staged() {
		fmt.Fprintf(&b, "Offline rewards waiting: %d coins, %d gems, %d xp for %d minutes\n",
			op.OfflineCoins, op.OfflineGems, op.OfflineExperience, op.OfflineTime)
	}
	if v.dailyReward {
		b.WriteString("Daily reward available\n")
	}
	if g := s.Garden; g.IsPlanted {
		fmt.Fprintf(&b, "Garden: %.1f/%.0f cm, %.1f water hours left\n", g.GrowthCm, g.MaxGrowthCm, g.WaterHoursRemaining)
	}
	fmt.Fprintf(&b, "Market: %d relics, next refresh %s", len(s.YojefMarket.Items), s.YojefMarket.NextRefresh.Format(time.RFC3339))
	return b.String()
}

func itemLine(it *game.Item) string {
	if it == nil {
		return "none"
	}
	line := fmt.Sprintf("%s (%s, lvl %d, +%d, %d/%d durability)",
		it.Name, it.Rarity, it.Level, it.Stat, it.Durability, it.MaxDurability)
	if it.Broken() {
		line += " BROKEN"
	}
	return line
}
