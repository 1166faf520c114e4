package engine

import (
	"context"
	"time"

	"github.com/roach88/triviarpg/internal/combat"
	"github.com/roach88/triviarpg/internal/economy"
	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/temporal"
	"github.com/roach88/triviarpg/internal/trivia"
)

// Equipment

func (e *Engine) EquipWeapon(ctx context.Context, id string) error {
	return e.equip(ctx, "equip-weapon", game.KindWeapon, id)
}

func (e *Engine) EquipArmor(ctx context.Context, id string) error {
	return e.equip(ctx, "equip-armor", game.KindArmor, id)
}

func (e *Engine) equip(ctx context.Context, action string, kind game.ItemKind, id string) error {
	return e.apply(ctx, action, Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		return economy.Equip(s, kind, id)
	})
}

func (e *Engine) UnequipWeapon(ctx context.Context) error {
	return e.apply(ctx, "unequip-weapon", nil, func(s *game.GameState, _ time.Time) error {
		return economy.Unequip(s, game.KindWeapon)
	})
}

func (e *Engine) UnequipArmor(ctx context.Context) error {
	return e.apply(ctx, "unequip-armor", nil, func(s *game.GameState, _ time.Time) error {
		return economy.Unequip(s, game.KindArmor)
	})
}

func (e *Engine) UpgradeWeapon(ctx context.Context, id string) error {
	return e.upgrade(ctx, "upgrade-weapon", game.KindWeapon, id)
}

func (e *Engine) UpgradeArmor(ctx context.Context, id string) error {
	return e.upgrade(ctx, "upgrade-armor", game.KindArmor, id)
}

func (e *Engine) upgrade(ctx context.Context, action string, kind game.ItemKind, id string) error {
	return e.apply(ctx, action, Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		return economy.Upgrade(s, kind, id)
	})
}

// SellWeapon sells an unequipped weapon and returns the coins it fetched.
func (e *Engine) SellWeapon(ctx context.Context, id string) (int, error) {
	return e.sell(ctx, "sell-weapon", game.KindWeapon, id)
}

// SellArmor sells an unequipped armor piece and returns the coins it fetched.
func (e *Engine) SellArmor(ctx context.Context, id string) (int, error) {
	return e.sell(ctx, "sell-armor", game.KindArmor, id)
}

func (e *Engine) sell(ctx context.Context, action string, kind game.ItemKind, id string) (int, error) {
	var price int
	err := e.apply(ctx, action, Args{"id": id}, func(s *game.GameState, now time.Time) error {
		var err error
		price, err = economy.Sell(s, kind, id, now)
		return err
	})
	return price, err
}

func (e *Engine) Discard(ctx context.Context, kind game.ItemKind, id string) error {
	return e.apply(ctx, "discard", Args{"kind": string(kind), "id": id}, func(s *game.GameState, _ time.Time) error {
		return economy.Discard(s, kind, id)
	})
}

// Repair restores an item's durability and returns the gems it cost.
func (e *Engine) Repair(ctx context.Context, kind game.ItemKind, id string) (int, error) {
	var cost int
	err := e.apply(ctx, "repair", Args{"kind": string(kind), "id": id}, func(s *game.GameState, _ time.Time) error {
		var err error
		cost, err = economy.Repair(s, kind, id)
		return err
	})
	return cost, err
}

// BulkSell sells every listed unequipped item of kind. Unknown ids are skipped.
func (e *Engine) BulkSell(ctx context.Context, kind game.ItemKind, ids []string) (total, count int, err error) {
	err = e.apply(ctx, "bulk-sell", Args{"kind": string(kind), "ids": ids}, func(s *game.GameState, now time.Time) error {
		total, count = economy.BulkSell(s, kind, ids, now)
		return nil
	})
	return total, count, err
}

// BulkUpgrade upgrades the listed items in order until gems run out and
// returns how many were upgraded.
func (e *Engine) BulkUpgrade(ctx context.Context, kind game.ItemKind, ids []string) (int, error) {
	var n int
	err := e.apply(ctx, "bulk-upgrade", Args{"kind": string(kind), "ids": ids}, func(s *game.GameState, _ time.Time) error {
		var err error
		n, err = economy.BulkUpgrade(s, kind, ids)
		return err
	})
	return n, err
}

// Shop

func (e *Engine) OpenChest(ctx context.Context, cost int) (economy.ChestReward, error) {
	var reward economy.ChestReward
	err := e.apply(ctx, "open-chest", Args{"cost": cost}, func(s *game.GameState, now time.Time) error {
		var err error
		reward, err = economy.OpenChest(s, e.gen, cost, now)
		return err
	})
	return reward, err
}

func (e *Engine) PurchaseMythical(ctx context.Context, cost int) (game.Item, error) {
	var item game.Item
	err := e.apply(ctx, "purchase-mythical", Args{"cost": cost}, func(s *game.GameState, _ time.Time) error {
		var err error
		item, err = economy.PurchaseMythical(s, e.gen, cost)
		return err
	})
	return item, err
}

func (e *Engine) CheatItem(ctx context.Context, kind game.ItemKind, rarity game.Rarity) (game.Item, error) {
	var item game.Item
	err := e.apply(ctx, "cheat-item", Args{"kind": string(kind), "rarity": rarity.String()}, func(s *game.GameState, _ time.Time) error {
		var err error
		item, err = economy.CheatItem(s, e.gen, kind, rarity)
		return err
	})
	return item, err
}

func (e *Engine) Mine(ctx context.Context) (economy.MineResult, error) {
	var res economy.MineResult
	err := e.apply(ctx, "mine", nil, func(s *game.GameState, now time.Time) error {
		res = economy.Mine(s, e.gen, now)
		return nil
	})
	return res, err
}

// ExchangeShinyGems converts n shiny gems and returns the gems received.
func (e *Engine) ExchangeShinyGems(ctx context.Context, n int) (int, error) {
	var gems int
	err := e.apply(ctx, "exchange-shiny-gems", Args{"amount": n}, func(s *game.GameState, _ time.Time) error {
		var err error
		gems, err = economy.ExchangeShinyGems(s, n)
		return err
	})
	return gems, err
}

func (e *Engine) UpgradeResearch(ctx context.Context) error {
	return e.apply(ctx, "upgrade-research", nil, func(s *game.GameState, _ time.Time) error {
		return economy.UpgradeResearch(s)
	})
}

// Relic market

// RefreshMarket restocks the relic market when it is due, or always when
// force is set. It reports whether a restock happened.
func (e *Engine) RefreshMarket(ctx context.Context, force bool) (bool, error) {
	var refreshed bool
	err := e.apply(ctx, "refresh-market", Args{"force": force}, func(s *game.GameState, now time.Time) error {
		refreshed = e.refreshMarket(s, now, force)
		return nil
	})
	return refreshed, err
}

func (e *Engine) PurchaseRelic(ctx context.Context, id string) (game.Relic, error) {
	var relic game.Relic
	err := e.apply(ctx, "purchase-relic", Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		var err error
		relic, err = economy.PurchaseRelic(s, id)
		return err
	})
	return relic, err
}

func (e *Engine) UpgradeRelic(ctx context.Context, id string) error {
	return e.apply(ctx, "upgrade-relic", Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		return economy.UpgradeRelic(s, id)
	})
}

func (e *Engine) EquipRelic(ctx context.Context, id string) error {
	return e.apply(ctx, "equip-relic", Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		return economy.EquipRelic(s, id, e.balance.RelicCap)
	})
}

func (e *Engine) UnequipRelic(ctx context.Context, id string) error {
	return e.apply(ctx, "unequip-relic", Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		return economy.UnequipRelic(s, id)
	})
}

// SellRelic sells an unequipped relic and returns the gems refunded.
func (e *Engine) SellRelic(ctx context.Context, id string) (int, error) {
	var refund int
	err := e.apply(ctx, "sell-relic", Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		var err error
		refund, err = economy.SellRelic(s, id)
		return err
	})
	return refund, err
}

// Combat

// StartCombat spawns the zone's enemy and, with a question provider,
// draws the first question.
func (e *Engine) StartCombat(ctx context.Context) error {
	return e.apply(ctx, "start-combat", nil, func(s *game.GameState, _ time.Time) error {
		if err := e.combat.Start(s); err != nil {
			return err
		}
		e.nextQuestion(s)
		return nil
	})
}

// Attack resolves one answer without a question: hit is whether the answer
// was correct.
func (e *Engine) Attack(ctx context.Context, hit bool, category string) (combat.Outcome, error) {
	var out combat.Outcome
	args := Args{"hit": hit}
	if category != "" {
		args["category"] = category
	}
	err := e.apply(ctx, "attack", args, func(s *game.GameState, now time.Time) error {
		var err error
		out, err = e.combat.Attack(s, hit, category, now)
		if err != nil {
			return err
		}
		e.nextQuestion(s)
		return nil
	})
	return out, err
}

// AnswerResult reports how an answer to the current question was judged.
type AnswerResult struct {
	Correct bool           `json:"correct"`
	Outcome combat.Outcome `json:"outcome"`
}

// Answer judges answer against the current question and resolves the
// attack it implies. The next question is drawn while the fight goes on.
func (e *Engine) Answer(ctx context.Context, answer string) (AnswerResult, error) {
	var res AnswerResult
	err := e.apply(ctx, "answer", Args{"answer": answer}, func(s *game.GameState, now time.Time) error {
		if e.questions == nil {
			return game.Precondition("no question provider configured")
		}
		if e.question == nil || !s.InCombat {
			return game.Precondition("no question pending")
		}
		q := *e.question
		res.Correct = e.questions.CheckAnswer(q, answer)
		out, err := e.combat.Attack(s, res.Correct, q.Category, now)
		if err != nil {
			return err
		}
		res.Outcome = out
		e.nextQuestion(s)
		return nil
	})
	return res, err
}

// UseSkipCard spends the skip card adventure skill on the current question.
func (e *Engine) UseSkipCard(ctx context.Context) (combat.Outcome, error) {
	var out combat.Outcome
	err := e.apply(ctx, "use-skip-card", nil, func(s *game.GameState, now time.Time) error {
		var err error
		out, err = e.combat.SkipCard(s, now)
		if err != nil {
			return err
		}
		e.nextQuestion(s)
		return nil
	})
	return out, err
}

func (e *Engine) SelectAdventureSkill(ctx context.Context, id string) error {
	return e.apply(ctx, "select-adventure-skill", Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		return combat.SelectAdventureSkill(s, id)
	})
}

func (e *Engine) SkipAdventureSkills(ctx context.Context) error {
	return e.apply(ctx, "skip-adventure-skills", nil, func(s *game.GameState, _ time.Time) error {
		return combat.SkipAdventureSkills(s)
	})
}

// nextQuestion keeps the pending question in step with s. It must be the
// last step of a state function, after everything that can fail.
func (e *Engine) nextQuestion(s *game.GameState) {
	if !s.InCombat || e.questions == nil {
		e.question = nil
		return
	}
	q := e.questions.QuestionForZone(s.Zone)
	e.question = &q
}

// Progression

func (e *Engine) UpgradeSkill(ctx context.Context, id string) error {
	return e.apply(ctx, "upgrade-skill", Args{"id": id}, func(s *game.GameState, _ time.Time) error {
		return economy.UpgradeSkill(s, id)
	})
}

// Prestige resets the run for prestige points once the balance's prestige
// level is reached.
func (e *Engine) Prestige(ctx context.Context) error {
	return e.apply(ctx, "prestige", nil, func(s *game.GameState, _ time.Time) error {
		if err := economy.Prestige(s, e.balance.PrestigeLevel, e.balance.StartingCoins); err != nil {
			return err
		}
		e.question = nil
		return nil
	})
}

func (e *Engine) SetMode(ctx context.Context, mode game.Mode) error {
	return e.apply(ctx, "set-mode", Args{"mode": string(mode)}, func(s *game.GameState, _ time.Time) error {
		return economy.SetMode(s, mode)
	})
}

// ToggleCheat flips the named cheat and returns its new value.
func (e *Engine) ToggleCheat(ctx context.Context, name string) (bool, error) {
	var on bool
	err := e.apply(ctx, "toggle-cheat", Args{"name": name}, func(s *game.GameState, _ time.Time) error {
		var err error
		on, err = economy.ToggleCheat(s, name)
		return err
	})
	return on, err
}

func (e *Engine) UpdateSettings(ctx context.Context, patch economy.SettingsPatch) error {
	return e.apply(ctx, "update-settings", patchArgs(patch), func(s *game.GameState, _ time.Time) error {
		return economy.UpdateSettings(s, patch)
	})
}

func patchArgs(p economy.SettingsPatch) Args {
	args := Args{}
	if p.ColorblindMode != nil {
		args["colorblindMode"] = *p.ColorblindMode
	}
	if p.DarkMode != nil {
		args["darkMode"] = *p.DarkMode
	}
	if p.Language != nil {
		args["language"] = *p.Language
	}
	if p.Notifications != nil {
		args["notifications"] = *p.Notifications
	}
	return args
}

// Debug

func (e *Engine) AddCoins(ctx context.Context, n int) error {
	return e.apply(ctx, "add-coins", Args{"amount": n}, func(s *game.GameState, _ time.Time) error {
		economy.AddCoins(s, n)
		return nil
	})
}

func (e *Engine) AddGems(ctx context.Context, n int) error {
	return e.apply(ctx, "add-gems", Args{"amount": n}, func(s *game.GameState, _ time.Time) error {
		economy.AddGems(s, n)
		return nil
	})
}

func (e *Engine) TeleportToZone(ctx context.Context, zone int) error {
	return e.apply(ctx, "teleport-to-zone", Args{"zone": zone}, func(s *game.GameState, _ time.Time) error {
		economy.TeleportToZone(s, zone)
		e.question = nil
		return nil
	})
}

// SetExperience overwrites experience and returns the levels it granted.
func (e *Engine) SetExperience(ctx context.Context, xp int) (int, error) {
	var levels int
	err := e.apply(ctx, "set-experience", Args{"experience": xp}, func(s *game.GameState, _ time.Time) error {
		levels = economy.SetExperience(s, xp)
		return nil
	})
	return levels, err
}

// Temporal

// RollSkill buys a random menu skill for the balance's roll cost.
func (e *Engine) RollSkill(ctx context.Context) (game.MenuSkill, error) {
	var skill game.MenuSkill
	err := e.apply(ctx, "roll-skill", nil, func(s *game.GameState, now time.Time) error {
		var err error
		skill, err = temporal.RollMenuSkill(s, e.gen, now, e.balance.SkillRollCost)
		return err
	})
	return skill, err
}

func (e *Engine) ClaimDailyReward(ctx context.Context) (game.DailyRewardEntry, error) {
	var entry game.DailyRewardEntry
	err := e.apply(ctx, "claim-daily-reward", nil, func(s *game.GameState, now time.Time) error {
		var err error
		entry, err = temporal.ClaimDailyReward(s, e.gen, now)
		return err
	})
	return entry, err
}

func (e *Engine) ClaimOfflineRewards(ctx context.Context) (temporal.OfflineReward, error) {
	var reward temporal.OfflineReward
	err := e.apply(ctx, "claim-offline-rewards", nil, func(s *game.GameState, _ time.Time) error {
		var err error
		reward, err = temporal.ClaimOfflineRewards(s)
		return err
	})
	return reward, err
}

func (e *Engine) PlantSeed(ctx context.Context) error {
	return e.apply(ctx, "plant-seed", nil, func(s *game.GameState, now time.Time) error {
		return temporal.PlantSeed(s, now)
	})
}

// BuyWater buys hours of garden water and returns the coins it cost.
func (e *Engine) BuyWater(ctx context.Context, hours int) (int, error) {
	var cost int
	err := e.apply(ctx, "buy-water", Args{"hours": hours}, func(s *game.GameState, now time.Time) error {
		var err error
		cost, err = temporal.BuyWater(s, hours, now)
		return err
	})
	return cost, err
}

// Reset discards all progress and clears the saved game. A failure to
// clear storage is logged; the in-memory reset still happens.
func (e *Engine) Reset(ctx context.Context) error {
	err := e.apply(ctx, "reset", nil, func(s *game.GameState, now time.Time) error {
		*s = *e.freshState(now)
		e.question = nil
		return nil
	})
	if err != nil {
		return err
	}
	if e.persister != nil {
		if err := e.persister.Clear(ctx); err != nil {
			e.logger.Warn("clear saved game failed", "error", err)
		}
	}
	return nil
}

// Read side

// ActiveSkill returns a copy of the unexpired menu skill, or nil.
func (e *Engine) ActiveSkill() *game.MenuSkill {
	now := e.now()
	e.mu.Lock()
	defer e.mu.Unlock()
	return temporal.ActiveMenuSkill(e.state, now)
}

// CurrentQuestion returns the question awaiting an answer.
func (e *Engine) CurrentQuestion() (trivia.Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.question == nil {
		return trivia.Question{}, false
	}
	return *e.question, true
}

func (e *Engine) DailyRewardAvailable() bool {
	now := e.now()
	e.mu.Lock()
	defer e.mu.Unlock()
	return temporal.DailyRewardAvailable(e.state, now)
}
