package engine

import (
	"context"
	"slices"

	"github.com/roach88/triviarpg/internal/economy"
	"github.com/roach88/triviarpg/internal/game"
)

// handler adapts an Args invocation to a typed engine method.
type handler func(ctx context.Context, e *Engine, a Args) (any, error)

// ActionSpec describes one invokable action.
type ActionSpec struct {
	Name    string
	Args    []string
	Summary string
	run     handler
}

var registry = map[string]ActionSpec{}

func register(name string, args []string, summary string, run handler) {
	registry[name] = ActionSpec{Name: name, Args: args, Summary: summary, run: run}
}

// Actions lists every invokable action by name.
func Actions() []ActionSpec {
	specs := make([]ActionSpec, 0, len(registry))
	for _, spec := range registry {
		specs = append(specs, spec)
	}
	slices.SortFunc(specs, func(a, b ActionSpec) int { return compareUTF16(a.Name, b.Name) })
	return specs
}

// Invoke runs the action called name with a. It returns the action's result
// value (nil for actions without one). Unknown names and malformed
// arguments fail with an InvalidReference error without touching state or
// consuming a seq.
func (e *Engine) Invoke(ctx context.Context, name string, a Args) (any, error) {
	spec, ok := registry[name]
	if !ok {
		return nil, game.NotFound("action", name)
	}
	if a == nil {
		a = Args{}
	}
	return spec.run(ctx, e, a)
}

func noResult(err error) (any, error) { return nil, err }

func init() {
	idAction := func(name, summary string, fn func(*Engine, context.Context, string) error) {
		register(name, []string{"id"}, summary, func(ctx context.Context, e *Engine, a Args) (any, error) {
			id, err := a.String("id")
			if err != nil {
				return nil, err
			}
			return noResult(fn(e, ctx, id))
		})
	}
	plain := func(name, summary string, fn func(*Engine, context.Context) error) {
		register(name, nil, summary, func(ctx context.Context, e *Engine, _ Args) (any, error) {
			return noResult(fn(e, ctx))
		})
	}
	amount := func(name, key, summary string, fn func(*Engine, context.Context, int) error) {
		register(name, []string{key}, summary, func(ctx context.Context, e *Engine, a Args) (any, error) {
			n, err := a.Int(key)
			if err != nil {
				return nil, err
			}
			return noResult(fn(e, ctx, n))
		})
	}
	kindID := func(a Args) (game.ItemKind, string, error) {
		kind, err := a.Kind("kind")
		if err != nil {
			return "", "", err
		}
		id, err := a.String("id")
		return kind, id, err
	}
	kindIDs := func(a Args) (game.ItemKind, []string, error) {
		kind, err := a.Kind("kind")
		if err != nil {
			return "", nil, err
		}
		ids, err := a.Strings("ids")
		return kind, ids, err
	}

	idAction("equip-weapon", "Equip a weapon from the inventory", (*Engine).EquipWeapon)
	idAction("equip-armor", "Equip an armor piece from the inventory", (*Engine).EquipArmor)
	plain("unequip-weapon", "Return the equipped weapon to the inventory", (*Engine).UnequipWeapon)
	plain("unequip-armor", "Return the equipped armor to the inventory", (*Engine).UnequipArmor)
	idAction("upgrade-weapon", "Upgrade a weapon for gems", (*Engine).UpgradeWeapon)
	idAction("upgrade-armor", "Upgrade an armor piece for gems", (*Engine).UpgradeArmor)
	register("sell-weapon", []string{"id"}, "Sell an unequipped weapon", func(ctx context.Context, e *Engine, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		return e.SellWeapon(ctx, id)
	})
	register("sell-armor", []string{"id"}, "Sell an unequipped armor piece", func(ctx context.Context, e *Engine, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		return e.SellArmor(ctx, id)
	})
	register("discard", []string{"kind", "id"}, "Throw away an unequipped item", func(ctx context.Context, e *Engine, a Args) (any, error) {
		kind, id, err := kindID(a)
		if err != nil {
			return nil, err
		}
		return noResult(e.Discard(ctx, kind, id))
	})
	register("repair", []string{"kind", "id"}, "Restore an item's durability for gems", func(ctx context.Context, e *Engine, a Args) (any, error) {
		kind, id, err := kindID(a)
		if err != nil {
			return nil, err
		}
		return e.Repair(ctx, kind, id)
	})
	register("bulk-sell", []string{"kind", "ids"}, "Sell several unequipped items", func(ctx context.Context, e *Engine, a Args) (any, error) {
		kind, ids, err := kindIDs(a)
		if err != nil {
			return nil, err
		}
		total, count, err := e.BulkSell(ctx, kind, ids)
		return map[string]int{"coins": total, "sold": count}, err
	})
	register("bulk-upgrade", []string{"kind", "ids"}, "Upgrade several items until gems run out", func(ctx context.Context, e *Engine, a Args) (any, error) {
		kind, ids, err := kindIDs(a)
		if err != nil {
			return nil, err
		}
		return e.BulkUpgrade(ctx, kind, ids)
	})

	register("open-chest", []string{"cost"}, "Buy a chest of random items", func(ctx context.Context, e *Engine, a Args) (any, error) {
		cost, err := a.Int("cost")
		if err != nil {
			return nil, err
		}
		return e.OpenChest(ctx, cost)
	})
	register("purchase-mythical", []string{"cost"}, "Buy a mythical item for gems", func(ctx context.Context, e *Engine, a Args) (any, error) {
		cost, err := a.Int("cost")
		if err != nil {
			return nil, err
		}
		return e.PurchaseMythical(ctx, cost)
	})
	register("cheat-item", []string{"kind", "rarity"}, "Conjure an item (obtainAnyItem cheat)", func(ctx context.Context, e *Engine, a Args) (any, error) {
		kind, err := a.Kind("kind")
		if err != nil {
			return nil, err
		}
		rarity, err := a.Rarity("rarity")
		if err != nil {
			return nil, err
		}
		return e.CheatItem(ctx, kind, rarity)
	})
	register("mine", nil, "Mine one gem", func(ctx context.Context, e *Engine, _ Args) (any, error) {
		return e.Mine(ctx)
	})
	register("exchange-shiny-gems", []string{"amount"}, "Convert shiny gems into gems", func(ctx context.Context, e *Engine, a Args) (any, error) {
		n, err := a.Int("amount")
		if err != nil {
			return nil, err
		}
		return e.ExchangeShinyGems(ctx, n)
	})
	plain("upgrade-research", "Buy a research level", (*Engine).UpgradeResearch)

	register("refresh-market", []string{"force?"}, "Restock the relic market if due", func(ctx context.Context, e *Engine, a Args) (any, error) {
		force, err := a.BoolOr("force", false)
		if err != nil {
			return nil, err
		}
		return e.RefreshMarket(ctx, force)
	})
	register("purchase-relic", []string{"id"}, "Buy a relic from the market", func(ctx context.Context, e *Engine, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		return e.PurchaseRelic(ctx, id)
	})
	idAction("upgrade-relic", "Upgrade a relic for shiny gems", (*Engine).UpgradeRelic)
	idAction("equip-relic", "Equip a relic", (*Engine).EquipRelic)
	idAction("unequip-relic", "Unequip a relic", (*Engine).UnequipRelic)
	register("sell-relic", []string{"id"}, "Sell an unequipped relic", func(ctx context.Context, e *Engine, a Args) (any, error) {
		id, err := a.String("id")
		if err != nil {
			return nil, err
		}
		return e.SellRelic(ctx, id)
	})

	plain("start-combat", "Spawn the zone's enemy", (*Engine).StartCombat)
	register("attack", []string{"hit?", "category?"}, "Resolve one answer as right or wrong", func(ctx context.Context, e *Engine, a Args) (any, error) {
		hit, err := a.BoolOr("hit", true)
		if err != nil {
			return nil, err
		}
		var category string
		if _, ok := a["category"]; ok {
			if category, err = a.String("category"); err != nil {
				return nil, err
			}
		}
		return e.Attack(ctx, hit, category)
	})
	register("answer", []string{"answer"}, "Answer the current question", func(ctx context.Context, e *Engine, a Args) (any, error) {
		answer, err := a.String("answer")
		if err != nil {
			return nil, err
		}
		return e.Answer(ctx, answer)
	})
	register("use-skip-card", nil, "Spend the skip card on the current question", func(ctx context.Context, e *Engine, _ Args) (any, error) {
		return e.UseSkipCard(ctx)
	})
	idAction("select-adventure-skill", "Pick an offered adventure skill", (*Engine).SelectAdventureSkill)
	plain("skip-adventure-skills", "Decline the adventure skill offer", (*Engine).SkipAdventureSkills)

	idAction("upgrade-skill", "Unlock a skill with a skill point", (*Engine).UpgradeSkill)
	plain("prestige", "Reset the run for prestige points", (*Engine).Prestige)
	register("set-mode", []string{"mode"}, "Switch game mode", func(ctx context.Context, e *Engine, a Args) (any, error) {
		mode, err := a.String("mode")
		if err != nil {
			return nil, err
		}
		return noResult(e.SetMode(ctx, game.Mode(mode)))
	})
	register("toggle-cheat", []string{"name"}, "Flip a cheat on or off", func(ctx context.Context, e *Engine, a Args) (any, error) {
		name, err := a.String("name")
		if err != nil {
			return nil, err
		}
		return e.ToggleCheat(ctx, name)
	})
	register("update-settings", []string{"colorblindMode?", "darkMode?", "language?", "notifications?"}, "Change settings", func(ctx context.Context, e *Engine, a Args) (any, error) {
		var (
			patch economy.SettingsPatch
			err   error
		)
		if patch.ColorblindMode, err = a.OptionalBool("colorblindMode"); err != nil {
			return nil, err
		}
		if patch.DarkMode, err = a.OptionalBool("darkMode"); err != nil {
			return nil, err
		}
		if patch.Language, err = a.OptionalString("language"); err != nil {
			return nil, err
		}
		if patch.Notifications, err = a.OptionalBool("notifications"); err != nil {
			return nil, err
		}
		return noResult(e.UpdateSettings(ctx, patch))
	})

	amount("add-coins", "amount", "Debug: adjust coins", (*Engine).AddCoins)
	amount("add-gems", "amount", "Debug: adjust gems", (*Engine).AddGems)
	amount("teleport-to-zone", "zone", "Debug: jump to a zone", (*Engine).TeleportToZone)
	register("set-experience", []string{"experience"}, "Debug: overwrite experience", func(ctx context.Context, e *Engine, a Args) (any, error) {
		xp, err := a.Int("experience")
		if err != nil {
			return nil, err
		}
		return e.SetExperience(ctx, xp)
	})

	register("roll-skill", nil, "Buy a random timed menu skill", func(ctx context.Context, e *Engine, _ Args) (any, error) {
		return e.RollSkill(ctx)
	})
	register("claim-daily-reward", nil, "Claim today's login reward", func(ctx context.Context, e *Engine, _ Args) (any, error) {
		return e.ClaimDailyReward(ctx)
	})
	register("claim-offline-rewards", nil, "Collect rewards earned while away", func(ctx context.Context, e *Engine, _ Args) (any, error) {
		return e.ClaimOfflineRewards(ctx)
	})
	plain("plant-seed", "Plant the garden", (*Engine).PlantSeed)
	register("buy-water", []string{"hours"}, "Buy hours of garden water", func(ctx context.Context, e *Engine, a Args) (any, error) {
		hours, err := a.Int("hours")
		if err != nil {
			return nil, err
		}
		return e.BuyWater(ctx, hours)
	})
	plain("reset", "Discard all progress", (*Engine).Reset)
}
