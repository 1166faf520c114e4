package combat

import "github.com/roach88/triviarpg/internal/game"

// SelectAdventureSkill picks one skill from the pending offer.
func SelectAdventureSkill(s *game.GameState, id string) error {
	adv := &s.AdventureSkills
	i := -1
	for j, sk := range adv.AvailableSkills {
		if sk.ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return game.NotFound("adventure skill", id)
	}

	chosen := adv.AvailableSkills[i]
	adv.SelectedSkill = &chosen
	adv.AvailableSkills = []game.AdventureSkill{}
	adv.ShowSelectionModal = false
	adv.Declined = false
	adv.SkillEffects = activate(chosen.Type)
	s.Logf("Adventure skill selected: %s", chosen.Name)
	return nil
}

// SkipAdventureSkills declines the pending offer for the rest of the run.
func SkipAdventureSkills(s *game.GameState) error {
	adv := &s.AdventureSkills
	if len(adv.AvailableSkills) == 0 && !adv.ShowSelectionModal {
		return game.Precondition("no adventure skills on offer")
	}
	adv.AvailableSkills = []game.AdventureSkill{}
	adv.ShowSelectionModal = false
	adv.Declined = true
	return nil
}

// activate returns the initial effect flags for a freshly selected skill.
func activate(t game.AdventureSkillType) game.SkillEffects {
	switch t {
	case game.TruthLies:
		return game.SkillEffects{TruthLiesActive: true}
	case game.TimeSlow:
		return game.SkillEffects{TimeSlowActive: true}
	case game.Risker, game.LightningChain, game.SkipCard, game.MetalShield, game.Ramp,
		game.Dodge, game.Berserker, game.Vampiric, game.Phoenix, game.CriticalStrike,
		game.ShieldWall, game.PoisonBlade, game.ArcaneShield, game.BattleFrenzy:
		return game.SkillEffects{}
	default:
		panic("unhandled adventure skill " + string(t))
	}
}
