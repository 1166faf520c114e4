package temporal

import (
	"time"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/generator"
)

const dailyCycle = 7

// DailyRewardAvailable reports whether a reward can be claimed at now: never
// claimed, or last claimed on an earlier UTC calendar day.
func DailyRewardAvailable(s *game.GameState, now time.Time) bool {
	last := s.DailyRewards.LastClaimDate
	return last == nil || utcDay(*last).Before(utcDay(now))
}

// DailyReward is the payout for a day of the seven day cycle.
func DailyReward(day int) (coins, gems int) {
	return 100 * day, 10 * day
}

// ClaimDailyReward pays today's reward. Claiming on consecutive UTC days
// builds the streak; a missed day restarts it. Every seventh day adds an
// epic or better item.
func ClaimDailyReward(s *game.GameState, gen *generator.Generator, now time.Time) (game.DailyRewardEntry, error) {
	if !DailyRewardAvailable(s, now) {
		return game.DailyRewardEntry{}, game.Precondition("daily reward already claimed today")
	}
	dr := &s.DailyRewards

	streak := 1
	if last := dr.LastClaimDate; last != nil && utcDay(*last).AddDate(0, 0, 1).Equal(utcDay(now)) {
		streak = dr.CurrentStreak + 1
	}
	day := (streak-1)%dailyCycle + 1
	coins, gems := DailyReward(day)

	entry := game.DailyRewardEntry{Day: day, Coins: coins, Gems: gems, ClaimDate: now}
	if day == dailyCycle {
		item := gen.RandomItem(generator.UseWeights(generator.EpicOrBetter))
		s.AddItem(item)
		entry.Item = &item
	}
	s.EarnCoins(coins)
	s.EarnGems(gems)

	claimed := now
	dr.LastClaimDate = &claimed
	dr.CurrentStreak = streak
	dr.MaxStreak = max(dr.MaxStreak, streak)
	dr.RewardHistory = append(dr.RewardHistory, entry)
	if over := len(dr.RewardHistory) - game.RewardHistoryLimit; over > 0 {
		dr.RewardHistory = dr.RewardHistory[over:]
	}
	return entry, nil
}
