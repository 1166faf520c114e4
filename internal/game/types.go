package game

import "time"

// GameState is the single root of all player progress.
type GameState struct {
	Coins     int `json:"coins"`
	Gems      int `json:"gems"`
	ShinyGems int `json:"shinyGems"`
	Zone      int `json:"zone"`

	PlayerStats PlayerStats `json:"playerStats"`
	Inventory   Inventory   `json:"inventory"`

	CurrentEnemy *Enemy   `json:"currentEnemy"`
	InCombat     bool     `json:"inCombat"`
	CombatLog    []string `json:"combatLog"`

	Research        Research        `json:"research"`
	Statistics      Statistics      `json:"statistics"`
	Progression     Progression     `json:"progression"`
	Cheats          Cheats          `json:"cheats"`
	CollectionBook  CollectionBook  `json:"collectionBook"`
	KnowledgeStreak KnowledgeStreak `json:"knowledgeStreak"`
	GameMode        GameMode        `json:"gameMode"`
	Mining          Mining          `json:"mining"`
	YojefMarket     Market          `json:"yojefMarket"`
	DailyRewards    DailyRewards    `json:"dailyRewards"`
	OfflineProgress OfflineProgress `json:"offlineProgress"`
	Garden          Garden          `json:"gardenOfGrowth"`
	Settings        Settings        `json:"settings"`
	HasUsedRevival  bool            `json:"hasUsedRevival"`
	Skills          Skills          `json:"skills"`
	AdventureSkills AdventureSkills `json:"adventureSkills"`
}

// PlayerStats holds base values and the derived totals computed by RecomputeStats.
type PlayerStats struct {
	HP      int `json:"hp"`
	MaxHP   int `json:"maxHp"`
	Atk     int `json:"atk"`
	Def     int `json:"def"`
	BaseAtk int `json:"baseAtk"`
	BaseDef int `json:"baseDef"`
	BaseHP  int `json:"baseHp"`
}

// Item is a weapon or a piece of armor. Stat is attack for weapons and defense for armor.
type Item struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Kind                  ItemKind `json:"kind"`
	Rarity                Rarity   `json:"rarity"`
	Level                 int      `json:"level"`
	Stat                  int      `json:"stat"`
	UpgradeCost           int      `json:"upgradeCost"`
	SellPrice             int      `json:"sellPrice"`
	Durability            int      `json:"durability"`
	MaxDurability         int      `json:"maxDurability"`
	IsEnchanted           bool     `json:"isEnchanted"`
	EnchantmentMultiplier int      `json:"enchantmentMultiplier"`
}

// Broken reports whether the item has no durability left.
func (i Item) Broken() bool {
	return i.MaxDurability > 0 && i.Durability <= 0
}

// Relic is market-only equipment. Kind selects which stat it adds to.
type Relic struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        ItemKind `json:"kind"`
	Level       int      `json:"level"`
	Stat        int      `json:"stat"`
	Cost        int      `json:"cost"`
	Description string   `json:"description"`
}

// Inventory holds owned equipment. An owned item is in exactly one list or slot.
type Inventory struct {
	Weapons        []Item  `json:"weapons"`
	Armor          []Item  `json:"armor"`
	Relics         []Relic `json:"relics"`
	CurrentWeapon  *Item   `json:"currentWeapon"`
	CurrentArmor   *Item   `json:"currentArmor"`
	EquippedRelics []Relic `json:"equippedRelics"`
}

// Enemy exists only while the player is in combat.
type Enemy struct {
	Name         string `json:"name"`
	HP           int    `json:"hp"`
	MaxHP        int    `json:"maxHp"`
	Atk          int    `json:"atk"`
	Def          int    `json:"def"`
	Zone         int    `json:"zone"`
	IsPoisoned   bool   `json:"isPoisoned"`
	PoisonTurns  int    `json:"poisonTurns"`
	CanDropItems bool   `json:"canDropItems"`
}

type Research struct {
	Level      int `json:"level"`
	TotalSpent int `json:"totalSpent"`
}

// CategoryAccuracy counts answers for one question category.
type CategoryAccuracy struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Statistics are monotonically increasing counters.
type Statistics struct {
	TotalQuestionsAnswered int                         `json:"totalQuestionsAnswered"`
	CorrectAnswers         int                         `json:"correctAnswers"`
	ZonesReached           int                         `json:"zonesReached"`
	ItemsCollected         int                         `json:"itemsCollected"`
	CoinsEarned            int                         `json:"coinsEarned"`
	GemsEarned             int                         `json:"gemsEarned"`
	ShinyGemsEarned        int                         `json:"shinyGemsEarned"`
	ChestsOpened           int                         `json:"chestsOpened"`
	AccuracyByCategory     map[string]CategoryAccuracy `json:"accuracyByCategory"`
	SessionStartTime       time.Time                   `json:"sessionStartTime"`
	TotalDeaths            int                         `json:"totalDeaths"`
	TotalVictories         int                         `json:"totalVictories"`
	LongestStreak          int                         `json:"longestStreak"`
	TotalDamageDealt       int                         `json:"totalDamageDealt"`
	TotalDamageTaken       int                         `json:"totalDamageTaken"`
	ItemsUpgraded          int                         `json:"itemsUpgraded"`
	ItemsSold              int                         `json:"itemsSold"`
	TotalResearchSpent     int                         `json:"totalResearchSpent"`
	Revivals               int                         `json:"revivals"`
}

type Progression struct {
	Level            int      `json:"level"`
	Experience       int      `json:"experience"`
	ExperienceToNext int      `json:"experienceToNext"`
	SkillPoints      int      `json:"skillPoints"`
	UnlockedSkills   []string `json:"unlockedSkills"`
	PrestigeLevel    int      `json:"prestigeLevel"`
	PrestigePoints   int      `json:"prestigePoints"`
}

// Cheats suspend the matching cost checks while enabled.
type Cheats struct {
	InfiniteCoins bool `json:"infiniteCoins"`
	InfiniteGems  bool `json:"infiniteGems"`
	ObtainAnyItem bool `json:"obtainAnyItem"`
}

// CollectionBook records every distinct item name ever obtained.
type CollectionBook struct {
	Weapons           map[string]bool `json:"weapons"`
	Armor             map[string]bool `json:"armor"`
	TotalWeaponsFound int             `json:"totalWeaponsFound"`
	TotalArmorFound   int             `json:"totalArmorFound"`
	RarityStats       map[string]int  `json:"rarityStats"`
}

type KnowledgeStreak struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Mode is the active game mode.
type Mode string

const (
	ModeNormal     Mode = "normal"
	ModeBlitz      Mode = "blitz"
	ModeBloodlust  Mode = "bloodlust"
	ModeCrazy      Mode = "crazy"
	ModeSurvival   Mode = "survival"
	ModeTimeAttack Mode = "timeAttack"
	ModeBoss       Mode = "boss"
)

// AllModes lists every selectable mode.
var AllModes = []Mode{ModeNormal, ModeBlitz, ModeBloodlust, ModeCrazy, ModeSurvival, ModeTimeAttack, ModeBoss}

func (m Mode) Valid() bool {
	for _, v := range AllModes {
		if v == m {
			return true
		}
	}
	return false
}

type GameMode struct {
	Current          Mode `json:"current"`
	SurvivalLives    int  `json:"survivalLives"`
	MaxSurvivalLives int  `json:"maxSurvivalLives"`
}

type Mining struct {
	TotalGemsMined      int `json:"totalGemsMined"`
	TotalShinyGemsMined int `json:"totalShinyGemsMined"`
}

// Market is the Yojef relic market, restocked lazily once NextRefresh has passed.
type Market struct {
	Items       []Relic   `json:"items"`
	LastRefresh time.Time `json:"lastRefresh"`
	NextRefresh time.Time `json:"nextRefresh"`
}

type DailyRewardEntry struct {
	Day       int       `json:"day"`
	Coins     int       `json:"coins"`
	Gems      int       `json:"gems"`
	Item      *Item     `json:"item,omitempty"`
	ClaimDate time.Time `json:"claimDate"`
}

type DailyRewards struct {
	LastClaimDate *time.Time         `json:"lastClaimDate"`
	CurrentStreak int                `json:"currentStreak"`
	MaxStreak     int                `json:"maxStreak"`
	RewardHistory []DailyRewardEntry `json:"rewardHistory"`
}

// OfflineProgress holds the last-seen timestamp and any staged, unclaimed reward.
// OfflineTime is the number of minutes the staged reward covers.
type OfflineProgress struct {
	LastSaveTime      time.Time `json:"lastSaveTime"`
	OfflineCoins      int       `json:"offlineCoins"`
	OfflineGems       int       `json:"offlineGems"`
	OfflineExperience int       `json:"offlineExperience"`
	OfflineTime       int       `json:"offlineTime"`
	MaxOfflineHours   int       `json:"maxOfflineHours"`
}

// Staged reports whether an unclaimed offline reward is waiting.
func (o OfflineProgress) Staged() bool {
	return o.OfflineCoins > 0 || o.OfflineGems > 0 || o.OfflineExperience > 0
}

// Garden grows while it has water. LastWatered is the growth checkpoint.
type Garden struct {
	IsPlanted           bool       `json:"isPlanted"`
	PlantedAt           *time.Time `json:"plantedAt"`
	LastWatered         *time.Time `json:"lastWatered"`
	WaterHoursRemaining float64    `json:"waterHoursRemaining"`
	GrowthCm            float64    `json:"growthCm"`
	TotalGrowthBonus    int        `json:"totalGrowthBonus"`
	SeedCost            int        `json:"seedCost"`
	WaterCost           int        `json:"waterCost"`
	MaxGrowthCm         float64    `json:"maxGrowthCm"`
}

type Settings struct {
	ColorblindMode bool   `json:"colorblindMode"`
	DarkMode       bool   `json:"darkMode"`
	Language       string `json:"language"`
	Notifications  bool   `json:"notifications"`
}

// MenuSkill is a timed global buff. It stays in state after ExpiresAt and is
// ignored from then on.
type MenuSkill struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Type          MenuSkillType `json:"type"`
	DurationHours int           `json:"duration"`
	ActivatedAt   time.Time     `json:"activatedAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
}

// ActiveAt reports whether the skill is still in effect at now.
func (m *MenuSkill) ActiveAt(now time.Time) bool {
	return m != nil && !now.After(m.ExpiresAt)
}

type Skills struct {
	ActiveMenuSkill  *MenuSkill `json:"activeMenuSkill"`
	LastRollTime     *time.Time `json:"lastRollTime"`
	SessionStartTime time.Time  `json:"sessionStartTime"`
}

// AdventureSkill is a per-run combat modifier picked from a random offer.
type AdventureSkill struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        AdventureSkillType `json:"type"`
}

// SkillEffects tracks one-shot adventure effects that have been consumed.
type SkillEffects struct {
	SkipCardUsed    bool `json:"skipCardUsed"`
	MetalShieldUsed bool `json:"metalShieldUsed"`
	PhoenixUsed     bool `json:"phoenixUsed"`
	TruthLiesActive bool `json:"truthLiesActive"`
	TimeSlowActive  bool `json:"timeSlowActive"`
}

type AdventureSkills struct {
	SelectedSkill      *AdventureSkill  `json:"selectedSkill"`
	AvailableSkills    []AdventureSkill `json:"availableSkills"`
	ShowSelectionModal bool             `json:"showSelectionModal"`
	Declined           bool             `json:"declined"`
	SkillEffects       SkillEffects     `json:"skillEffects"`
}

// Has reports whether the selected adventure skill is t.
func (a AdventureSkills) Has(t AdventureSkillType) bool {
	return a.SelectedSkill != nil && a.SelectedSkill.Type == t
}
