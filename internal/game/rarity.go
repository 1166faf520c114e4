package game

import "fmt"

// Rarity is the ordinal quality tier of an item.
type Rarity int

const (
	Common Rarity = iota
	Rare
	Epic
	Legendary
	Mythical
)

// AllRarities lists every tier in ascending order.
var AllRarities = []Rarity{Common, Rare, Epic, Legendary, Mythical}

var rarityNames = [...]string{"common", "rare", "epic", "legendary", "mythical"}

func (r Rarity) String() string {
	if r < Common || r > Mythical {
		return fmt.Sprintf("rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// Valid reports whether r is one of the five defined tiers.
func (r Rarity) Valid() bool {
	return r >= Common && r <= Mythical
}

// ParseRarity converts a lowercase tier name to a Rarity.
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if name == s {
			return Rarity(i), nil
		}
	}
	return Common, fmt.Errorf("unknown rarity %q", s)
}

// MarshalText encodes the rarity as its lowercase name.
func (r Rarity) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rarity %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a lowercase tier name.
func (r *Rarity) UnmarshalText(b []byte) error {
	parsed, err := ParseRarity(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ItemKind distinguishes offensive from defensive equipment.
type ItemKind string

const (
	KindWeapon ItemKind = "weapon"
	KindArmor  ItemKind = "armor"
)

// Valid reports whether k is weapon or armor.
func (k ItemKind) Valid() bool {
	return k == KindWeapon || k == KindArmor
}

// ParseItemKind accepts "weapon" or "armor".
func ParseItemKind(s string) (ItemKind, error) {
	k := ItemKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown item kind %q", s)
	}
	return k, nil
}
