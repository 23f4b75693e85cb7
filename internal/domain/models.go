package domain

import "fmt"

type (
	PlatformCode  string
	RegionCluster string
)

type PlayerIdentity struct {
	GameName string
	TagLine  string
}

func (p PlayerIdentity) String() string {
	return p.GameName + "#" + p.TagLine
}

type SummonerProfile struct {
	Level int64
}

type RankEntry struct {
	QueueType    string
	Tier         string
	Division     string
	LeaguePoints int
}

// Rank is the selected ranked standing. A nil Entry means the player is unranked.
type Rank struct {
	Entry *RankEntry
}

func (r Rank) Unranked() bool {
	return r.Entry == nil
}

type MasteryEntry struct {
	ChampionID int
	Points     int
}

type ResolvedMastery struct {
	ChampionID int
	Name       string // empty when the id is missing from the champion index
	Points     int
}

// Label is the champion name, or the raw id when the name is unknown.
func (m ResolvedMastery) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("%d", m.ChampionID)
}

// ChampionIndex maps the numeric champion key to the champion name.
type ChampionIndex map[int]string

type ChampionStats struct {
	HP                   float64
	HPPerLevel           float64
	MP                   float64
	MPPerLevel           float64
	AttackDamage         float64
	AttackDamagePerLevel float64
	Armor                float64
	ArmorPerLevel        float64
	SpellBlock           float64
	SpellBlockPerLevel   float64
	AttackSpeed          float64
	AttackSpeedPerLevel  float64
	MoveSpeed            float64
	AttackRange          float64
}

type Ability struct {
	Name        string
	Description string
}

type ChampionRecord struct {
	ID      string
	Key     string
	Name    string
	Title   string
	Stats   ChampionStats
	Passive Ability
	Spells  []Ability
}

type ChampionCatalog struct {
	Version string
	Locale  string
	Order   []string
	Records map[string]ChampionRecord
}

type ChampionCandidate struct {
	ID   string
	Name string
}

type MatchOutcome struct {
	MatchID string
	Win     bool
}

// RecentResults holds outcomes most-recent-first. Skipped lists match ids whose
// detail could not be used.
type RecentResults struct {
	Outcomes []MatchOutcome
	Skipped  []string
}

type AggregatedProfile struct {
	Identity  PlayerIdentity
	Platform  PlatformCode
	Region    RegionCluster
	PUUID     string
	Summoner  SummonerProfile
	Rank      Rank
	Masteries []ResolvedMastery
	Recent    RecentResults
}
