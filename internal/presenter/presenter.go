package presenter

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"riotcli/internal/domain"
)

var markupRe = regexp.MustCompile(`<[^>]+>`)

// spell slots in the order Data Dragon lists them
const spellKeys = "QWER"

// StripMarkup removes every <...> tag from text. Applying it twice gives the
// same result as applying it once.
func StripMarkup(text string) string {
	return markupRe.ReplaceAllString(text, "")
}

func FormatRank(rank domain.Rank) string {
	if rank.Unranked() {
		return "Unranked"
	}
	e := rank.Entry
	return fmt.Sprintf("%s %s (%d LP)", e.Tier, e.Division, e.LeaguePoints)
}

// FormatOutcomes renders win flags most-recent-first as "W L W".
func FormatOutcomes(wins []bool) string {
	parts := make([]string, len(wins))
	for i, win := range wins {
		if win {
			parts[i] = "W"
		} else {
			parts[i] = "L"
		}
	}
	return strings.Join(parts, " ")
}

func RenderProfile(p *domain.AggregatedProfile) string {
	printer := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("\n=== Summoner ===\n")
	fmt.Fprintf(&b, "SummonerName : %s\n", p.Identity.GameName)
	fmt.Fprintf(&b, "Level        : %d\n", p.Summoner.Level)
	fmt.Fprintf(&b, "Rank         : %s\n\n", FormatRank(p.Rank))

	fmt.Fprintf(&b, "--- Mastery TOP %d ---\n", len(p.Masteries))
	if len(p.Masteries) == 0 {
		b.WriteString("(none)\n")
	}
	for _, m := range p.Masteries {
		b.WriteString(printer.Sprintf("・ %s (%d)\n", m.Label(), m.Points))
	}

	wins := make([]bool, len(p.Recent.Outcomes))
	for i, o := range p.Recent.Outcomes {
		wins[i] = o.Win
	}
	fmt.Fprintf(&b, "\n--- Last %d (W/L) ---\n", len(p.Recent.Outcomes)+len(p.Recent.Skipped))
	if len(wins) == 0 {
		b.WriteString("(no matches)\n")
	} else {
		b.WriteString(FormatOutcomes(wins) + "\n")
	}
	if len(p.Recent.Skipped) > 0 {
		fmt.Fprintf(&b, "(%d skipped: %s)\n", len(p.Recent.Skipped), strings.Join(p.Recent.Skipped, ", "))
	}
	return b.String()
}

func RenderChampion(c *domain.ChampionRecord) string {
	var b strings.Builder
	s := c.Stats

	fmt.Fprintf(&b, "\n=== %s – %s ===\n", c.Name, c.Title)

	b.WriteString("\n=== Base stats (Lv1) ===\n")
	fmt.Fprintf(&b, "HP          : %v (+%v/Lv)\n", s.HP, s.HPPerLevel)
	fmt.Fprintf(&b, "MP/Energy   : %v (+%v/Lv)\n", s.MP, s.MPPerLevel)
	fmt.Fprintf(&b, "AttackDamage: %v (+%v/Lv)\n", s.AttackDamage, s.AttackDamagePerLevel)
	fmt.Fprintf(&b, "Armor       : %v (+%v/Lv)\n", s.Armor, s.ArmorPerLevel)
	fmt.Fprintf(&b, "Magic Resist: %v (+%v/Lv)\n", s.SpellBlock, s.SpellBlockPerLevel)
	fmt.Fprintf(&b, "Attack Speed: %.3f (+%.3f%%)\n", s.AttackSpeed, s.AttackSpeedPerLevel)
	fmt.Fprintf(&b, "Move Speed  : %v\n", s.MoveSpeed)
	fmt.Fprintf(&b, "Range       : %v\n", s.AttackRange)

	b.WriteString("\n=== Skills ===\n")
	fmt.Fprintf(&b, "Passive – %s\n  %s\n\n", c.Passive.Name, StripMarkup(c.Passive.Description))
	for i, spell := range c.Spells {
		key := "?"
		if i < len(spellKeys) {
			key = spellKeys[i : i+1]
		}
		fmt.Fprintf(&b, "%s – %s\n%s\n\n", key, spell.Name, StripMarkup(spell.Description))
	}
	return b.String()
}

// RenderCandidates numbers candidates from 1 for the selection prompt.
func RenderCandidates(candidates []domain.ChampionCandidate) string {
	var b strings.Builder
	b.WriteString("\nCandidates:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d) %s\n", i+1, c.Name)
	}
	return b.String()
}
