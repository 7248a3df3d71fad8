package ksi

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/jacobf001/iceland-db/model"
)

// titleRule is one scoring signal for a candidate competition title. The rule
// set is additive: every matching rule contributes its weight.
type titleRule struct {
	re     *regexp.Regexp
	weight int
}

var titleRules = []titleRule{
	// A numbered division ("3. deild") is the strongest signal there is.
	{regexp.MustCompile(`(?i)\b\d{1,2}\.\s*deild\b`), 60},
	{regexp.MustCompile(`(?i)deild`), 50},
	{regexp.MustCompile(`(?i)karla`), 40},
	{regexp.MustCompile(`(?i)kvenna`), 40},
	{regexp.MustCompile(`(?i)riðill`), 35},
	{regexp.MustCompile(`(?i)bikar`), 25},
	{regexp.MustCompile(`(?i)mót`), 10},
	// Icelandic letters are a weak hint the string is prose, not boilerplate.
	{regexp.MustCompile(`[áðéíóúýþæö]`), 5},
	{regexp.MustCompile(`(?i)https?://|www\.`), -50},
	{regexp.MustCompile(`(?i)smelltu|sjá nánar|skrá mig|innskráning|click here`), -20},
}

const denyWeight = -200

// denyTitles are generic page fragments that must never win title selection.
var denyTitles = map[string]bool{
	"úrslit":      true,
	"leikir":      true,
	"staða":       true,
	"stöðutafla":  true,
	"niðurstöður": true,
	"results":     true,
	"standings":   true,
	"fixtures":    true,
	"forsíða":     true,
}

const (
	minTitleLen = 5
	maxTitleLen = 120
)

// ScoreTitle applies the full rule set to a single candidate string.
func ScoreTitle(s string) int {
	score := 0
	for _, r := range titleRules {
		if r.re.MatchString(s) {
			score += r.weight
		}
	}
	if denyTitles[strings.ToLower(strings.TrimSpace(s))] {
		score += denyWeight
	}
	return score
}

// SelectTitle picks the best-guess competition title out of an HTML page.
// Candidates come from heading and emphasis elements, falling back to every
// visible text line when none qualify. Returns model.UnknownCompetition when
// nothing usable is found.
func SelectTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.UnknownCompetition
	}

	var candidates []string
	doc.Find("h1, h2, h3, strong, b, em").Each(func(_ int, s *goquery.Selection) {
		candidates = appendTitleCandidate(candidates, s.Text())
	})
	if len(candidates) == 0 {
		for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
			candidates = appendTitleCandidate(candidates, line)
		}
	}

	best := ""
	bestScore := 0
	for _, c := range candidates {
		// Strictly-greater keeps the first-seen candidate on ties.
		if score := ScoreTitle(c); best == "" || score > bestScore {
			best = c
			bestScore = score
		}
	}

	if best == "" || denyTitles[strings.ToLower(best)] {
		return model.UnknownCompetition
	}
	return best
}

func appendTitleCandidate(candidates []string, text string) []string {
	t := strings.Join(strings.Fields(text), " ")
	if n := utf8.RuneCountInString(t); n < minTitleLen || n > maxTitleLen {
		return candidates
	}
	return append(candidates, t)
}

var (
	cupRegex        = regexp.MustCompile(`(?i)bikar|úrslitakeppni|\bcup\b`)
	topTierRegex    = regexp.MustCompile(`(?i)besta\s*deild|úrvalsdeild|pepsi\s*max\s*deild`)
	secondTierRegex = regexp.MustCompile(`(?i)lengjudeild`)
	numberedRegex   = regexp.MustCompile(`(\d{1,2})\.\s*deild`)
)

// InferTier maps a competition title to an integer tier, lower meaning
// stronger. Cup competitions never get a tier, whatever else the title says.
// KSÍ numbers its lower divisions one below their actual strength rank, so
// "1. deild" is the second tier and "N. deild" maps to N+1. Returns 0 when
// no tier applies.
func InferTier(title string) int {
	if cupRegex.MatchString(title) {
		return 0
	}
	if topTierRegex.MatchString(title) {
		return 1
	}
	if secondTierRegex.MatchString(title) {
		return 2
	}
	if m := numberedRegex.FindStringSubmatch(title); m != nil {
		n := 0
		fmt.Sscanf(m[1], "%d", &n)
		if n > 0 {
			return n + 1
		}
	}
	return 0
}

var groupRegex = regexp.MustCompile(`(?i)\b([a-záðéíóúýþæö])[\s.-]*riðill`)

// GroupLabel extracts a group/pool label like "A riðill" from a title,
// normalized to an upper-case letter plus the group word. Empty when absent.
func GroupLabel(title string) string {
	m := groupRegex.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1]) + " riðill"
}
