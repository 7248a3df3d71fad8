package ksi

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jacobf001/iceland-db/model"
)

var (
	// Native match identifiers hide in link targets, either as a query
	// parameter on newer pages or a path segment on older ones.
	matchLinkRegex = regexp.MustCompile(`(?:leiknumer|leikur)=(\d+)|match/(\d+)`)
	scoreRegex     = regexp.MustCompile(`\b(\d+)\s*[-–]\s*(\d+)\b`)
	digitsRegex    = regexp.MustCompile(`^\d+$`)
	trailingScore  = regexp.MustCompile(`\s+(\d{1,2})$`)
)

// headerCells is the vocabulary of table-header rows across every KSÍ markup
// dialect seen so far. A row containing any of these as standalone cell
// content is a header, not a match.
var headerCells = map[string]bool{
	"lið":        true,
	"úrslit":     true,
	"dagsetning": true,
	"dagset":     true,
	"staður":     true,
	"völlur":     true,
	"umferð":     true,
	"leikur":     true,
	"team":       true,
	"result":     true,
	"date":       true,
	"time":       true,
	"venue":      true,
	"round":      true,
}

// ParseCompetition extracts every match record from a single competition
// page. Individual rows that cannot be interpreted are skipped; the function
// only fails when the document itself cannot be read.
func ParseCompetition(html, motnumer, sourceURL string) ([]model.Match, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("error parsing competition page %s: %w", motnumer, err)
	}

	var matches []model.Match
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if m, ok := parseMatchRow(tr, motnumer, sourceURL); ok {
			matches = append(matches, m)
		}
	})

	return DedupMatches(matches), nil
}

// teamEntry is one side of a structured two-team listing.
type teamEntry struct {
	name     string
	score    int
	hasScore bool
}

func parseMatchRow(tr *goquery.Selection, motnumer, sourceURL string) (model.Match, bool) {
	cells := cellTexts(tr)
	if len(cells) == 0 {
		return model.Match{}, false
	}
	if isHeaderRow(cells) {
		return model.Match{}, false
	}

	kickoff, venue := extractKickoffCell(tr)

	home, away, ok := extractTeamList(tr)
	if !ok {
		// Degraded mode for pages without the structured team markup.
		home, away, ok = extractTeamsGeneric(cells)
		if !ok {
			return model.Match{}, false
		}
		if !home.hasScore || !away.hasScore {
			if m := scoreRegex.FindStringSubmatch(strings.Join(cells, " | ")); m != nil {
				home.score, _ = strconv.Atoi(m[1])
				away.score, _ = strconv.Atoi(m[2])
				home.hasScore = true
				away.hasScore = true
			}
		}
	}

	if kickoff.IsZero() {
		kickoff = scanCellsForKickoff(cells)
	}
	// Some dialects leak the kickoff into the front of a team cell. Strip it
	// from the name either way, and use it when no cell yielded a kickoff.
	for _, e := range []*teamEntry{&home, &away} {
		if dt, rem, split := SplitFrontKickoff(e.name); split && rem != "" {
			e.name = rem
			if kickoff.IsZero() {
				kickoff = dt
			}
		}
	}

	status := model.StatusScheduled
	ftHome, ftAway := 0, 0
	if home.hasScore && away.hasScore {
		status = model.StatusPlayed
		ftHome, ftAway = home.score, away.score
	}

	id, matchURL := extractNativeID(tr, sourceURL)
	if id == "" {
		id = StableMatchID(motnumer, kickoff, home.name, away.name)
	}

	return model.Match{
		ID:          id,
		Motnumer:    motnumer,
		KickoffUTC:  kickoff,
		HomeTeamRaw: home.name,
		AwayTeamRaw: away.name,
		VenueRaw:    venue,
		Status:      status,
		FtHome:      ftHome,
		FtAway:      ftAway,
		SourceURL:   matchURL,
	}, true
}

func cellTexts(tr *goquery.Selection) []string {
	var cells []string
	tr.Find("td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, strings.Join(strings.Fields(td.Text()), " "))
	})
	return cells
}

func isHeaderRow(cells []string) bool {
	for _, c := range cells {
		if headerCells[strings.ToLower(strings.TrimSpace(c))] {
			return true
		}
	}
	return false
}

// extractTeamList looks for the structured markup dialect: a list element
// with exactly two entries, one per team, each holding the team name and
// optionally its final score as a trailing number.
func extractTeamList(tr *goquery.Selection) (home, away teamEntry, ok bool) {
	tr.Find("ul, ol").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		items := list.ChildrenFiltered("li")
		if items.Length() != 2 {
			return true
		}

		entries := make([]teamEntry, 0, 2)
		items.Each(func(_ int, li *goquery.Selection) {
			if e, valid := parseTeamEntry(li.Text()); valid {
				entries = append(entries, e)
			}
		})
		if len(entries) != 2 || entries[0].name == entries[1].name {
			return true
		}

		home, away, ok = entries[0], entries[1], true
		return false
	})
	return home, away, ok
}

func parseTeamEntry(text string) (teamEntry, bool) {
	t := strings.Join(strings.Fields(text), " ")
	if t == "" || digitsRegex.MatchString(t) {
		return teamEntry{}, false
	}

	e := teamEntry{name: t}
	if m := trailingScore.FindStringSubmatch(t); m != nil {
		e.score, _ = strconv.Atoi(m[1])
		e.hasScore = true
		e.name = strings.TrimSpace(t[:len(t)-len(m[0])])
	}
	if len(e.name) < 2 {
		return teamEntry{}, false
	}
	return e, true
}

// extractTeamsGeneric is the oldest heuristic: treat every non-empty,
// non-numeric, non-date-shaped cell as a team-name candidate after stripping
// any embedded score, and take the first two distinct candidates.
func extractTeamsGeneric(cells []string) (home, away teamEntry, ok bool) {
	if len(cells) < 3 {
		return home, away, false
	}

	var teamish []string
	for _, c := range cells {
		if c == "" || LooksLikeDatetime(c) {
			continue
		}
		cleaned := strings.TrimSpace(scoreRegex.ReplaceAllString(c, ""))
		if len(cleaned) < 2 || digitsRegex.MatchString(cleaned) {
			continue
		}
		teamish = append(teamish, cleaned)
	}

	// Not enough yet: allow date-shaped cells back in, the kickoff may be
	// embedded in front of a team name.
	if len(teamish) < 2 {
		teamish = teamish[:0]
		for _, c := range cells {
			if c == "" {
				continue
			}
			cleaned := strings.TrimSpace(scoreRegex.ReplaceAllString(c, ""))
			if len(cleaned) < 2 {
				continue
			}
			teamish = append(teamish, cleaned)
		}
	}
	if len(teamish) < 2 {
		return home, away, false
	}

	home = teamEntry{name: teamish[0]}
	for _, cand := range teamish[1:] {
		if cand != home.name {
			away = teamEntry{name: cand}
			return home, away, true
		}
	}
	return home, away, false
}

// extractKickoffCell reads the dedicated date-bearing cell present in the
// newer markup dialect. The cell text leads with the kickoff and may trail
// with the venue, e.g. "Lau. 10.5.2025 14:00 Valsvöllur".
func extractKickoffCell(tr *goquery.Selection) (time.Time, string) {
	cell := tr.Find(`td[class*="dags"]`).First()
	if cell.Length() == 0 {
		return time.Time{}, ""
	}

	text := strings.Join(strings.Fields(cell.Text()), " ")
	if dt, rem, ok := SplitFrontKickoff(text); ok {
		return dt, rem
	}
	if dt, ok := ParseKickoff(text); ok {
		return dt, ""
	}
	return time.Time{}, ""
}

func scanCellsForKickoff(cells []string) time.Time {
	for _, c := range cells {
		if !LooksLikeDatetime(c) {
			continue
		}
		if dt, ok := ParseKickoff(c); ok {
			return dt
		}
	}
	return time.Time{}
}

// extractNativeID recovers a native match identifier and match report URL
// from an embedded link, when the row has one.
func extractNativeID(tr *goquery.Selection, sourceURL string) (id, matchURL string) {
	matchURL = sourceURL
	tr.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		m := matchLinkRegex.FindStringSubmatch(href)
		if m == nil {
			return true
		}

		id = m[1]
		if id == "" {
			id = m[2]
		}
		if base, err := url.Parse(sourceURL); err == nil {
			if ref, err := url.Parse(href); err == nil {
				matchURL = base.ResolveReference(ref).String()
			}
		}
		return false
	})
	return id, matchURL
}
