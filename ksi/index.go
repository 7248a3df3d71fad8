package ksi

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jacobf001/iceland-db/model"
)

var motnumerRegex = regexp.MustCompile(`motnumer=(\d+)`)

// ErrNoCompetitions means the index page yielded zero competition links.
// That is a hard failure: the site layout has changed, and every downstream
// record would silently vanish if it were treated as an empty-but-valid page.
var ErrNoCompetitions = errors.New("no competition links found on index page")

// navLabels are generic link texts that must not be mistaken for a
// competition name.
var navLabels = map[string]bool{
	"nánar":     true,
	"sjá nánar": true,
	"sjá mót":   true,
	"skoða":     true,
	"til baka":  true,
	"english":   true,
	"forsíða":   true,
}

// ParseIndex walks every hyperlink on the competition listing page and maps
// each motnumer found in a link target to a competition record. The anchor's
// visible text becomes the name, with gender, tier and group inferred from
// it. Duplicate links for the same motnumer are expected; the last usable one
// wins.
func ParseIndex(html string, season int, baseURL string) (map[string]model.Competition, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("error parsing index page: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing base url %s: %w", baseURL, err)
	}

	comps := make(map[string]model.Competition)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := motnumerRegex.FindStringSubmatch(href)
		if m == nil {
			return
		}
		mot := m[1]

		name := strings.Join(strings.Fields(a.Text()), " ")
		if name == "" || navLabels[strings.ToLower(name)] {
			// The link target is usable but its text is not. Keep any record
			// a better link already produced for this motnumer.
			if _, seen := comps[mot]; seen {
				return
			}
			name = model.UnknownCompetition
		}

		comps[mot] = model.Competition{
			Motnumer:   mot,
			Season:     season,
			Gender:     model.ParseGender(name),
			Tier:       InferTier(name),
			NameRaw:    name,
			GroupLabel: GroupLabel(name),
			SourceURL:  resolveLink(base, href),
		}
	})

	if len(comps) == 0 {
		return nil, ErrNoCompetitions
	}
	return comps, nil
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
