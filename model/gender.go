package model

import (
	"regexp"
	"strings"
)

type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMen     Gender = "men"
	GenderWomen   Gender = "women"
)

var (
	womenRegex = regexp.MustCompile(`kvenna|kvk|\bwomen\b`)
	menRegex   = regexp.MustCompile(`karla|kk\b|\bmen\b`)
)

// ParseGender detects the gender of a competition from its title. KSÍ titles
// carry "karla"/"kvenna" markers; the English forms show up on a few older
// pages. Defaults to GenderUnknown when no marker is present.
func ParseGender(title string) Gender {
	t := strings.ToLower(title)
	switch {
	case womenRegex.MatchString(t):
		return GenderWomen
	case menRegex.MatchString(t):
		return GenderMen
	default:
		return GenderUnknown
	}
}
