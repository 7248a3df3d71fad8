package model

import (
	"fmt"
	"time"
)

// UnknownCompetition is the sentinel name used when no usable title could be
// extracted from a competition page.
const UnknownCompetition = "Unknown competition"

// Competition is a single KSÍ competition/division instance, keyed by the
// motnumer the source site assigns. Re-ingesting the same motnumer always
// overwrites the derived fields.
type Competition struct {
	Motnumer   string
	Season     int
	Gender     Gender
	Tier       int // 0 means unranked: a cup, or a division we could not place
	NameRaw    string
	GroupLabel string // e.g. "A riðill", empty when the competition has no groups
	SourceURL  string
	Created    time.Time
	Updated    time.Time
}

func (c *Competition) FormattedTier() string {
	if c.Tier == 0 {
		return "unranked"
	}
	return fmt.Sprintf("%d", c.Tier)
}

func (c *Competition) FormattedUpdatedTime() string {
	if c.Updated.IsZero() {
		return "unknown"
	}
	return c.Updated.Format(time.DateTime)
}
