package model

import "time"

// Team is a resolved team identity. A team is created on the first sighting of
// a distinct canonical name and is never deleted or merged; two spellings that
// differ by case or whitespace are two different teams.
type Team struct {
	ID            int32
	NameCanonical string
	Created       time.Time
}

// TeamAlias records a raw, as-displayed spelling of a team name. The alias
// always points at the most recently resolved team for that exact spelling.
type TeamAlias struct {
	Alias  string
	TeamID int32
}
