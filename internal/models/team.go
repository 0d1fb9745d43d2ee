package models

// Team is one rated (or excluded) participant derived from the game set.
type Team struct {
	// ID is the external identifier in its string form; equal to Name
	// when matching by name.
	ID   string
	Name string

	// AllIndex is the position in the stable name-sorted list of every
	// team observed in the loaded games.
	AllIndex int

	// NetworkIndex is the position within the primary network ordering,
	// or -1 for teams outside the primary network.
	NetworkIndex int

	// Division and Conference are pass-through affiliations from the
	// team's current-season games; nil when the feed never supplies them.
	Division   *string
	Conference *string
}

// InNetwork reports whether the team belongs to the primary network.
func (t *Team) InNetwork() bool {
	return t.NetworkIndex >= 0
}
