package players

// CreateInput carries the fields needed to register a player.
type CreateInput struct {
	Name  string
	Sport *string
}

// ListFilters narrows the player list.
type ListFilters struct {
	Sport *string
	Name  *string
}
