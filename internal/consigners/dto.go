package consigners

// CreateInput carries the fields needed to register a consigner.
type CreateInput struct {
	Name      string
	Email     *string
	Phone     *string
	Notes     *string
	IsDefault bool
}

// UpdateInput applies a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Name   *string
	Email  *string
	Phone  *string
	Notes  *string
	Active *bool
}

// ListFilters narrows the consigner list.
type ListFilters struct {
	ActiveOnly bool
}
