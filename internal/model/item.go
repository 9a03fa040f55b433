package model

// Item is a catalogue entry. It has no timestamps.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

// ItemCreate is the payload for creating an item and for replacing one via PUT.
type ItemCreate struct {
	Name        Optional[string]  `json:"name,omitzero"`
	Description Optional[string]  `json:"description,omitzero"`
	Price       Optional[float64] `json:"price,omitzero"`
}

// Validate checks that name and price are present.
func (c ItemCreate) Validate() error {
	return firstError(
		required("name", c.Name),
		required("price", c.Price),
	)
}

// Record builds a new, unsaved item from the payload.
func (c ItemCreate) Record() Item {
	return Item{
		Name:        c.Name.Value,
		Description: c.Description.Ptr(),
		Price:       c.Price.Value,
	}
}

// Apply returns a copy of stored with the payload written over it. Name and
// price are always replaced; description only when the key was sent.
func (c ItemCreate) Apply(stored Item) Item {
	out := stored
	out.Name = c.Name.Value
	out.Price = c.Price.Value
	if c.Description.Set {
		out.Description = c.Description.Ptr()
	}
	return out
}
