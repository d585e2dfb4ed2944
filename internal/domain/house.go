package domain

// House is a property listed by one or more agents.
type House struct {
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	SquareFeet  int     `json:"square_feet"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	YearBuilt   int     `json:"year_built"`
	Description string  `json:"description"`
	events      []*Event
}

// NewHouse returns a House with the given listing details.
func NewHouse(address string, price float64, squareFeet, bedrooms, bathrooms, yearBuilt int, description string) *House {
	return &House{
		Address:     address,
		Price:       price,
		SquareFeet:  squareFeet,
		Bedrooms:    bedrooms,
		Bathrooms:   bathrooms,
		YearBuilt:   yearBuilt,
		Description: description,
	}
}

// AddEvent records a back-reference to an event held at the house.
func (h *House) AddEvent(e *Event) {
	if e == nil {
		return
	}
	for _, existing := range h.events {
		if existing == e {
			return
		}
	}
	h.events = append(h.events, e)
}

// Events returns a copy of the events held at the house.
func (h *House) Events() []*Event {
	out := make([]*Event, len(h.events))
	copy(out, h.events)
	return out
}
