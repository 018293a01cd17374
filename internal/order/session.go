package order

// SelectedColor is one catalog item picked by the party. Quantity stays nil
// until the party enters it.
type SelectedColor struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	Quantity *int   `json:"quantity,omitempty"`
}

// Session is the in-progress order of one party.
type Session struct {
	Step         Step             `json:"step"`
	Colors       []SelectedColor  `json:"selected_colors"`
	CurrentColor int              `json:"current_color_index"`
	Order        map[Field]string `json:"order"`
}

func NewSession() *Session {
	return &Session{
		Step:   StepCatalog,
		Colors: []SelectedColor{},
		Order:  make(map[Field]string),
	}
}

// Clone returns a deep copy, so a rejected transition can be discarded.
func (s *Session) Clone() *Session {
	cp := &Session{
		Step:         s.Step,
		Colors:       make([]SelectedColor, len(s.Colors)),
		CurrentColor: s.CurrentColor,
		Order:        make(map[Field]string, len(s.Order)),
	}
	for i, c := range s.Colors {
		if c.Quantity != nil {
			q := *c.Quantity
			c.Quantity = &q
		}
		cp.Colors[i] = c
	}
	for k, v := range s.Order {
		cp.Order[k] = v
	}
	return cp
}

func (s *Session) hasColor(name string) bool {
	for _, c := range s.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (s *Session) firstMissingQuantity() (SelectedColor, bool) {
	for _, c := range s.Colors {
		if c.Quantity == nil {
			return c, true
		}
	}
	return SelectedColor{}, false
}

func (s *Session) field(f Field) string {
	if s.Order == nil {
		return ""
	}
	return s.Order[f]
}

func (s *Session) setField(f Field, v string) {
	if s.Order == nil {
		s.Order = make(map[Field]string)
	}
	s.Order[f] = v
}
