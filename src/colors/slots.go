package colors

import "fmt"

// Slot names one colour setting of a badge. The set is closed: the only
// Slots are the package-level values below.
type Slot struct {
	name string
}

// Known colour slots.
var (
	Stars            = Slot{"stars"}
	Text             = Slot{"text"}
	Background       = Slot{"background"}
	Stroke           = Slot{"stroke"}
	RatingNumber     = Slot{"ratingNumber"}
	StoreName        = Slot{"storeName"}
	FooterBackground = Slot{"footerBackground"}
)

// Slots lists every colour slot in form order.
func Slots() []Slot {
	return []Slot{Stars, Text, Background, Stroke, RatingNumber, StoreName, FooterBackground}
}

// String returns the slot's configuration key.
func (s Slot) String() string { return s.name }

// ParseSlot maps a configuration key to its Slot.
func ParseSlot(name string) (Slot, error) {
	for _, s := range Slots() {
		if s.name == name {
			return s, nil
		}
	}
	return Slot{}, fmt.Errorf("unknown color slot %q", name)
}

// Config holds one colour per slot. Unset slots are empty.
type Config struct {
	Stars            Value `yaml:"stars,omitempty" toml:"stars,omitempty"`
	Text             Value `yaml:"text,omitempty" toml:"text,omitempty"`
	Background       Value `yaml:"background,omitempty" toml:"background,omitempty"`
	Stroke           Value `yaml:"stroke,omitempty" toml:"stroke,omitempty"`
	RatingNumber     Value `yaml:"rating_number,omitempty" toml:"rating_number,omitempty"`
	StoreName        Value `yaml:"store_name,omitempty" toml:"store_name,omitempty"`
	FooterBackground Value `yaml:"footer_background,omitempty" toml:"footer_background,omitempty"`
}

// Get returns the colour stored in slot s.
func (c Config) Get(s Slot) Value {
	if p := c.field(s); p != nil {
		return *p
	}
	return ""
}

// With returns a copy of c with slot s set to v.
func (c Config) With(s Slot, v Value) Config {
	if p := c.field(s); p != nil {
		*p = v
	}
	return c
}

// field points into c, which is a copy when reached through a value receiver.
func (c *Config) field(s Slot) *Value {
	switch s {
	case Stars:
		return &c.Stars
	case Text:
		return &c.Text
	case Background:
		return &c.Background
	case Stroke:
		return &c.Stroke
	case RatingNumber:
		return &c.RatingNumber
	case StoreName:
		return &c.StoreName
	case FooterBackground:
		return &c.FooterBackground
	}
	return nil
}
