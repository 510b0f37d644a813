package game

import "fmt"

// CardDef is a card kind. Copies in the pool share one definition.
type CardDef struct {
	ID               string
	Name             string
	Element          Element
	Grade            string
	Description      string
	BingoDescription string
	SingleEffects    []Effect
	BingoEffects     []Effect
}

// CardInstance is one physical copy tracked through deck, grid and discard.
// Element starts as the definition's element and may be transformed.
type CardInstance struct {
	Def        *CardDef
	InstanceID string
	Element    Element
	Upgraded   bool
}

func (c *CardInstance) Name() string {
	if c.Def == nil {
		return c.Element.String()
	}
	return c.Def.Name
}

func (c *CardInstance) String() string {
	s := fmt.Sprintf("%s [%s]", c.Name(), c.Element)
	if c.Upgraded {
		s += "+"
	}
	return s
}

// singleEffects falls back to the element's basic behaviour when the
// definition carries none.
func (c *CardInstance) singleEffects() []Effect {
	if c.Def != nil && len(c.Def.SingleEffects) > 0 {
		return c.Def.SingleEffects
	}
	return basicEffects(c.Element)
}

func (c *CardInstance) bingoEffects() []Effect {
	if c.Def == nil {
		return nil
	}
	return c.Def.BingoEffects
}

// BasicCard returns the plain card definition for an element.
func BasicCard(e Element) *CardDef {
	return &CardDef{
		ID:          basicCardID(e),
		Name:        e.String(),
		Element:     e,
		Grade:       "Basic",
		Description: basicDescription(e),
	}
}

func basicCardID(e Element) string {
	return fmt.Sprintf("basic-%s", e)
}

func basicDescription(e Element) string {
	switch e {
	case ElementFire:
		return "Deal damage equal to attack power to a random enemy"
	case ElementEarth:
		return "Gain block equal to shield power"
	case ElementWater:
		return "Heal 1/8 of max HP"
	case ElementWind:
		return "Gain an attack buff or give a random enemy an attack debuff"
	default:
		return ""
	}
}

// DefaultComposition is the starter pool: CopiesPerElement basic cards of
// each element.
func DefaultComposition() []*CardDef {
	var defs []*CardDef
	for _, e := range Elements {
		def := BasicCard(e)
		for i := 0; i < CopiesPerElement; i++ {
			defs = append(defs, def)
		}
	}
	return defs
}

const CopiesPerElement = 8
