package web

import (
	"github.com/peterkuimelis/bingox/internal/game"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Element          string   `json:"element"`
	Grade            string   `json:"grade,omitempty"`
	Description      string   `json:"description,omitempty"`
	BingoDescription string   `json:"bingoDescription,omitempty"`
	Effects          []string `json:"effects"`
	BingoEffects     []string `json:"bingoEffects,omitempty"`
	Source           string   `json:"source"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int            `json:"number"`
	Name   string         `json:"name"`
	Size   int            `json:"size"`
	Cards  []DeckCardInfo `json:"cards"`
}

type DeckCardInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func cardInfo(def *game.CardDef, source string) CardInfo {
	ci := CardInfo{
		ID:               def.ID,
		Name:             def.Name,
		Element:          def.Element.String(),
		Grade:            def.Grade,
		Description:      def.Description,
		BingoDescription: def.BingoDescription,
		Effects:          effectKinds(def.SingleEffects),
		BingoEffects:     effectKinds(def.BingoEffects),
		Source:           source,
	}
	if ci.Effects == nil {
		ci.Effects = []string{}
	}
	return ci
}

func effectKinds(effects []game.Effect) []string {
	var kinds []string
	for _, e := range effects {
		kinds = append(kinds, e.Kind().String())
	}
	return kinds
}

// registryCards lists the built-in cards in id order.
func registryCards() []CardInfo {
	var cards []CardInfo
	for _, id := range game.RegistryIDs() {
		cards = append(cards, cardInfo(game.CardRegistry[id](), "registry"))
	}
	return cards
}

// deckInfos merges repeated entries of the same card so each deck lists a
// card once with its total count.
func deckInfos(df *game.DeckFile) []DeckInfo {
	decks := []DeckInfo{}
	for i, d := range df.Decks {
		di := DeckInfo{Number: i + 1, Name: d.Name}
		index := make(map[string]int)
		for _, c := range d.Cards {
			di.Size += c.Count
			if j, ok := index[c.Name]; ok {
				di.Cards[j].Count += c.Count
				continue
			}
			index[c.Name] = len(di.Cards)
			di.Cards = append(di.Cards, DeckCardInfo{Name: c.Name, Count: c.Count})
		}
		decks = append(decks, di)
	}
	return decks
}
