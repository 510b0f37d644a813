package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/bingox/internal/log"
)

// PoolNotice records a deck lifecycle event (shuffle, reshuffle,
// regeneration) for the battle to log.
type PoolNotice struct {
	Type  log.EventType
	Count int
}

// Pool owns every card instance of a battle: the deck (drawn from the tail),
// the discard pile and the 4×4 grid.
type Pool struct {
	Deck    []*CardInstance
	Discard []*CardInstance
	Grid    []*CardInstance

	composition []*CardDef
	catalog     map[string]*CardDef
	rng         RNG
	nextID      int
	notices     []PoolNotice
}

// NewPool creates a pool from a composition: one entry per physical copy.
// The catalog resolves AddCard lookups and defaults to the composition plus
// the basic cards.
func NewPool(composition []*CardDef, rng RNG) (*Pool, error) {
	if len(composition) == 0 {
		return nil, ErrEmptyPool
	}
	p := &Pool{
		composition: append([]*CardDef(nil), composition...),
		catalog:     make(map[string]*CardDef),
		rng:         rng,
	}
	for _, e := range Elements {
		def := BasicCard(e)
		p.catalog[def.ID] = def
	}
	for _, def := range composition {
		p.catalog[def.ID] = def
	}
	p.Initialize()
	return p, nil
}

// Initialize rebuilds the deck from the composition with fresh instance ids
// and shuffles it. Discard and grid are emptied.
func (p *Pool) Initialize() {
	p.Deck = p.Deck[:0]
	p.Discard = nil
	p.Grid = nil
	for _, def := range p.composition {
		p.Deck = append(p.Deck, p.newInstance(def))
	}
	p.Shuffle()
}

func (p *Pool) newInstance(def *CardDef) *CardInstance {
	p.nextID++
	return &CardInstance{
		Def:        def,
		InstanceID: fmt.Sprintf("%s#%d", def.ID, p.nextID),
		Element:    def.Element,
	}
}

// Shuffle permutes the deck uniformly.
func (p *Pool) Shuffle() {
	shuffleInPlace(p.rng, p.Deck)
	p.notices = append(p.notices, PoolNotice{Type: log.EventShuffle, Count: len(p.Deck)})
}

// DrainNotices returns and clears the lifecycle notices gathered so far.
func (p *Pool) DrainNotices() []PoolNotice {
	n := p.notices
	p.notices = nil
	return n
}

func (p *Pool) DeckCount() int    { return len(p.Deck) }
func (p *Pool) DiscardCount() int { return len(p.Discard) }
func (p *Pool) GridCount() int    { return len(p.Grid) }

// Total is the number of live instances across deck, discard and grid.
func (p *Pool) Total() int {
	return len(p.Deck) + len(p.Discard) + len(p.Grid)
}

// Composition returns the definitions the pool regenerates from.
func (p *Pool) Composition() []*CardDef {
	return p.composition
}

// draw pops the top card. An empty deck is refilled from the discard pile;
// if both are empty the pool is regenerated from its composition.
func (p *Pool) draw() (*CardInstance, error) {
	if len(p.Deck) == 0 {
		if err := p.refill(); err != nil {
			return nil, err
		}
	}
	c := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	return c, nil
}

func (p *Pool) refill() error {
	if len(p.Discard) > 0 {
		p.Deck = append(p.Deck, p.Discard...)
		p.Discard = nil
		shuffleInPlace(p.rng, p.Deck)
		p.notices = append(p.notices, PoolNotice{Type: log.EventReshuffle, Count: len(p.Deck)})
		return nil
	}
	if len(p.composition) == 0 {
		return ErrPoolExhausted
	}
	for _, def := range p.composition {
		p.Deck = append(p.Deck, p.newInstance(def))
	}
	shuffleInPlace(p.rng, p.Deck)
	p.notices = append(p.notices, PoolNotice{Type: log.EventRegenerate, Count: len(p.Deck)})
	return nil
}

// DrawGrid fills the grid with min(GridSize, deck+discard) cards.
func (p *Pool) DrawGrid() ([]*CardInstance, error) {
	if len(p.Grid) > 0 {
		p.DiscardGrid()
	}
	n := len(p.Deck) + len(p.Discard)
	if n == 0 {
		if err := p.refill(); err != nil {
			return nil, err
		}
		n = len(p.Deck)
	}
	if n > GridSize {
		n = GridSize
	}
	grid := make([]*CardInstance, 0, n)
	for i := 0; i < n; i++ {
		c, err := p.draw()
		if err != nil {
			p.Discard = append(p.Discard, grid...)
			return nil, err
		}
		grid = append(grid, c)
	}
	p.Grid = grid
	return p.Grid, nil
}

// DiscardGrid moves every grid card to the discard pile.
func (p *Pool) DiscardGrid() int {
	n := len(p.Grid)
	p.Discard = append(p.Discard, p.Grid...)
	p.Grid = nil
	return n
}

// Lookup resolves a definition id or an element name to a definition.
func (p *Pool) Lookup(ref string) (*CardDef, bool) {
	if def, ok := p.catalog[ref]; ok {
		return def, true
	}
	if e, ok := ParseElement(ref); ok {
		return p.catalog[basicCardID(e)], true
	}
	for _, def := range p.catalog {
		if strings.EqualFold(def.Name, ref) {
			return def, true
		}
	}
	return nil, false
}

// AddCard creates a new copy and shuffles it into the deck. The card also
// joins the composition used for regeneration.
func (p *Pool) AddCard(ref string) (*CardInstance, error) {
	def, ok := p.Lookup(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, ref)
	}
	c := p.newInstance(def)
	pos := p.rng.Intn(len(p.Deck) + 1)
	p.Deck = append(p.Deck, nil)
	copy(p.Deck[pos+1:], p.Deck[pos:])
	p.Deck[pos] = c
	p.composition = append(p.composition, def)
	return c, nil
}

// RemoveCard removes an instance, searching deck, then discard, then grid.
// Reports whether anything was removed.
func (p *Pool) RemoveCard(instanceID string) bool {
	for _, zone := range []*[]*CardInstance{&p.Deck, &p.Discard, &p.Grid} {
		for i, c := range *zone {
			if c.InstanceID != instanceID {
				continue
			}
			*zone = append((*zone)[:i], (*zone)[i+1:]...)
			p.dropFromComposition(c.Def)
			return true
		}
	}
	return false
}

func (p *Pool) dropFromComposition(def *CardDef) {
	for i, d := range p.composition {
		if d == def || (def != nil && d.ID == def.ID) {
			p.composition = append(p.composition[:i], p.composition[i+1:]...)
			return
		}
	}
}

// Find returns the instance with the given id wherever it lives.
func (p *Pool) Find(instanceID string) *CardInstance {
	for _, zone := range [][]*CardInstance{p.Grid, p.Deck, p.Discard} {
		for _, c := range zone {
			if c.InstanceID == instanceID {
				return c
			}
		}
	}
	return nil
}

func (p *Pool) validIndex(i int) bool {
	return i >= 0 && i < len(p.Grid)
}

// TransformCard changes a grid card's element in place and gives it a new
// instance id so identity-based tracking sees a new card.
func (p *Pool) TransformCard(index int, e Element) bool {
	if !p.validIndex(index) || e == ElementNone {
		return false
	}
	c := p.Grid[index]
	p.nextID++
	base := c.InstanceID
	if cut := strings.IndexByte(base, '~'); cut >= 0 {
		base = base[:cut]
	}
	c.InstanceID = fmt.Sprintf("%s~%d", base, p.nextID)
	c.Element = e
	return true
}

// ReplaceCard draws a substitute for the card at index, then discards the
// old card so it cannot come back as its own replacement.
func (p *Pool) ReplaceCard(index int) (*CardInstance, error) {
	if !p.validIndex(index) {
		return nil, nil
	}
	old := p.Grid[index]
	c, err := p.draw()
	if err != nil {
		return nil, err
	}
	p.Discard = append(p.Discard, old)
	p.Grid[index] = c
	return c, nil
}

// Swap exchanges two grid slots.
func (p *Pool) Swap(a, b int) bool {
	if !p.validIndex(a) || !p.validIndex(b) || a == b {
		return false
	}
	p.Grid[a], p.Grid[b] = p.Grid[b], p.Grid[a]
	return true
}

// UpgradeCard marks a grid card as upgraded. Already upgraded cards are
// left alone.
func (p *Pool) UpgradeCard(index int) bool {
	if !p.validIndex(index) || p.Grid[index].Upgraded {
		return false
	}
	p.Grid[index].Upgraded = true
	return true
}

// SetGrid replaces the grid with fresh instances of defs, discarding the
// current grid first. Used by scripted scenarios.
func (p *Pool) SetGrid(defs ...*CardDef) []*CardInstance {
	p.DiscardGrid()
	for _, def := range defs {
		p.Grid = append(p.Grid, p.newInstance(def))
	}
	return p.Grid
}

// Stack puts fresh instances of defs on top of the deck so the next draw
// returns defs[0] first. The defs also join the composition.
func (p *Pool) Stack(defs ...*CardDef) {
	for i := len(defs) - 1; i >= 0; i-- {
		p.Deck = append(p.Deck, p.newInstance(defs[i]))
		p.composition = append(p.composition, defs[i])
	}
}
