package game

import "fmt"

// BingoResult is one completed line.
type BingoResult struct {
	Kind    BingoKind
	Element Element // set for Element bingos
	Line    string
	Indices []int
	Members []string // instance ids, in line order
}

func (b BingoResult) Label() string {
	if b.Kind == BingoHarmony {
		return "Harmony"
	}
	return b.Element.String()
}

// Includes reports whether an instance took part in the line.
func (b BingoResult) Includes(instanceID string) bool {
	for _, id := range b.Members {
		if id == instanceID {
			return true
		}
	}
	return false
}

type bingoLine struct {
	name    string
	indices [GridSide]int
}

// bingoLines are the 10 scoring lines: rows, columns, then both diagonals.
var bingoLines = buildBingoLines()

func buildBingoLines() []bingoLine {
	var lines []bingoLine
	for r := 0; r < GridSide; r++ {
		l := bingoLine{name: fmt.Sprintf("Row %d", r+1)}
		for c := 0; c < GridSide; c++ {
			l.indices[c] = r*GridSide + c
		}
		lines = append(lines, l)
	}
	for c := 0; c < GridSide; c++ {
		l := bingoLine{name: fmt.Sprintf("Column %d", c+1)}
		for r := 0; r < GridSide; r++ {
			l.indices[r] = r*GridSide + c
		}
		lines = append(lines, l)
	}
	diag := bingoLine{name: "Diagonal"}
	anti := bingoLine{name: "Anti-diagonal"}
	for i := 0; i < GridSide; i++ {
		diag.indices[i] = i*GridSide + i
		anti.indices[i] = i*GridSide + (GridSide - 1 - i)
	}
	return append(lines, diag, anti)
}

// CheckBingos scans the grid's lines. A uniform line is an Element bingo; a
// line holding all four elements is a Harmony bingo; anything else scores
// nothing. Lines that reach past a short grid are skipped.
func CheckBingos(grid []*CardInstance) []BingoResult {
	var results []BingoResult
	for _, line := range bingoLines {
		cards := make([]*CardInstance, 0, GridSide)
		for _, idx := range line.indices {
			if idx >= len(grid) || grid[idx] == nil {
				break
			}
			cards = append(cards, grid[idx])
		}
		if len(cards) < GridSide {
			continue
		}

		res := BingoResult{Line: line.name, Indices: line.indices[:]}
		for _, c := range cards {
			res.Members = append(res.Members, c.InstanceID)
		}

		if allSameElement(cards) {
			res.Kind = BingoElement
			res.Element = cards[0].Element
			results = append(results, res)
		} else if allElementsPresent(cards) {
			res.Kind = BingoHarmony
			results = append(results, res)
		}
	}
	return results
}

func allSameElement(cards []*CardInstance) bool {
	first := cards[0].Element
	if first == ElementNone {
		return false
	}
	for _, c := range cards[1:] {
		if c.Element != first {
			return false
		}
	}
	return true
}

func allElementsPresent(cards []*CardInstance) bool {
	seen := make(map[Element]bool, len(Elements))
	for _, c := range cards {
		seen[c.Element] = true
	}
	for _, e := range Elements {
		if !seen[e] {
			return false
		}
	}
	return true
}
