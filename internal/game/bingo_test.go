package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Filler rows that never complete a line with each other or with any
// first row used below.
var fillerRows = []string{"EWEW", "WEWE", "EWEW"}

func gridWithFirstRow(t *testing.T, row string) []*CardInstance {
	t.Helper()
	p := fixedPool(t, gridDefs(t, append([]string{row}, fillerRows...)...)...)
	return p.Grid
}

func TestCheckBingos_ElementRow(t *testing.T) {
	grid := gridWithFirstRow(t, "FFFF")
	got := CheckBingos(grid)

	require.Len(t, got, 1)
	assert.Equal(t, BingoElement, got[0].Kind)
	assert.Equal(t, ElementFire, got[0].Element)
	assert.Equal(t, "Row 1", got[0].Line)
	assert.Equal(t, []int{0, 1, 2, 3}, got[0].Indices)
	for i, id := range got[0].Members {
		assert.Equal(t, grid[i].InstanceID, id)
	}
}

func TestCheckBingos_HarmonyRow(t *testing.T) {
	for _, row := range []string{"FEWN", "NWEF", "EFNW"} {
		got := CheckBingos(gridWithFirstRow(t, row))
		require.Len(t, got, 1, row)
		assert.Equal(t, BingoHarmony, got[0].Kind, row)
		assert.Equal(t, "Harmony", got[0].Label())
	}
}

func TestCheckBingos_PartialMixScoresNothing(t *testing.T) {
	assert.Empty(t, CheckBingos(gridWithFirstRow(t, "FFEN")))
	assert.Empty(t, CheckBingos(gridWithFirstRow(t, "FFWW")))
}

func TestCheckBingos_AllFire(t *testing.T) {
	p := fixedPool(t, repeat(BasicCard(ElementFire), 16)...)
	got := CheckBingos(p.Grid)

	require.Len(t, got, 10)
	for _, b := range got {
		assert.Equal(t, BingoElement, b.Kind)
		assert.Equal(t, ElementFire, b.Element)
	}
}

func TestCheckBingos_ColumnsAndDiagonals(t *testing.T) {
	p := fixedPool(t, gridDefs(t, "FEWN", "FEWN", "FEWN", "FEWN")...)
	got := CheckBingos(p.Grid)

	var lines []string
	harmony := 0
	for _, b := range got {
		lines = append(lines, b.Line)
		if b.Kind == BingoHarmony {
			harmony++
		}
	}
	// 4 uniform columns, 4 harmony rows, both diagonals harmony.
	assert.Len(t, got, 10)
	assert.Equal(t, 6, harmony)
	assert.Contains(t, lines, "Column 3")
	assert.Contains(t, lines, "Diagonal")
	assert.Contains(t, lines, "Anti-diagonal")
}

func TestCheckBingos_ShortGrid(t *testing.T) {
	p := fixedPool(t, repeat(BasicCard(ElementWind), 6)...)
	got := CheckBingos(p.Grid)
	require.Len(t, got, 1)
	assert.Equal(t, "Row 1", got[0].Line)
	assert.Equal(t, ElementWind, got[0].Element)
}

func TestCheckBingos_TransformedCardsCount(t *testing.T) {
	p := fixedPool(t, gridDefs(t, append([]string{"FFFW"}, fillerRows...)...)...)
	require.Empty(t, CheckBingos(p.Grid))

	require.True(t, p.TransformCard(3, ElementFire))
	got := CheckBingos(p.Grid)
	require.Len(t, got, 1)
	assert.True(t, got[0].Includes(p.Grid[3].InstanceID))
}
