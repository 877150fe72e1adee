package position

import (
	"github.com/weedbox/casinotable/util"
)

type Position struct{}

func NewPosition() Position {
	return Position{}
}

// PlayerPositionMap 以 Dealer 為基準為每位玩家標上位置
//   - @param playerCount seated players in turn order
//   - @param dealerIdx index of the button
//   - @return player index => position labels
func (pos Position) PlayerPositionMap(playerCount int, dealerIdx int) map[int][]string {
	positionMap := make(map[int][]string)
	if playerCount == 0 || dealerIdx == util.UnsetValue {
		return positionMap
	}

	order := util.RotateIntArray(util.Sequence(playerCount), dealerIdx)
	positions := pos.newPositions(playerCount)
	for idx, playerIdx := range order {
		positionMap[playerIdx] = positions[idx]
	}

	return positionMap
}

// newPositions lists labels clockwise from the button. Heads-up the button posts the big blind.
func (pos Position) newPositions(playerCount int) [][]string {
	switch playerCount {
	case 1:
		return [][]string{
			{util.Position_Dealer},
		}
	case 2:
		return [][]string{
			{util.Position_Dealer, util.Position_BB},
			{util.Position_SB},
		}
	case 3:
		return [][]string{
			{util.Position_Dealer},
			{util.Position_SB},
			{util.Position_BB},
		}
	case 4:
		return [][]string{
			{util.Position_Dealer},
			{util.Position_SB},
			{util.Position_BB},
			{util.Position_UG},
		}
	case 5:
		return [][]string{
			{util.Position_Dealer},
			{util.Position_SB},
			{util.Position_BB},
			{util.Position_UG},
			{util.Position_CO},
		}
	case 6:
		return [][]string{
			{util.Position_Dealer},
			{util.Position_SB},
			{util.Position_BB},
			{util.Position_UG},
			{util.Position_HJ},
			{util.Position_CO},
		}
	}

	labels := make([][]string, playerCount)
	for i := range labels {
		labels[i] = []string{util.Position_Unknown}
	}
	return labels
}
