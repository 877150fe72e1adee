package util

const (
	// General
	UnsetValue = -1

	// Position
	Position_Unknown = "unknown"
	Position_Dealer  = "dealer"
	Position_SB      = "sb"
	Position_BB      = "bb"
	Position_UG      = "ug"
	Position_UG1     = "ug1"
	Position_HJ      = "hj"
	Position_CO      = "co"
)
