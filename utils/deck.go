package utils

import "strings"

// Suits and Values enumerate the 52-card deck in display order.
var Suits = []string{"Spades", "Hearts", "Clubs", "Diamonds"}

var Values = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// BonusPoints maps a card value to its workout bonus tier.
func BonusPoints(value string) int {
	switch value {
	case "2", "3", "4", "5":
		return 1
	case "6", "7", "8", "9", "10":
		return 2
	case "J", "Q", "K":
		return 3
	case "A":
		return 5
	default:
		return 0
	}
}

// CardName builds the display name shared by weekly_cards.card_name and
// workouts.card_used, e.g. "A of Spades".
func CardName(value, suit string) string {
	return value + " of " + suit
}

// ParseSuit extracts the suit from a card name. Returns "" when the name
// does not follow the "V of Suit" shape.
func ParseSuit(cardName string) string {
	_, suit, ok := strings.Cut(cardName, " of ")
	if !ok {
		return ""
	}
	return suit
}

func ValidSuit(s string) bool {
	for _, suit := range Suits {
		if s == suit {
			return true
		}
	}
	return false
}

func ValidValue(v string) bool {
	for _, value := range Values {
		if v == value {
			return true
		}
	}
	return false
}

func GetSuitIcon(s string) string {
	switch s {
	case "Spades":
		return "♠"
	case "Hearts":
		return "♥"
	case "Clubs":
		return "♣"
	case "Diamonds":
		return "♦"
	default:
		return ""
	}
}

func GetSuitColor(s string) string {
	switch s {
	case "Spades":
		return "#64748b"
	case "Hearts":
		return "#ef4444"
	case "Clubs":
		return "#22c55e"
	case "Diamonds":
		return "#3b82f6"
	default:
		return "#64748b"
	}
}

// GetSuitMeaning returns what kind of workout a suit stands for in the
// house rules.
func GetSuitMeaning(s string) string {
	switch s {
	case "Spades":
		return "Strength"
	case "Hearts":
		return "Cardio / Movement"
	case "Clubs":
		return "Wild (Any)"
	case "Diamonds":
		return "Group / Social"
	default:
		return ""
	}
}
