package member

// Belt ranks, in promotion order. Poom ranks are the under-15 black-belt
// track; Dan ranks the adult one.
const (
	BeltWhite  = "White"
	BeltYellow = "Yellow"
	BeltGreen  = "Green"
	BeltBlue   = "Blue"
	BeltRed    = "Red"
	BeltPoom1  = "Poom 1"
	BeltPoom2  = "Poom 2"
	BeltPoom3  = "Poom 3"
	BeltPoom4  = "Poom 4"
	BeltDan1   = "Dan 1"
	BeltDan2   = "Dan 2"
	BeltDan3   = "Dan 3"
	BeltDan4   = "Dan 4"
	BeltDan5   = "Dan 5"
)

// Belts lists all known ranks in order.
var Belts = []string{
	BeltWhite, BeltYellow, BeltGreen, BeltBlue, BeltRed,
	BeltPoom1, BeltPoom2, BeltPoom3, BeltPoom4,
	BeltDan1, BeltDan2, BeltDan3, BeltDan4, BeltDan5,
}

// BeltRule maps a rank to the one that follows it and the minimum holding
// period in months. Loaded once, never mutated at runtime.
type BeltRule struct {
	Next   string
	Months int
}

var beltRules = map[string]BeltRule{
	BeltWhite:  {Next: BeltYellow, Months: 2},
	BeltYellow: {Next: BeltGreen, Months: 3},
	BeltGreen:  {Next: BeltBlue, Months: 4},
	BeltBlue:   {Next: BeltRed, Months: 6},
	BeltRed:    {Next: BeltPoom1, Months: 9},
	BeltPoom1:  {Next: BeltPoom2, Months: 12},
	BeltPoom2:  {Next: BeltPoom3, Months: 24},
	BeltPoom3:  {Next: BeltPoom4, Months: 36},
	BeltDan1:   {Next: BeltDan2, Months: 12},
	BeltDan2:   {Next: BeltDan3, Months: 24},
	BeltDan3:   {Next: BeltDan4, Months: 36},
	BeltDan4:   {Next: BeltDan5, Months: 48},
	// Poom 4 and Dan 5 are terminal: no rule, no promotion alert.
}

// BeltRuleFor returns the promotion rule for a rank; ok is false for unknown
// or terminal ranks.
func BeltRuleFor(belt string) (BeltRule, bool) {
	rule, ok := beltRules[belt]
	return rule, ok
}

// KnownBelt reports whether belt is one of the ranks in the sequence.
func KnownBelt(belt string) bool {
	for _, b := range Belts {
		if b == belt {
			return true
		}
	}
	return false
}
