package member

import "time"

// AgeCategory is a competition age band.
type AgeCategory struct {
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

// AgeCategories holds the federation bands, youngest first.
var AgeCategories = []AgeCategory{
	{Name: "Cadets", MinAge: 4, MaxAge: 11},
	{Name: "Children", MinAge: 12, MaxAge: 14},
	{Name: "Juniors", MinAge: 15, MaxAge: 17},
	{Name: "Youth", MinAge: 18, MaxAge: 21},
	{Name: "Seniors", MinAge: 22, MaxAge: 99},
}

// Age computes full years between birthDate and today.
func Age(birthDate, today time.Time) int {
	age := today.Year() - birthDate.Year()
	if today.Month() < birthDate.Month() ||
		(today.Month() == birthDate.Month() && today.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeCategoryFor places a birth date into its band; ok is false when the
// date is missing or the age falls outside every band.
func AgeCategoryFor(birthDate, today time.Time) (AgeCategory, bool) {
	if birthDate.IsZero() {
		return AgeCategory{}, false
	}
	age := Age(birthDate, today)
	for _, cat := range AgeCategories {
		if age >= cat.MinAge && age <= cat.MaxAge {
			return cat, true
		}
	}
	return AgeCategory{}, false
}
