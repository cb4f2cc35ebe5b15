package domain

import "time"

// CookClass is the professional rank of a cook.
type CookClass string

// Cook ranks, lowest to highest.
const (
	CookClassThird    CookClass = "C cook"
	CookClassSecond   CookClass = "B cook"
	CookClassFirst    CookClass = "A cook"
	CookClassSousChef CookClass = "sous chef"
	CookClassChef     CookClass = "chef"
)

var cookClasses = []CookClass{
	CookClassThird, CookClassSecond, CookClassFirst, CookClassSousChef, CookClassChef,
}

// Valid reports whether c is a known rank.
func (c CookClass) Valid() bool {
	for _, k := range cookClasses {
		if c == k {
			return true
		}
	}
	return false
}

// CookClassNames lists the known ranks, lowest first.
func CookClassNames() []string {
	names := make([]string, len(cookClasses))
	for i, k := range cookClasses {
		names[i] = string(k)
	}
	return names
}

// Cook is a contestant. Any cook may also sit on a judging panel.
type Cook struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	BirthDate         time.Time `json:"birth_date"`
	Phone             string    `json:"phone,omitempty"`
	YearsOfExperience int       `json:"years_of_experience"`
	Class             CookClass `json:"class"`
	CuisineIDs        []int64   `json:"cuisine_ids"` // Cuisines the cook is qualified for
}

// FullName returns "First Last".
func (c *Cook) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// AgeAt returns the cook's age in whole years on the given day.
func (c *Cook) AgeAt(now time.Time) int {
	if c.BirthDate.IsZero() {
		return 0
	}
	age := now.Year() - c.BirthDate.Year()
	if now.YearDay() < c.BirthDate.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// QualifiedFor reports whether the cook may cook the given cuisine.
func (c *Cook) QualifiedFor(cuisineID int64) bool {
	for _, id := range c.CuisineIDs {
		if id == cuisineID {
			return true
		}
	}
	return false
}

// CookStats holds a cook's episode history.
type CookStats struct {
	CookAppearances  int `json:"cook_appearances"`
	JudgeAppearances int `json:"judge_appearances"`
	Wins             int `json:"wins"`
}
