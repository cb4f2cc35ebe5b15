package domain

// Assignment is one cooking slot of an episode: a cook preparing a recipe of a cuisine,
// scored by the three judges.
type Assignment struct {
	CuisineID int64  `json:"cuisine_id"`
	CookID    int64  `json:"cook_id"`
	RecipeID  int64  `json:"recipe_id"`
	Grades    [3]int `json:"grades"` // One grade per judge position, each in 1..5
}

// AverageGrade returns the mean of the three grades.
func (a Assignment) AverageGrade() float64 {
	sum := 0
	for _, g := range a.Grades {
		sum += g
	}
	return float64(sum) / float64(len(a.Grades))
}

// JudgeSeat places a cook on the judging panel.
type JudgeSeat struct {
	CookID   int64 `json:"cook_id"`
	Position int   `json:"position"` // 1-based
}

// Episode is one filmed episode of the competition.
type Episode struct {
	ID          int64        `json:"id"`      // Sequential across all years
	Year        int          `json:"year"`    // Year filmed
	Ordinal     int          `json:"ordinal"` // Episode within the year, 1-based
	Assignments []Assignment `json:"assignments"`
	Judges      []JudgeSeat  `json:"judges"`
}

// CookIDs returns the cooks of the episode in slot order.
func (e *Episode) CookIDs() []int64 {
	ids := make([]int64, len(e.Assignments))
	for i, a := range e.Assignments {
		ids[i] = a.CookID
	}
	return ids
}

// WinnerSlot returns the index of the assignment with the highest average grade.
// Ties go to the earliest slot. Returns -1 for an empty episode.
func (e *Episode) WinnerSlot() int {
	best := -1
	for i, a := range e.Assignments {
		if best < 0 || a.AverageGrade() > e.Assignments[best].AverageGrade() {
			best = i
		}
	}
	return best
}

// EpisodeSummary is the list view of an episode.
type EpisodeSummary struct {
	ID      int64 `json:"id"`
	Year    int   `json:"year"`
	Ordinal int   `json:"ordinal"`
}

// FeaturedItem is an assignment joined with display names.
type FeaturedItem struct {
	CuisineID    int64   `json:"cuisine_id"`
	CuisineName  string  `json:"cuisine_name"`
	RecipeID     int64   `json:"recipe_id"`
	RecipeName   string  `json:"recipe_name"`
	CookID       int64   `json:"cook_id"`
	CookName     string  `json:"cook_name"`
	Grades       [3]int  `json:"grades"`
	AverageGrade float64 `json:"average_grade"`
	Winner       bool    `json:"winner"`
}

// PanelJudge is a judge seat joined with the judge's name.
type PanelJudge struct {
	CookID   int64  `json:"cook_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// EpisodeDetail is the full read view of an episode.
type EpisodeDetail struct {
	EpisodeSummary
	Featured []FeaturedItem `json:"featured"`
	Judges   []PanelJudge   `json:"judges"`
}
