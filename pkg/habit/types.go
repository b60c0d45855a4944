package habit

// Habit is a single trackable item. Only Done changes after creation.
type Habit struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt int64  `json:"createdAt"` // unix millis
}

type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// State is what a presentation layer renders: the ordered list, newest
// first, plus its progress.
type State struct {
	Habits   []Habit  `json:"habits"`
	Progress Progress `json:"progress"`
}

func ProgressOf(habits []Habit) Progress {
	p := Progress{Total: len(habits)}
	for i := range habits {
		if habits[i].Done {
			p.Completed++
		}
	}
	return p
}
