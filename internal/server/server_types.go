package server

type AddHabitRequest struct {
	Text string `json:"text"`
}

type ToggleHabitRequest struct {
	Done *bool `json:"done"`
}
