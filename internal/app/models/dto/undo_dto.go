package dto

// UndoResponse reports what an undo reversed and what it would reverse next
type UndoResponse struct {
	Undone    string `json:"undone" example:"Assign instrument #3 to Jordan Reed"`
	Remaining int    `json:"remaining" example:"2"`
	Next      string `json:"next,omitempty"`
}
