package models

// Todo is one entry in the app-global to-do ledger. NotifID is set exactly
// while the item has a live, in-the-future scheduled reminder; a completed
// item never carries one.
type Todo struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Done    bool   `json:"done"`
	Date    string `json:"date"`
	Time    string `json:"time,omitempty"`
	Notes   string `json:"notes,omitempty"`
	NotifID string `json:"notifId,omitempty"`
}
