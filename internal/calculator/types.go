package calculator

import "time"

// CreateSessionRequest is the optional JSON body for POST /calculator/sessions.
type CreateSessionRequest struct {
	Layout    string `json:"layout,omitempty"`     // "default" or "wide"
	MaxLength int    `json:"max_length,omitempty"` // overrides the layout limit
}

// SessionResponse describes a keypad session.
type SessionResponse struct {
	ID        string `json:"id"`
	Display   string `json:"display"`
	State     string `json:"state"`
	Depth     int    `json:"depth"`
	MaxLength int    `json:"max_length"`
}

// KeysRequest is the JSON body for key presses. Either Keys or Script is used;
// Script wins when both are set.
type KeysRequest struct {
	Keys      []string `json:"keys,omitempty"`   // e.g. ["12", "+", "3", "="]
	Script    string   `json:"script,omitempty"` // e.g. "12 + 3 ="
	Layout    string   `json:"layout,omitempty"`
	MaxLength int      `json:"max_length,omitempty"` // POST /calculator/evaluate only
}

// StepResult records the display after one key.
type StepResult struct {
	Key     string `json:"key"`
	Display string `json:"display"`
	State   string `json:"state"`
	Error   string `json:"error,omitempty"`
}

// KeysResponse is the JSON response for key presses and evaluations.
type KeysResponse struct {
	ID      string       `json:"id,omitempty"`
	Display string       `json:"display"`
	State   string       `json:"state"`
	Depth   int          `json:"depth"`
	Steps   []StepResult `json:"steps"`
	Error   string       `json:"error,omitempty"` // last arithmetic error in the batch
}

// TapeEntry is one completed calculation.
type TapeEntry struct {
	Seq        int64     `json:"seq"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	CreatedAt  time.Time `json:"created_at"`
}

// TapeResponse is the JSON response for GET /calculator/sessions/{id}/tape.
type TapeResponse struct {
	ID      string      `json:"id"`
	Entries []TapeEntry `json:"entries"`
}
