package model

// HistoryLimit caps the per-user conversation history. Oldest turns are
// evicted first.
const HistoryLimit = 20

// ChatTurn is one entry of the bounded per-user conversation history
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// User is the persisted telegram account record
type User struct {
	ID        int64  `json:"id" bson:"_id"`
	Username  string `json:"username,omitempty" bson:"username,omitempty"`
	FullName  string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	FirstSeen int64  `json:"firstSeen" bson:"firstSeen"`
	LastSeen  int64  `json:"lastSeen" bson:"lastSeen"`
}
