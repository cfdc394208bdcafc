package ports

// IngestEvent is broadcast to the websocket room that started an ingest.
type IngestEvent struct {
	RoomID  string `json:"-"`
	GroupID int    `json:"groupId"`
	Stage   string `json:"stage"` // "transcript", "chunking", "embedding", "done", "error"
	Detail  string `json:"detail,omitempty"`
	Chunk   int    `json:"chunk,omitempty"`
	Total   int    `json:"total,omitempty"`
}
