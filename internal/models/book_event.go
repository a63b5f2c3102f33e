package models

// Book event operations.
const (
	BookCreated = "created"
	BookUpdated = "updated"
	BookDeleted = "deleted"
)

// BookEvent describes a change to the catalog published to the message broker.
type BookEvent struct {
	EventID   string `json:"event_id"`           // Unique identifier of the event
	Timestamp int64  `json:"timestamp"`          // Unix time (seconds) of the change
	BookUID   string `json:"book_uid"`           // Affected book
	UserUID   string `json:"user_uid,omitempty"` // Owner of the book, if any
	Operation string `json:"operation"`          // One of created, updated, deleted
}
