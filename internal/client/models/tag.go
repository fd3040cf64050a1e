package models

const DefaultTagColor = "#6B7280"

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TagCreate struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Message is the acknowledgement body some delete endpoints return.
type Message struct {
	Message string `json:"message"`
}
