package models

import "time"

type Message struct {
	ID         string    `json:"id"`
	GrupoID    string    `json:"grupoId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}
