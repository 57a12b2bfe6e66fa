// Package postevents publishes post lifecycle events to a message broker.
package postevents

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yatube/backend/post"
)

const (
	SubjectPostCreated = "post.created"
	SubjectPostEdited  = "post.edited"
)

type PostEvent struct {
	Type           string    `json:"type"`
	ID             int64     `json:"id"`
	AuthorUUID     string    `json:"author_uuid"`
	AuthorUsername string    `json:"author_username"`
	GroupSlug      *string   `json:"group_slug"`
	Text           string    `json:"text"`
	ImageURL       string    `json:"image_url,omitempty"`
	PubDate        time.Time `json:"pub_date"`
}

func newPostEvent(eventType string, p *post.Post) PostEvent {
	ev := PostEvent{
		Type:           eventType,
		ID:             p.ID,
		AuthorUUID:     p.Author.UUID.String(),
		AuthorUsername: p.Author.Username,
		Text:           p.Text,
		ImageURL:       p.ImageURL,
		PubDate:        p.PubDate,
	}
	if p.Group != nil {
		slug := p.Group.Slug
		ev.GroupSlug = &slug
	}
	return ev
}

func marshalEvent(eventType string, p *post.Post) ([]byte, error) {
	data, err := json.Marshal(newPostEvent(eventType, p))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return data, nil
}
