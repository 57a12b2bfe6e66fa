package http

import (
	"github.com/yatube/backend/post"
)

type FormChoice struct {
	Value *int64 `json:"value"`
	Label string `json:"label"`
}

type FormField struct {
	Type      string       `json:"type"`
	Widget    string       `json:"widget"`
	Label     string       `json:"label"`
	HelpText  string       `json:"help_text,omitempty"`
	Required  bool         `json:"required"`
	MaxLength int          `json:"max_length,omitempty"`
	Choices   []FormChoice `json:"choices,omitempty"`
	Initial   any          `json:"initial"`
}

type Form struct {
	Fields map[string]FormField `json:"fields"`
}

const emptyChoiceLabel = "---------"

// newPostForm describes the post form. initial is nil for a new post.
func newPostForm(groups []post.Group, limits post.Limits, initial *post.Post) Form {
	choices := []FormChoice{{Value: nil, Label: emptyChoiceLabel}}
	for _, g := range groups {
		id := g.ID
		choices = append(choices, FormChoice{Value: &id, Label: g.Title})
	}

	text := FormField{
		Type:      "CharField",
		Widget:    "Textarea",
		Label:     "Текст",
		HelpText:  "Текст нового поста",
		Required:  true,
		MaxLength: limits.MaxTextLength,
	}
	group := FormField{
		Type:     "ModelChoiceField",
		Widget:   "Select",
		Label:    "Группа",
		HelpText: "Группа, к которой будет относиться пост",
		Choices:  choices,
	}
	image := FormField{
		Type:   "ImageField",
		Widget: "ClearableFileInput",
		Label:  "Картинка",
	}

	if initial != nil {
		text.Initial = initial.Text
		if initial.Group != nil {
			group.Initial = initial.Group.ID
		}
		if initial.ImageURL != "" {
			image.Initial = initial.ImageURL
		}
	}

	return Form{Fields: map[string]FormField{
		"text":  text,
		"group": group,
		"image": image,
	}}
}
