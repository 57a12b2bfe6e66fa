package http

import (
	"time"

	"github.com/yatube/backend/post"
)

type Group struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Author struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type Post struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Author  Author    `json:"author"`
	Group   *Group    `json:"group"`
	Image   *string   `json:"image"`
}

// PageObj mirrors a paginator page.
type PageObj struct {
	ObjectList         []Post `json:"object_list"`
	Number             int    `json:"number"`
	NumPages           int    `json:"num_pages"`
	Count              int    `json:"count"`
	HasNext            bool   `json:"has_next"`
	HasPrevious        bool   `json:"has_previous"`
	NextPageNumber     *int   `json:"next_page_number"`
	PreviousPageNumber *int   `json:"previous_page_number"`
}

func mapGroup(g *post.Group) *Group {
	if g == nil {
		return nil
	}
	return &Group{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

func mapAuthor(a post.Author) Author {
	return Author{
		UUID:     a.UUID.String(),
		Username: a.Username,
		FullName: a.FullName,
	}
}

func mapPost(p *post.Post) Post {
	var image *string
	if p.ImageURL != "" {
		url := p.ImageURL
		image = &url
	}
	return Post{
		ID:      p.ID,
		Text:    p.Text,
		PubDate: p.PubDate,
		Author:  mapAuthor(p.Author),
		Group:   mapGroup(p.Group),
		Image:   image,
	}
}

func mapPage(page *post.Page) PageObj {
	res := PageObj{
		ObjectList:  make([]Post, 0, len(page.Posts)),
		Number:      page.Number,
		NumPages:    page.NumPages,
		Count:       page.Count,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	}
	for _, p := range page.Posts {
		res.ObjectList = append(res.ObjectList, mapPost(p))
	}
	if page.HasNext {
		next := page.Number + 1
		res.NextPageNumber = &next
	}
	if page.HasPrevious {
		prev := page.Number - 1
		res.PreviousPageNumber = &prev
	}
	return res
}
