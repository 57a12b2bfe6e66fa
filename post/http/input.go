package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/yatube/backend/post"
)

type postInput struct {
	Text    string
	GroupID *int64
	Image   []byte
}

var errBadRequest = errors.New("bad request")

// parsePostInput reads a post form submitted as JSON, multipart or
// urlencoded form. An empty group means no group.
func (h *PostHttpHandler) parsePostInput(w http.ResponseWriter, r *http.Request) (*postInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var body struct {
			Text  string          `json:"text"`
			Group json.RawMessage `json:"group"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		groupID, err := parseJsonGroup(body.Group)
		if err != nil {
			return nil, err
		}
		return &postInput{Text: body.Text, GroupID: groupID}, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		in, err := formInput(r)
		if err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("image")
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		defer file.Close()
		in.Image, err = io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return in, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return formInput(r)
	}

	return nil, fmt.Errorf("%w: unsupported content type %q", errBadRequest, mediaType)
}

func formInput(r *http.Request) (*postInput, error) {
	groupID, err := parseGroupValue(r.FormValue("group"))
	if err != nil {
		return nil, err
	}
	return &postInput{Text: r.FormValue("text"), GroupID: groupID}, nil
}

// parseJsonGroup accepts null, a number or a numeric string.
func parseJsonGroup(raw json.RawMessage) (*int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return parseGroupValue(str)
	}
	return parseGroupValue(s)
}

func parseGroupValue(v string) (*int64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, post.ErrInvalidGroupChoice
	}
	return &id, nil
}
