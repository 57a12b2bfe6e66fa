package post_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/post"
	"github.com/yatube/backend/sqliterepo"
	"github.com/yatube/backend/user"
)

type memImages struct {
	mu   sync.Mutex
	keys []string
}

func (m *memImages) PutImage(ctx context.Context, key string, contentType string, content []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
	return "/media/" + key, nil
}

type recordedEvent struct {
	edited bool
	postID int64
}

type memEvents struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (m *memEvents) PublishPostCreated(ctx context.Context, p *post.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{postID: p.ID})
	return m.err
}

func (m *memEvents) PublishPostEdited(ctx context.Context, p *post.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{edited: true, postID: p.ID})
	return m.err
}

type fixture struct {
	srvc   *post.PostSrvc
	users  *user.UserSrvc
	images *memImages
	events *memEvents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqliterepo.Open(sqliterepo.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := user.NewUserService(sqliterepo.NewUserRepo(db))
	images := &memImages{}
	events := &memEvents{}
	srvc := post.NewPostService(
		sqliterepo.NewPostRepo(db),
		sqliterepo.NewGroupRepo(db),
		users,
		images,
		events,
		post.DefaultSrvcConfig(),
	)
	return &fixture{srvc: srvc, users: users, images: images, events: events}
}

func (f *fixture) createUser(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), user.CreateUserParams{
		Username: username,
		Email:    uuid.NewString() + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) createGroup(t *testing.T, slug string) *post.Group {
	t.Helper()
	g, err := f.srvc.CreateGroup(context.Background(), post.CreateGroupParams{
		Title:       "Тестовая группа",
		Slug:        slug,
		Description: "Тестовое описание",
	})
	require.NoError(t, err)
	return g
}

func (f *fixture) createPost(t *testing.T, author *user.User, groupID *int64) *post.Post {
	t.Helper()
	p, err := f.srvc.CreatePost(context.Background(), post.CreatePostParams{
		AuthorUUID: author.UUID,
		Text:       "Тестовый текст",
		GroupID:    groupID,
	})
	require.NoError(t, err)
	return p
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	author := f.createUser(t, "Name")
	group := f.createGroup(t, "test-slug")

	created, err := f.srvc.CreatePost(context.Background(), post.CreatePostParams{
		AuthorUUID: author.UUID,
		Text:       "  Тестовый текст\n",
		GroupID:    &group.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Тестовый текст", created.Text)
	assert.Equal(t, "Name", created.Author.Username)
	require.NotNil(t, created.Group)
	assert.Equal(t, "test-slug", created.Group.Slug)
	assert.WithinDuration(t, time.Now(), created.PubDate, time.Minute)

	got, err := f.srvc.GetPost(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	assert.Equal(t, []recordedEvent{{postID: 1}}, f.events.events)
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	author := f.createUser(t, "Name")
	missingGroup := int64(99)

	testCases := []struct {
		name    string
		params  post.CreatePostParams
		wantErr error
	}{
		{
			name:    "empty text",
			params:  post.CreatePostParams{AuthorUUID: author.UUID, Text: "   "},
			wantErr: post.ErrTextRequired,
		},
		{
			name:    "text too long",
			params:  post.CreatePostParams{AuthorUUID: author.UUID, Text: strings.Repeat("a", 2049)},
			wantErr: post.ErrTextTooLong,
		},
		{
			name:    "word too long",
			params:  post.CreatePostParams{AuthorUUID: author.UUID, Text: strings.Repeat("b", 129) + " short"},
			wantErr: post.ErrWordTooLong,
		},
		{
			name: "length wins over word",
			params: post.CreatePostParams{
				AuthorUUID: author.UUID,
				Text:       strings.Repeat("a", 2050) + " " + strings.Repeat("b", 200),
			},
			wantErr: post.ErrTextTooLong,
		},
		{
			name:    "unknown group",
			params:  post.CreatePostParams{AuthorUUID: author.UUID, Text: "ok", GroupID: &missingGroup},
			wantErr: post.ErrInvalidGroupChoice,
		},
		{
			name:    "unknown author",
			params:  post.CreatePostParams{AuthorUUID: uuid.New(), Text: "ok"},
			wantErr: user.ErrUserNotFound,
		},
		{
			name:    "not an image",
			params:  post.CreatePostParams{AuthorUUID: author.UUID, Text: "ok", Image: []byte("hello")},
			wantErr: post.ErrInvalidImage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.srvc.CreatePost(context.Background(), tc.params)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}

	count, err := f.srvc.CountAuthorPosts(context.Background(), author.UUID)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "invalid posts must not be stored")
	assert.Empty(t, f.events.events)
}

func TestCreatePostWithImage(t *testing.T) {
	f := newFixture(t)
	author := f.createUser(t, "Name")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	created, err := f.srvc.CreatePost(context.Background(), post.CreatePostParams{
		AuthorUUID: author.UUID,
		Text:       "с картинкой",
		Image:      buf.Bytes(),
	})
	require.NoError(t, err)
	require.Len(t, f.images.keys, 1)
	assert.True(t, strings.HasPrefix(f.images.keys[0], "posts/"))
	assert.Equal(t, "/media/"+f.images.keys[0], created.ImageURL)
}

type failingWrites struct {
	post.PostRepo
}

func (failingWrites) InsertPost(ctx context.Context, rec post.PostRecord) (int64, error) {
	return 0, errors.New("disk full")
}

func (failingWrites) UpdatePost(ctx context.Context, rec post.PostRecord) error {
	return errors.New("disk full")
}

func TestFailedSaveLogsStoredImage(t *testing.T) {
	db, err := sqliterepo.Open(sqliterepo.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := user.NewUserService(sqliterepo.NewUserRepo(db))
	posts := sqliterepo.NewPostRepo(db)
	images := &memImages{}
	srvc := post.NewPostService(failingWrites{posts}, sqliterepo.NewGroupRepo(db), users, images, nil, post.DefaultSrvcConfig())

	author, err := users.CreateUser(context.Background(), user.CreateUserParams{
		Username: "Name",
		Email:    "name@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	postID, err := posts.InsertPost(context.Background(), post.PostRecord{
		Text:       "old",
		PubDate:    time.Now().UTC(),
		AuthorUUID: author.UUID,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	img := buf.Bytes()

	var logs bytes.Buffer
	ctx := logger.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	_, err = srvc.CreatePost(ctx, post.CreatePostParams{AuthorUUID: author.UUID, Text: "ok", Image: img})
	require.Error(t, err)
	assert.False(t, errors.Is(err, post.ErrInvalidImage))
	require.Len(t, images.keys, 1)
	assert.Contains(t, logs.String(), "/media/"+images.keys[0])

	_, err = srvc.EditPost(ctx, post.EditPostParams{PostID: postID, EditorUUID: author.UUID, Text: "new", Image: img})
	require.Error(t, err)
	require.Len(t, images.keys, 2)
	assert.Contains(t, logs.String(), "/media/"+images.keys[1])
	assert.Contains(t, logs.String(), "level=WARN")

	// no upload, nothing to report
	logs.Reset()
	_, err = srvc.CreatePost(ctx, post.CreatePostParams{AuthorUUID: author.UUID, Text: "ok"})
	require.Error(t, err)
	assert.Empty(t, logs.String())
}

func TestCreatePostPublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	author := f.createUser(t, "Name")

	_, err := f.srvc.CreatePost(context.Background(), post.CreatePostParams{AuthorUUID: author.UUID, Text: "ok"})
	assert.NoError(t, err)
}

func TestEditPost(t *testing.T) {
	f := newFixture(t)
	author := f.createUser(t, "Name")
	other := f.createUser(t, "Other")
	group := f.createGroup(t, "test-slug")
	created := f.createPost(t, author, nil)

	t.Run("author edits", func(t *testing.T) {
		edited, err := f.srvc.EditPost(context.Background(), post.EditPostParams{
			PostID:     created.ID,
			EditorUUID: author.UUID,
			Text:       "Новый текст",
			GroupID:    &group.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Новый текст", edited.Text)
		require.NotNil(t, edited.Group)
		assert.Equal(t, group.ID, edited.Group.ID)
		assert.True(t, created.PubDate.Equal(edited.PubDate), "pub_date must not change")

		got, err := f.srvc.GetPost(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Новый текст", got.Text)
	})

	t.Run("group can be removed", func(t *testing.T) {
		edited, err := f.srvc.EditPost(context.Background(), post.EditPostParams{
			PostID: created.ID, EditorUUID: author.UUID, Text: "Без группы",
		})
		require.NoError(t, err)
		assert.Nil(t, edited.Group)
	})

	t.Run("other user may not edit", func(t *testing.T) {
		_, err := f.srvc.EditPost(context.Background(), post.EditPostParams{
			PostID: created.ID, EditorUUID: other.UUID, Text: "чужой",
		})
		assert.True(t, errors.Is(err, post.ErrNotPostAuthor))

		_, err = f.srvc.GetPostForEdit(context.Background(), created.ID, other.UUID)
		assert.True(t, errors.Is(err, post.ErrNotPostAuthor))

		got, err := f.srvc.GetPost(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Без группы", got.Text)
	})

	t.Run("validation applies on edit", func(t *testing.T) {
		_, err := f.srvc.EditPost(context.Background(), post.EditPostParams{
			PostID: created.ID, EditorUUID: author.UUID, Text: strings.Repeat("b", 129),
		})
		assert.True(t, errors.Is(err, post.ErrWordTooLong))
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.srvc.EditPost(context.Background(), post.EditPostParams{
			PostID: 404, EditorUUID: author.UUID, Text: "x",
		})
		assert.True(t, errors.Is(err, post.ErrPostNotFound))
	})

	assert.Equal(t, []recordedEvent{{postID: 1}, {edited: true, postID: 1}, {edited: true, postID: 1}}, f.events.events)
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	author := f.createUser(t, "Name")
	other := f.createUser(t, "Test")
	group := f.createGroup(t, "test-slug")
	f.createGroup(t, "empty")

	for i := 0; i < 13; i++ {
		var groupID *int64
		if i%2 == 0 {
			groupID = &group.ID
		}
		f.createPost(t, author, groupID)
	}
	f.createPost(t, other, nil)

	t.Run("index", func(t *testing.T) {
		page, err := f.srvc.ListIndex(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, page.Posts, 10)
		assert.Equal(t, 14, page.Count)
		assert.Equal(t, 2, page.NumPages)
		assert.True(t, page.HasNext)
		assert.False(t, page.HasPrevious)
		assert.Equal(t, int64(14), page.Posts[0].ID, "newest first")

		page, err = f.srvc.ListIndex(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, page.Posts, 4)
		assert.Equal(t, int64(1), page.Posts[3].ID)

		page, err = f.srvc.ListIndex(context.Background(), 50)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Number)
	})

	t.Run("group", func(t *testing.T) {
		g, page, err := f.srvc.ListGroupPosts(context.Background(), "test-slug", 1)
		require.NoError(t, err)
		assert.Equal(t, group.ID, g.ID)
		assert.Equal(t, 7, page.Count)
		for _, p := range page.Posts {
			require.NotNil(t, p.Group)
			assert.Equal(t, "test-slug", p.Group.Slug)
		}

		_, page, err = f.srvc.ListGroupPosts(context.Background(), "empty", 1)
		require.NoError(t, err)
		assert.Empty(t, page.Posts)
		assert.Equal(t, 1, page.NumPages)

		_, _, err = f.srvc.ListGroupPosts(context.Background(), "missing", 1)
		assert.True(t, errors.Is(err, post.ErrGroupNotFound))
	})

	t.Run("profile", func(t *testing.T) {
		a, page, err := f.srvc.ListProfilePosts(context.Background(), "Test", 1)
		require.NoError(t, err)
		assert.Equal(t, "Test", a.Username)
		assert.Equal(t, 1, page.Count)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, "Test", page.Posts[0].Author.Username)

		_, page, err = f.srvc.ListProfilePosts(context.Background(), "Name", 2)
		require.NoError(t, err)
		assert.Equal(t, 13, page.Count)
		assert.Len(t, page.Posts, 3)

		_, _, err = f.srvc.ListProfilePosts(context.Background(), "nobody", 1)
		assert.True(t, errors.Is(err, user.ErrUserNotFound))
	})

	t.Run("count", func(t *testing.T) {
		count, err := f.srvc.CountAuthorPosts(context.Background(), author.UUID)
		require.NoError(t, err)
		assert.Equal(t, 13, count)
	})
}

func TestEmptyIndex(t *testing.T) {
	f := newFixture(t)

	page, err := f.srvc.ListIndex(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.Equal(t, 0, page.Count)
}

func TestGroups(t *testing.T) {
	f := newFixture(t)
	f.createGroup(t, "test-slug")

	_, err := f.srvc.CreateGroup(context.Background(), post.CreateGroupParams{Title: "Дубль", Slug: "test-slug"})
	assert.True(t, errors.Is(err, post.ErrGroupSlugExists))

	_, err = f.srvc.CreateGroup(context.Background(), post.CreateGroupParams{Title: "Плохой", Slug: "bad slug"})
	assert.Error(t, err)

	_, err = f.srvc.CreateGroup(context.Background(), post.CreateGroupParams{Title: "", Slug: "no-title"})
	assert.Error(t, err)

	_, err = f.srvc.CreateGroup(context.Background(), post.CreateGroupParams{Title: strings.Repeat("т", 201), Slug: "long"})
	assert.Error(t, err)

	g, err := f.srvc.GetGroupBySlug(context.Background(), "test-slug")
	require.NoError(t, err)
	assert.Equal(t, "Тестовая группа", g.Title)

	_, err = f.srvc.GetGroupBySlug(context.Background(), "missing")
	assert.True(t, errors.Is(err, post.ErrGroupNotFound))

	groups, err := f.srvc.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}
