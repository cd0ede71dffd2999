package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"SampleBlog/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Username: "author", PasswordHash: "hash"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func TestPostRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	r := NewPostRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")

	draft, err := r.Create(ctx, &model.Post{Title: "draft", Text: "body", AuthorID: u.ID})
	assert.NoError(t, err)
	assert.NotZero(t, draft.ID)
	// Create возвращает пост с подгруженным автором
	assert.NotNil(t, draft.Author)
	assert.Equal(t, "author", draft.Author.Username)

	// черновик не виден без includeUnpublished
	_, err = r.GetByID(ctx, draft.ID, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := r.GetByID(ctx, draft.ID, true)
	assert.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	// отсутствующий id
	_, err = r.GetByID(ctx, 99999, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_PaginationAndOrdering(t *testing.T) {
	db := newTestDB(t)
	r := NewPostRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// пять опубликованных постов, publishedAt по возрастанию
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		_, err := r.Create(ctx, &model.Post{
			Title:       fmt.Sprintf("post-%d", i),
			Text:        "body",
			AuthorID:    u.ID,
			IsPublished: true,
			PublishedAt: &ts,
			CreatedAt:   base,
		})
		assert.NoError(t, err)
	}

	// страницы 2+2+1 без перекрытий, порядок убывающий
	var all []string
	for page := 1; page <= 3; page++ {
		posts, err := r.GetPublished(ctx, page, 2)
		assert.NoError(t, err)
		for _, p := range posts {
			all = append(all, p.Title)
		}
	}
	assert.Equal(t, []string{"post-4", "post-3", "post-2", "post-1", "post-0"}, all)

	published := true
	total, err := r.CountAll(ctx, &published)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)

	// за пределами выдачи — пустая страница
	posts, err := r.GetPublished(ctx, 4, 2)
	assert.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_GetByAuthorAndCounts(t *testing.T) {
	db := newTestDB(t)
	r := NewPostRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@x.com")
	bob := seedUser(t, db, "bob@x.com")

	now := time.Now().UTC()
	_, err := r.Create(ctx, &model.Post{Title: "alice-pub", Text: "b", AuthorID: alice.ID, IsPublished: true, PublishedAt: &now})
	assert.NoError(t, err)
	_, err = r.Create(ctx, &model.Post{Title: "alice-draft", Text: "b", AuthorID: alice.ID})
	assert.NoError(t, err)
	_, err = r.Create(ctx, &model.Post{Title: "bob-draft", Text: "b", AuthorID: bob.ID})
	assert.NoError(t, err)

	posts, err := r.GetByAuthor(ctx, alice.ID, 1, 10, nil)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)

	total, err := r.CountByAuthor(ctx, alice.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	published := true
	pubCount, err := r.CountByAuthor(ctx, alice.ID, &published)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), pubCount)

	draft := false
	posts, err = r.GetByAuthor(ctx, alice.ID, 1, 10, &draft)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "alice-draft", posts[0].Title)
}

func TestPostRepository_Search(t *testing.T) {
	db := newTestDB(t)
	r := NewPostRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")

	now := time.Now().UTC()
	_, err := r.Create(ctx, &model.Post{Title: "Go Generics", Text: "b", AuthorID: u.ID, IsPublished: true, PublishedAt: &now})
	assert.NoError(t, err)
	_, err = r.Create(ctx, &model.Post{Title: "other", Subtitle: "about generics too", Text: "b", AuthorID: u.ID, IsPublished: true, PublishedAt: &now})
	assert.NoError(t, err)
	_, err = r.Create(ctx, &model.Post{Title: "news", Text: "nothing here about GENERICS", AuthorID: u.ID, IsPublished: true, PublishedAt: &now})
	assert.NoError(t, err)
	// черновик в поиск не попадает
	_, err = r.Create(ctx, &model.Post{Title: "generics draft", Text: "b", AuthorID: u.ID})
	assert.NoError(t, err)

	// регистронезависимая подстрока по title/subtitle/text
	posts, err := r.Search(ctx, "GeNeRiCs", 1, 10)
	assert.NoError(t, err)
	assert.Len(t, posts, 3)

	count, err := r.CountSearch(ctx, "GeNeRiCs")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	posts, err = r.Search(ctx, "no such thing", 1, 10)
	assert.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_GetRecent(t *testing.T) {
	db := newTestDB(t)
	r := NewPostRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		_, err := r.Create(ctx, &model.Post{Title: fmt.Sprintf("p%d", i), Text: "b", AuthorID: u.ID, IsPublished: true, PublishedAt: &ts})
		assert.NoError(t, err)
	}
	_, err := r.Create(ctx, &model.Post{Title: "draft", Text: "b", AuthorID: u.ID})
	assert.NoError(t, err)

	posts, err := r.GetRecent(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "p3", posts[0].Title)
	assert.Equal(t, "p2", posts[1].Title)
}

func TestPostRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	r := NewPostRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")

	now := time.Now().UTC()
	p, err := r.Create(ctx, &model.Post{Title: "t", Text: "b", AuthorID: u.ID, IsPublished: true, PublishedAt: &now})
	assert.NoError(t, err)

	// Save должен уметь сбросить published_at в NULL
	p.IsPublished = false
	p.PublishedAt = nil
	updated, err := r.Update(ctx, p)
	assert.NoError(t, err)
	assert.False(t, updated.IsPublished)
	assert.Nil(t, updated.PublishedAt)

	deleted, err := r.Delete(ctx, p.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	// повторное удаление — false
	deleted, err = r.Delete(ctx, p.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestPostRepository_ImagesPreloadOrder(t *testing.T) {
	db := newTestDB(t)
	r := NewPostRepository(db)
	images := NewImageRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "a@x.com")

	p, err := r.Create(ctx, &model.Post{Title: "t", Text: "b", AuthorID: u.ID})
	assert.NoError(t, err)

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	later := base.Add(time.Minute)
	first, err := images.Create(ctx, &model.Image{PostID: p.ID, Data: []byte{1}, ContentType: "image/png", FileName: "1.png", Size: 1, CreatedAt: base})
	assert.NoError(t, err)
	_, err = images.Create(ctx, &model.Image{PostID: p.ID, Data: []byte{2}, ContentType: "image/png", FileName: "2.png", Size: 1, CreatedAt: later})
	assert.NoError(t, err)

	got, err := r.GetByID(ctx, p.ID, true)
	assert.NoError(t, err)
	assert.Len(t, got.Images, 2)
	// первое по created_at — «главное» изображение
	assert.Equal(t, first.ID, got.Images[0].ID)
}
