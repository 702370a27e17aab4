package forum

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sujalbistaa/zevina/internal/models"
	"github.com/sujalbistaa/zevina/internal/storage"
)

func openStore(t *testing.T, s storage.Storage) *Store {
	t.Helper()
	f, err := Open(context.Background(), s, zap.NewNop())
	require.NoError(t, err)
	return f
}

// emptyStore returns a forum whose stored post list is empty rather than seeded.
func emptyStore(t *testing.T) (*Store, *storage.MemoryStorage) {
	t.Helper()
	mem := storage.NewMemoryStorage()
	require.NoError(t, mem.Set(context.Background(), Key, "[]"))
	return openStore(t, mem), mem
}

func TestOpen_SeedsNewClient(t *testing.T) {
	f := openStore(t, storage.NewMemoryStorage())
	assert.Equal(t, SeedPosts(), f.Posts())
}

func TestOpen_InvalidStoredValueFallsBackToSeed(t *testing.T) {
	for name, raw := range map[string]string{
		"corrupted":      `[{"id":"1",`,
		"unknown topic":  `[{"id":"1","topic":"gaming","likes":0,"comments":[]}]`,
		"negative likes": `[{"id":"1","topic":"time","likes":-3,"comments":[]}]`,
		"not a list":     `{"id":"1"}`,
	} {
		t.Run(name, func(t *testing.T) {
			mem := storage.NewMemoryStorage()
			require.NoError(t, mem.Set(context.Background(), Key, raw))
			assert.Equal(t, SeedPosts(), openStore(t, mem).Posts())
		})
	}
}

func TestCreatePost_NewestFirst(t *testing.T) {
	ctx := context.Background()
	f, _ := emptyStore(t)

	a, err := f.CreatePost(ctx, "post A", "stress", true, nil)
	require.NoError(t, err)
	b, err := f.CreatePost(ctx, "post B", "time", true, nil)
	require.NoError(t, err)
	c, err := f.CreatePost(ctx, "post C", "stress", true, nil)
	require.NoError(t, err)

	ids := func(posts []models.Post) []string {
		out := make([]string, 0, len(posts))
		for _, p := range posts {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, ids(f.Posts()))
	assert.Equal(t, []string{c.ID, a.ID}, ids(slices.Collect(f.Filter("stress"))))
	assert.Equal(t, []string{b.ID}, ids(slices.Collect(f.Filter("time"))))
	assert.Empty(t, slices.Collect(f.Filter("emotional")))
	assert.Equal(t, 3, f.Len(), "filtering does not mutate")
}

func TestCreatePost_Fields(t *testing.T) {
	ctx := context.Background()
	f, _ := emptyStore(t)
	ana := &models.Identity{Name: "Ana", Email: "ana@school.org"}

	p, err := f.CreatePost(ctx, "  I passed my mock!  ", "motivation", false, ana)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Ana", p.Author)
	assert.Contains(t, avatars, p.Avatar)
	assert.Equal(t, "motivation", p.Topic)
	assert.Equal(t, "I passed my mock!", p.Content)
	assert.Equal(t, JustNow, p.Timestamp)
	assert.Zero(t, p.Likes)
	assert.False(t, p.LikedByMe)
	assert.Empty(t, p.Comments)

	anon, err := f.CreatePost(ctx, "secret", "stress", true, ana)
	require.NoError(t, err)
	assert.Equal(t, AnonymousPostAuthor, anon.Author)

	nobody, err := f.CreatePost(ctx, "who am I", "stress", false, nil)
	require.NoError(t, err)
	assert.Equal(t, UnnamedAuthor, nobody.Author)
}

func TestCreatePost_Rejections(t *testing.T) {
	ctx := context.Background()
	f, mem := emptyStore(t)

	_, err := f.CreatePost(ctx, "   ", "stress", true, nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
	_, err = f.CreatePost(ctx, "hello", "gaming", true, nil)
	assert.ErrorIs(t, err, ErrUnknownTopic)

	assert.Zero(t, f.Len())
	raw, _, _ := mem.Get(ctx, Key)
	assert.Equal(t, "[]", raw, "rejected posts are not persisted")
}

func TestToggleLike_IsInvolution(t *testing.T) {
	ctx := context.Background()
	f := openStore(t, storage.NewMemoryStorage())
	before, ok := f.Get("3")
	require.True(t, ok)

	liked, err := f.ToggleLike(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, before.Likes+1, liked.Likes)
	assert.True(t, liked.LikedByMe)

	unliked, err := f.ToggleLike(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, before.Likes, unliked.Likes)
	assert.Equal(t, before.LikedByMe, unliked.LikedByMe)

	_, err = f.ToggleLike(ctx, "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	f := openStore(t, storage.NewMemoryStorage())
	before, _ := f.Get("2")

	c, err := f.AddComment(ctx, "2", " Forest app! ", true, &models.Identity{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, models.Comment{Author: AnonymousCommentAuthor, Text: "Forest app!", Timestamp: JustNow}, c)

	named, err := f.AddComment(ctx, "2", "Thanks", false, &models.Identity{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", named.Author)

	after, _ := f.Get("2")
	require.Len(t, after.Comments, len(before.Comments)+2)
	assert.Equal(t, c, after.Comments[len(after.Comments)-2])
	assert.Equal(t, named, after.Comments[len(after.Comments)-1])
}

func TestAddComment_Rejections(t *testing.T) {
	ctx := context.Background()
	f := openStore(t, storage.NewMemoryStorage())
	before, _ := f.Get("1")

	_, err := f.AddComment(ctx, "1", "  ", true, nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
	_, err = f.AddComment(ctx, "missing", "hi", true, nil)
	assert.ErrorIs(t, err, ErrPostNotFound)

	after, _ := f.Get("1")
	assert.Len(t, after.Comments, len(before.Comments))
	assert.Equal(t, len(SeedPosts()), f.Len())
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f, mem := emptyStore(t)

	for i, topic := range []string{"stress", "time", "emotional", "motivation", "stress"} {
		p, err := f.CreatePost(ctx, "post "+topic, topic, i%2 == 0, &models.Identity{Name: "Ana"})
		require.NoError(t, err)
		if i%2 == 1 {
			_, err = f.ToggleLike(ctx, p.ID)
			require.NoError(t, err)
		}
		_, err = f.AddComment(ctx, p.ID, "reply to "+topic, false, nil)
		require.NoError(t, err)
	}

	reloaded := openStore(t, mem)
	assert.Equal(t, f.Posts(), reloaded.Posts())
	assert.Equal(t, 5, reloaded.Len())
}

func TestReturnedPostsAreCopies(t *testing.T) {
	f := openStore(t, storage.NewMemoryStorage())

	posts := f.Posts()
	posts[0].Likes = 1000
	posts[0].Comments[0].Text = "edited"

	p, _ := f.Get(posts[0].ID)
	assert.NotEqual(t, 1000, p.Likes)
	assert.NotEqual(t, "edited", p.Comments[0].Text)
}

func TestSeedPosts_Text(t *testing.T) {
	seeds := SeedPosts()
	assert.Equal(t, "You're not alone! Make a priority list — what's due first?", seeds[0].Comments[0].Text)
	assert.Equal(t, "That doesn't sound dramatic at all. Please talk to your counselor — you deserve support 💜", seeds[3].Comments[0].Text)
}

func TestCountByTopic(t *testing.T) {
	f := openStore(t, storage.NewMemoryStorage())
	assert.Equal(t, map[string]int{"stress": 1, "time": 1, "emotional": 1, "motivation": 1}, f.CountByTopic())
}

func TestTopics(t *testing.T) {
	assert.Len(t, Topics(), 4)
	assert.True(t, ValidTopic("emotional"))
	assert.False(t, ValidTopic(AllTopics))
}
