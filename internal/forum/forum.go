// Package forum is a client's copy of the community forum: posts with
// nested comments, kept newest first and written back in full after every
// change.
package forum

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sujalbistaa/zevina/internal/models"
	"github.com/sujalbistaa/zevina/internal/storage"
)

const (
	Key = "zevina_forum_posts"

	AnonymousPostAuthor    = "Anonymous Student"
	AnonymousCommentAuthor = "Anonymous"
	// UnnamedAuthor is used for a non-anonymous contribution without a logged in identity.
	UnnamedAuthor = "You"
	JustNow       = "just now"
)

var (
	ErrEmptyContent = errors.New("content is empty")
	ErrUnknownTopic = errors.New("unknown topic")
	ErrPostNotFound = errors.New("post not found")
)

var avatars = []string{"🌸", "🌿", "💜", "🌙", "⭐", "🦋"}

type Store struct {
	store storage.Storage
	log   *zap.Logger
	posts []models.Post
}

// Open loads the stored posts. A client without stored posts, or with a
// stored value that does not pass validation, starts from SeedPosts.
func Open(ctx context.Context, store storage.Storage, log *zap.Logger) (*Store, error) {
	posts, err := storage.LoadJSON(ctx, store, log, Key, SeedPosts(), validatePosts)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	for i := range posts {
		if posts[i].Comments == nil {
			posts[i].Comments = []models.Comment{}
		}
	}
	return &Store{store: store, log: log, posts: posts}, nil
}

// CreatePost prepends a new post. author may be nil when nobody is logged in.
func (s *Store) CreatePost(ctx context.Context, content, topic string, anonymous bool, author *models.Identity) (models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Post{}, ErrEmptyContent
	}
	if !ValidTopic(topic) {
		return models.Post{}, ErrUnknownTopic
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.Post{}, fmt.Errorf("new post id: %w", err)
	}

	post := models.Post{
		ID:        id.String(),
		Author:    authorName(anonymous, AnonymousPostAuthor, author),
		Avatar:    avatars[rand.IntN(len(avatars))],
		Topic:     topic,
		Content:   content,
		Timestamp: JustNow,
		Comments:  []models.Comment{},
	}

	next := make([]models.Post, 0, len(s.posts)+1)
	next = append(next, post)
	next = append(next, s.posts...)
	if err := s.commit(ctx, next); err != nil {
		return models.Post{}, err
	}

	s.log.Debug("Post created", zap.String("id", post.ID), zap.String("topic", topic))
	return clonePost(post), nil
}

// ToggleLike flips LikedByMe and moves Likes by one in the same direction.
func (s *Store) ToggleLike(ctx context.Context, postID string) (models.Post, error) {
	i := s.index(postID)
	if i < 0 {
		return models.Post{}, ErrPostNotFound
	}

	next := slices.Clone(s.posts)
	p := next[i]
	if p.LikedByMe {
		p.Likes--
	} else {
		p.Likes++
	}
	p.LikedByMe = !p.LikedByMe
	next[i] = p

	if err := s.commit(ctx, next); err != nil {
		return models.Post{}, err
	}
	return clonePost(p), nil
}

// AddComment appends a comment to the post. author may be nil.
func (s *Store) AddComment(ctx context.Context, postID, text string, anonymous bool, author *models.Identity) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, ErrEmptyContent
	}
	i := s.index(postID)
	if i < 0 {
		return models.Comment{}, ErrPostNotFound
	}

	c := models.Comment{
		Author:    authorName(anonymous, AnonymousCommentAuthor, author),
		Text:      text,
		Timestamp: JustNow,
	}

	next := slices.Clone(s.posts)
	p := next[i]
	p.Comments = append(slices.Clip(p.Comments), c)
	next[i] = p

	if err := s.commit(ctx, next); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// Filter yields the posts of topic, or every post for AllTopics, in store
// order. It reads the store lazily and never changes it.
func (s *Store) Filter(topic string) iter.Seq[models.Post] {
	return func(yield func(models.Post) bool) {
		for _, p := range s.posts {
			if topic != AllTopics && p.Topic != topic {
				continue
			}
			if !yield(clonePost(p)) {
				return
			}
		}
	}
}

// Posts returns every post, newest first.
func (s *Store) Posts() []models.Post {
	return slices.Collect(s.Filter(AllTopics))
}

// Get returns the post with id.
func (s *Store) Get(postID string) (models.Post, bool) {
	i := s.index(postID)
	if i < 0 {
		return models.Post{}, false
	}
	return clonePost(s.posts[i]), true
}

func (s *Store) Len() int { return len(s.posts) }

// CountByTopic counts posts per topic id.
func (s *Store) CountByTopic() map[string]int {
	counts := make(map[string]int, len(topics))
	for _, t := range topics {
		counts[t.ID] = 0
	}
	for _, p := range s.posts {
		counts[p.Topic]++
	}
	return counts
}

func (s *Store) commit(ctx context.Context, next []models.Post) error {
	if err := storage.SaveJSON(ctx, s.store, Key, next); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	s.posts = next
	return nil
}

// index finds the first post with id; ids are not guaranteed unique in old data.
func (s *Store) index(postID string) int {
	return slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == postID })
}

func authorName(anonymous bool, anonymousName string, author *models.Identity) string {
	switch {
	case anonymous:
		return anonymousName
	case author != nil && author.Name != "":
		return author.Name
	default:
		return UnnamedAuthor
	}
}

func clonePost(p models.Post) models.Post {
	p.Comments = slices.Clone(p.Comments)
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	return p
}

func validatePosts(posts []models.Post) error {
	for i, p := range posts {
		switch {
		case p.ID == "":
			return fmt.Errorf("post %d: missing id", i)
		case !ValidTopic(p.Topic):
			return fmt.Errorf("post %d: unknown topic %q", i, p.Topic)
		case p.Likes < 0:
			return fmt.Errorf("post %d: negative likes", i)
		}
	}
	return nil
}
