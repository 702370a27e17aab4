package http

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sujalbistaa/zevina/internal/forum"
	"github.com/sujalbistaa/zevina/internal/models"
	"github.com/sujalbistaa/zevina/internal/ws"
)

type CreatePostInput struct {
	Content   string `json:"content" binding:"max=1000"`
	Topic     string `json:"topic" binding:"required"`
	Anonymous *bool  `json:"anonymous"`
}

type CommentInput struct {
	Text      string `json:"text" binding:"max=1000"`
	Anonymous *bool  `json:"anonymous"`
}

type topicCount struct {
	forum.Topic
	Count int `json:"count"`
}

// anonymous defaults to true, matching the forum form.
func anonymous(v *bool) bool {
	return v == nil || *v
}

func identity(c *gin.Context) *models.Identity {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return nil
	}
	id := v.(models.Identity)
	return &id
}

func (e *Env) GetTopics(c *gin.Context) {
	f, err := forum.Open(c.Request.Context(), e.Storage(namespace(c)), e.Log)
	if err != nil {
		e.fail(c, "topics", err)
		return
	}

	counts := f.CountByTopic()
	out := []topicCount{{Topic: forum.Topic{ID: forum.AllTopics, Label: "All Topics", Icon: "🌐"}, Count: f.Len()}}
	for _, t := range forum.Topics() {
		out = append(out, topicCount{Topic: t, Count: counts[t.ID]})
	}
	c.JSON(http.StatusOK, out)
}

func (e *Env) GetPosts(c *gin.Context) {
	topic := c.DefaultQuery("topic", forum.AllTopics)
	if topic != forum.AllTopics && !forum.ValidTopic(topic) {
		e.fail(c, "posts", forum.ErrUnknownTopic)
		return
	}

	f, err := forum.Open(c.Request.Context(), e.Storage(namespace(c)), e.Log)
	if err != nil {
		e.fail(c, "posts", err)
		return
	}
	posts := slices.Collect(f.Filter(topic))
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

func (e *Env) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	store, unlock := e.lock(c)
	defer unlock()

	f, err := forum.Open(c.Request.Context(), store, e.Log)
	if err != nil {
		e.fail(c, "create post", err)
		return
	}
	post, err := f.CreatePost(c.Request.Context(), input.Content, input.Topic, anonymous(input.Anonymous), identity(c))
	if err != nil {
		e.fail(c, "create post", err)
		return
	}

	e.broadcast(c, ws.Message{Type: "new_post", Data: post})
	c.JSON(http.StatusCreated, post)
}

func (e *Env) ToggleLike(c *gin.Context) {
	store, unlock := e.lock(c)
	defer unlock()

	f, err := forum.Open(c.Request.Context(), store, e.Log)
	if err != nil {
		e.fail(c, "like", err)
		return
	}
	post, err := f.ToggleLike(c.Request.Context(), c.Param("id"))
	if err != nil {
		e.fail(c, "like", err)
		return
	}

	payload := gin.H{"id": post.ID, "likes": post.Likes, "likedByMe": post.LikedByMe}
	e.broadcast(c, ws.Message{Type: "like", Data: payload})
	c.JSON(http.StatusOK, post)
}

func (e *Env) AddComment(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	store, unlock := e.lock(c)
	defer unlock()

	f, err := forum.Open(c.Request.Context(), store, e.Log)
	if err != nil {
		e.fail(c, "comment", err)
		return
	}
	postID := c.Param("id")
	comment, err := f.AddComment(c.Request.Context(), postID, input.Text, anonymous(input.Anonymous), identity(c))
	if err != nil {
		e.fail(c, "comment", err)
		return
	}

	e.broadcast(c, ws.Message{Type: "comment", Data: gin.H{"postId": postID, "comment": comment}})
	c.JSON(http.StatusCreated, comment)
}

func (e *Env) broadcast(c *gin.Context, msg ws.Message) {
	if e.Hub == nil {
		return
	}
	if err := e.Hub.Publish(namespace(c), msg); err != nil {
		e.Log.Error("Broadcasting forum event", zap.String("type", msg.Type), zap.Error(err))
	}
}
