package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sujalbistaa/zevina/internal/auth"
	"github.com/sujalbistaa/zevina/internal/chatbot"
	"github.com/sujalbistaa/zevina/internal/forum"
	"github.com/sujalbistaa/zevina/internal/storage"
	"github.com/sujalbistaa/zevina/internal/theme"
	"github.com/sujalbistaa/zevina/internal/ws"
)

// --- Structs for request binding ---
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ChatInput struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// --- Handlers ---

// Env carries the handler dependencies.
type Env struct {
	// Storage returns the key-value store of a client namespace.
	Storage   func(namespace string) storage.Storage
	Locks     *storage.Locks
	Hub       *ws.Hub
	Upgrader  *websocket.Upgrader
	ChatDelay time.Duration
	Log       *zap.Logger
}

// lock serializes the requests of the calling client until the returned
// func is called.
func (e *Env) lock(c *gin.Context) (storage.Storage, func()) {
	ns := namespace(c)
	return e.Storage(ns), e.Locks.Lock(ns)
}

func (e *Env) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := auth.ValidateLogin(input.Email, input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, unlock := e.lock(c)
	defer unlock()

	mgr, err := auth.Open(c.Request.Context(), store, e.Log)
	if err != nil {
		e.fail(c, "login", err)
		return
	}
	id, err := mgr.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		e.fail(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": id})
}

func (e *Env) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := auth.ValidateSignup(input.Name, input.Email, input.Password, input.ConfirmPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, unlock := e.lock(c)
	defer unlock()

	mgr, err := auth.Open(c.Request.Context(), store, e.Log)
	if err != nil {
		e.fail(c, "signup", err)
		return
	}
	id, err := mgr.Signup(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		e.fail(c, "signup", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": id})
}

func (e *Env) Logout(c *gin.Context) {
	store, unlock := e.lock(c)
	defer unlock()

	mgr, err := auth.Open(c.Request.Context(), store, e.Log)
	if err == nil {
		err = mgr.Logout(c.Request.Context())
	}
	if err != nil {
		e.fail(c, "logout", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (e *Env) Me(c *gin.Context) {
	mgr, err := auth.Open(c.Request.Context(), e.Storage(namespace(c)), e.Log)
	if err != nil {
		e.fail(c, "me", err)
		return
	}
	if !mgr.IsAuthenticated() {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "user": nil})
		return
	}
	id, _ := mgr.Current()
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": id})
}

func (e *Env) GetTheme(c *gin.Context) {
	t, err := theme.Open(c.Request.Context(), e.Storage(namespace(c)))
	if err != nil {
		e.fail(c, "theme", err)
		return
	}
	c.JSON(http.StatusOK, themeJSON(t))
}

func (e *Env) ToggleTheme(c *gin.Context) {
	store, unlock := e.lock(c)
	defer unlock()

	t, err := theme.Open(c.Request.Context(), store)
	if err == nil {
		_, err = t.Toggle(c.Request.Context())
	}
	if err != nil {
		e.fail(c, "toggle theme", err)
		return
	}
	c.JSON(http.StatusOK, themeJSON(t))
}

func themeJSON(t *theme.Store) gin.H {
	return gin.H{"theme": t.Value(), "dark": t.IsDark(), "rootClass": t.RootClass()}
}

func (e *Env) ChatReply(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": chatbot.Reply(input.Text)})
}

func (e *Env) ChatSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, chatbot.Suggestions())
}

func (e *Env) ForumSocket(c *gin.Context) {
	ws.ServeWs(e.Hub, e.Upgrader, c.Writer, c.Request, namespace(c), e.Log)
}

func (e *Env) ChatSocket(c *gin.Context) {
	ws.ServeChat(e.Upgrader, c.Writer, c.Request, e.ChatDelay, e.Log)
}

// fail maps a service error to a response. Unknown errors are logged and
// reported as 500.
func (e *Env) fail(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	msg := "Something went wrong"

	switch {
	case errors.Is(err, auth.ErrAccountNotFound):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrAccountExists):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, forum.ErrEmptyContent):
		status, msg = http.StatusBadRequest, "Please write something first."
	case errors.Is(err, forum.ErrUnknownTopic):
		status, msg = http.StatusBadRequest, "Unknown topic."
	case errors.Is(err, forum.ErrPostNotFound):
		status, msg = http.StatusNotFound, "Post not found"
	default:
		e.Log.Error("Request failed", zap.String("op", op), zap.String("client", namespace(c)), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}
