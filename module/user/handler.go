package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"relaychat/logger"
	chatmodel "relaychat/module/chat/model"
	"relaychat/service/store"
	"relaychat/tools/errs"
)

// Handler exposes the request/response surface: thin wrappers over the
// Store. All real-time traffic goes through the WebSocket gateway, not
// here.
type Handler struct {
	store store.Store
}

func NewHandler(st store.Store) *Handler {
	return &Handler{store: st}
}

// MountRoutes registers the API routes on the given engine/group.
func (h *Handler) MountRoutes(r gin.IRouter) {
	r.POST("/api/users", h.CreateUser)
	r.GET("/api/contacts", h.ListContacts)
	r.GET("/api/users/:id", h.GetUser)
	r.GET("/api/messages/:from/:to", h.ListMessages)
}

type createUserReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateUser registers a user, or returns the existing record when the
// phone is already taken.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
		return
	}

	u, err := h.store.FindOrCreateUser(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		logger.Errorf("[api] create user failed phone=%s err=%v", req.Phone, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create or fetch user"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) ListContacts(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		logger.Errorf("[api] list contacts failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch contacts"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id := c.Param("id")

	u, err := h.store.GetUser(c.Request.Context(), id)
	if errs.IsCode(err, errs.CodeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		logger.Errorf("[api] get user failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListMessages returns the history between two users, both directions,
// ordered by creation time ascending.
func (h *Handler) ListMessages(c *gin.Context) {
	from := c.Param("from")
	to := c.Param("to")

	msgs, err := h.store.ListMessages(c.Request.Context(), from, to)
	if err != nil {
		logger.Errorf("[api] list messages failed from=%s to=%s err=%v", from, to, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
		return
	}
	if msgs == nil {
		msgs = []*chatmodel.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}
