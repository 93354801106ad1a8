package httpapi

import (
	"errors"
	"net/http"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/categories"
	"fintrack/internal/groups"
	"fintrack/internal/transactions"
	"fintrack/internal/users"
	"fintrack/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Codec        *auth.Codec
	Users        *users.Service
	Groups       *groups.Service
	Categories   *categories.Service
	Transactions *transactions.Service
}

// identity returns the authenticated claims or aborts. Routes behind the auth
// middleware always have one; the guard covers misconfigured wiring.
func identity(c *gin.Context) (auth.Claims, bool) {
	id, err := auth.Identity(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return auth.Claims{}, false
	}
	return id, true
}

func abortForError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound),
		errors.Is(err, groups.ErrNotFound),
		errors.Is(err, categories.ErrNotFound),
		errors.Is(err, transactions.ErrNotFound),
		errors.Is(err, auth.ErrGroupNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrDuplicate),
		errors.Is(err, groups.ErrDuplicate),
		errors.Is(err, categories.ErrDuplicate):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrInvalidArgument),
		errors.Is(err, groups.ErrInvalidArgument),
		errors.Is(err, categories.ErrInvalidArgument),
		errors.Is(err, transactions.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrBadCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.FromGin(c).Error("request failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

/* ===================== AUTH ===================== */

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := h.Users.Register(c.Request.Context(), users.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	pair, err := h.Users.Login(c.Request.Context(), time.Now(), req.Username, req.Password)
	if err != nil {
		abortForError(c, err)
		return
	}
	for _, ck := range auth.SessionCookies(pair, h.Codec.RefreshTTL()) {
		http.SetCookie(c.Writer, ck)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged in"})
}

func (h Handlers) Logout(c *gin.Context) {
	for _, ck := range auth.ClearSessionCookies() {
		http.SetCookie(c.Writer, ck)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h Handlers) Me(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       id.UserID,
		"username": id.Username,
		"email":    id.Email,
		"role":     id.Role,
	})
}

/* ===================== USERS ===================== */

func (h Handlers) GetUser(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := h.Users.Update(c.Request.Context(), c.Param("username"), users.UpdateRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h Handlers) DeleteUser(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("username")); err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

/* ===================== ADMIN ===================== */

func (h Handlers) AdminListUsers(c *gin.Context) {
	list, err := h.Users.List(c.Request.Context())
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type setRoleRequest struct {
	Role auth.Role `json:"role"`
}

func (h Handlers) AdminSetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := h.Users.SetRole(c.Request.Context(), c.Param("username"), req.Role)
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

/* ===================== GROUPS ===================== */

type createGroupRequest struct {
	Name string `json:"name"`
}

func (h Handlers) CreateGroup(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	g, err := h.Groups.Create(c.Request.Context(), req.Name, id.UserID, id.Email)
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h Handlers) GetGroup(c *gin.Context) {
	g, err := h.Groups.Get(c.Request.Context(), c.Param("group"))
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h Handlers) ListMyGroups(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	gs, err := h.Groups.ListByMember(c.Request.Context(), id.Email)
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gs)
}

type memberRequest struct {
	Email string `json:"email"`
}

func (h Handlers) AddGroupMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Groups.AddMember(c.Request.Context(), c.Param("group"), req.Email); err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

func (h Handlers) RemoveGroupMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Groups.RemoveMember(c.Request.Context(), c.Param("group"), req.Email); err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h Handlers) DeleteGroup(c *gin.Context) {
	if err := h.Groups.Delete(c.Request.Context(), c.Param("group")); err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

/* ===================== CATEGORIES ===================== */

type categoryRequest struct {
	Name string `json:"name"`
}

func (h Handlers) CreateCategory(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat, err := h.Categories.Create(c.Request.Context(), id.Email, req.Name)
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h Handlers) ListCategories(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	cats, err := h.Categories.List(c.Request.Context(), id.Email)
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h Handlers) RenameCategory(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat, err := h.Categories.Rename(c.Request.Context(), id.Email, c.Param("category"), req.Name)
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h Handlers) DeleteCategory(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	moved, err := h.Categories.Delete(c.Request.Context(), id.Email, c.Param("category"))
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "reassigned_transactions": moved})
}

/* ===================== TRANSACTIONS ===================== */

type transactionRequest struct {
	CategoryID  string    `json:"category_id"`
	GroupName   string    `json:"group_name"`
	AmountMinor int64     `json:"amount_minor"`
	Note        string    `json:"note"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (h Handlers) CreateTransaction(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	tx, err := h.Transactions.Create(c.Request.Context(), id.Email, transactions.CreateRequest{
		CategoryID:  req.CategoryID,
		GroupName:   req.GroupName,
		AmountMinor: req.AmountMinor,
		Note:        req.Note,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h Handlers) ListTransactions(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	f, err := filterFromQuery(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.Transactions.List(c.Request.Context(), id.Email, f)
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) ListGroupTransactions(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.Transactions.ListByGroup(c.Request.Context(), c.Param("group"), f)
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) GetTransaction(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	tx, err := h.Transactions.Get(c.Request.Context(), id.Email, c.Param("id"))
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h Handlers) UpdateTransaction(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	tx, err := h.Transactions.Update(c.Request.Context(), id.Email, c.Param("id"), transactions.UpdateRequest{
		CategoryID:  req.CategoryID,
		GroupName:   req.GroupName,
		AmountMinor: req.AmountMinor,
		Note:        req.Note,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h Handlers) DeleteTransaction(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Transactions.Delete(c.Request.Context(), id.Email, c.Param("id")); err != nil {
		abortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
