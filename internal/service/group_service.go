package service

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/engine"
	"github.com/divvyhq/divvy/internal/middleware"
	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/storage"
)

// GroupService handles group membership and the balances endpoint.
type GroupService struct {
	store     storage.Store
	converter *currency.Converter
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store, converter *currency.Converter) *GroupService {
	return &GroupService{store: store, converter: converter}
}

// isMember checks if the user is in the members list.
func isMember(userID string, members []string) bool {
	for _, m := range members {
		if m == userID {
			return true
		}
	}
	return false
}

type createGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateGroup creates a group with the requester as its first member.
func (s *GroupService) CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	group := &models.Group{
		Name:      req.Name,
		CreatedBy: userID,
		Members:   []string{userID},
	}
	if err := s.store.CreateGroup(c.Request.Context(), group); err != nil {
		slog.Error("failed to create group", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create group"})
		return
	}

	slog.Info("group created", "group_id", group.ID, "created_by", userID)
	c.JSON(http.StatusCreated, group)
}

// ListGroups returns all groups the requester belongs to.
func (s *GroupService) ListGroups(c *gin.Context) {
	groups, err := s.store.ListGroupsByMember(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		slog.Error("failed to list groups", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list groups"})
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup returns a group with member profiles. Members only.
func (s *GroupService) GetGroup(c *gin.Context) {
	group, err := s.store.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	if !isMember(middleware.UserID(c), group.Members) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you must be a member of this group"})
		return
	}

	users, err := s.store.GetUsersByIDs(c.Request.Context(), group.Members)
	if err != nil {
		slog.Error("failed to load member profiles", "group_id", group.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load members"})
		return
	}
	details := make([]*models.User, 0, len(group.Members))
	for _, id := range group.Members {
		if u, ok := users[id]; ok {
			details = append(details, u)
		}
	}

	c.JSON(http.StatusOK, gin.H{"group": group, "memberDetails": details})
}

type joinGroupRequest struct {
	Code string `json:"code" binding:"required"`
}

// JoinGroup adds the requester to the group matching an invite code.
func (s *GroupService) JoinGroup(c *gin.Context) {
	var req joinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := s.store.GetGroupByInviteCode(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found with the provided code"})
		return
	}

	userID := middleware.UserID(c)
	if isMember(userID, group.Members) {
		c.JSON(http.StatusConflict, gin.H{"error": "you are already a member of this group"})
		return
	}

	if err := s.store.AddGroupMember(c.Request.Context(), group.ID, userID); err != nil {
		slog.Error("failed to join group", "group_id", group.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join group"})
		return
	}
	group.Members = append(group.Members, userID)

	slog.Info("user joined group", "group_id", group.ID, "user_id", userID)
	c.JSON(http.StatusOK, group)
}

// LeaveGroup removes the requester from a group. When the creator is the
// sole remaining member, the whole group is deleted instead.
func (s *GroupService) LeaveGroup(c *gin.Context) {
	group, err := s.store.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}

	userID := middleware.UserID(c)
	if !isMember(userID, group.Members) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you must be a member of this group"})
		return
	}

	if group.CreatedBy == userID && len(group.Members) == 1 {
		if err := s.store.DeleteGroup(c.Request.Context(), group.ID); err != nil {
			slog.Error("failed to delete group", "group_id", group.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave group"})
			return
		}
		slog.Info("group deleted by last member", "group_id", group.ID)
		c.Status(http.StatusNoContent)
		return
	}

	if err := s.store.RemoveGroupMember(c.Request.Context(), group.ID, userID); err != nil {
		slog.Error("failed to leave group", "group_id", group.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave group"})
		return
	}

	slog.Info("user left group", "group_id", group.ID, "user_id", userID)
	c.Status(http.StatusNoContent)
}

// GetGroupBalances recomputes the group's balances and settlement plan from
// a fresh snapshot of its expenses. The base currency defaults to the
// requester's preferred currency and can be overridden with ?currency=.
func (s *GroupService) GetGroupBalances(c *gin.Context) {
	ctx := c.Request.Context()

	group, err := s.store.GetGroup(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}

	userID := middleware.UserID(c)
	if !isMember(userID, group.Members) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you must be a member of this group"})
		return
	}

	baseCurrency := c.Query("currency")
	if baseCurrency == "" {
		user, err := s.store.GetUserByID(ctx, userID)
		if err != nil || user == nil {
			baseCurrency = currency.USD
		} else {
			baseCurrency = user.PreferredCurrency
		}
	}
	if !currency.IsSupported(baseCurrency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported currency: " + baseCurrency})
		return
	}

	stored, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("failed to list expenses", "group_id", group.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load expenses"})
		return
	}
	expenses := make([]models.Expense, len(stored))
	for i, e := range stored {
		expenses[i] = *e
	}

	balances, settlements := engine.ComputeBalances(expenses, group.Members, baseCurrency, s.converter)
	if settlements == nil {
		settlements = []models.Settlement{}
	}

	slog.Info("balances computed",
		"group_id", group.ID,
		"base_currency", baseCurrency,
		"expenses", len(expenses),
		"settlements", len(settlements),
	)
	c.JSON(http.StatusOK, gin.H{
		"baseCurrency": baseCurrency,
		"balances":     balances,
		"settlements":  settlements,
	})
}
