package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/engine"
	"github.com/divvyhq/divvy/internal/middleware"
	"github.com/divvyhq/divvy/internal/models"
	"github.com/divvyhq/divvy/internal/storage"
)

// ExpenseService handles expense CRUD within a group. Split validation
// happens here, at entry time: the balance engine trusts stored shares.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

type expenseRequest struct {
	Title        string             `json:"title" binding:"required"`
	Amount       float64            `json:"amount" binding:"required,gt=0"`
	Currency     string             `json:"currency" binding:"required"`
	PaidBy       string             `json:"paidBy" binding:"required"`
	SplitBetween []string           `json:"splitBetween" binding:"required,min=1"`
	SplitMethod  models.SplitMethod `json:"splitMethod" binding:"required"`

	// Shares carries per-member percentages (percentage split) or exact
	// amounts (custom split); ignored for equal splits.
	Shares map[string]float64 `json:"shares"`
	Notes  string             `json:"notes"`
	Date   int64              `json:"date"`
}

// buildExpense validates the request against the group and collapses the
// split policy into SplitDetails. Returns nil after writing an error
// response if anything is invalid.
func (s *ExpenseService) buildExpense(c *gin.Context, group *models.Group, req *expenseRequest) *models.Expense {
	if !currency.IsSupported(req.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported currency: " + req.Currency})
		return nil
	}
	if !isMember(req.PaidBy, group.Members) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payer must be a group member"})
		return nil
	}
	for _, id := range req.SplitBetween {
		if !isMember(id, group.Members) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "split participant is not a group member: " + id})
			return nil
		}
	}

	details, err := engine.BuildSplitDetails(req.SplitMethod, req.Amount, req.SplitBetween, req.Shares)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownSplitMethod) ||
			errors.Is(err, engine.ErrNoParticipants) ||
			errors.Is(err, engine.ErrPercentSum) ||
			errors.Is(err, engine.ErrCustomSum) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil
		}
		slog.Error("failed to build split details", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build split"})
		return nil
	}

	return &models.Expense{
		GroupID:      group.ID,
		Title:        req.Title,
		Amount:       req.Amount,
		Currency:     req.Currency,
		PaidBy:       req.PaidBy,
		SplitBetween: req.SplitBetween,
		SplitMethod:  req.SplitMethod,
		SplitDetails: details,
		Notes:        req.Notes,
		Date:         req.Date,
	}
}

// memberGroup loads the group and checks the requester belongs to it.
// Returns nil after writing an error response otherwise.
func (s *ExpenseService) memberGroup(c *gin.Context) *models.Group {
	group, err := s.store.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return nil
	}
	if !isMember(middleware.UserID(c), group.Members) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you must be a member of this group"})
		return nil
	}
	return group
}

// CreateExpense logs a new shared cost in a group.
func (s *ExpenseService) CreateExpense(c *gin.Context) {
	group := s.memberGroup(c)
	if group == nil {
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense := s.buildExpense(c, group, &req)
	if expense == nil {
		return
	}

	if err := s.store.CreateExpense(c.Request.Context(), expense); err != nil {
		slog.Error("failed to create expense", "group_id", group.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create expense"})
		return
	}

	slog.Info("expense created", "group_id", group.ID, "expense_id", expense.ID, "amount", expense.Amount, "currency", expense.Currency)
	c.JSON(http.StatusCreated, expense)
}

// ListExpenses returns a group's expenses, newest date first.
func (s *ExpenseService) ListExpenses(c *gin.Context) {
	group := s.memberGroup(c)
	if group == nil {
		return
	}

	expenses, err := s.store.ListExpensesByGroup(c.Request.Context(), group.ID)
	if err != nil {
		slog.Error("failed to list expenses", "group_id", group.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expenses"})
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GetExpense returns a single expense.
func (s *ExpenseService) GetExpense(c *gin.Context) {
	group := s.memberGroup(c)
	if group == nil {
		return
	}

	expense, err := s.store.GetExpense(c.Request.Context(), group.ID, c.Param("expenseId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// UpdateExpense replaces all fields of an existing expense.
func (s *ExpenseService) UpdateExpense(c *gin.Context) {
	group := s.memberGroup(c)
	if group == nil {
		return
	}

	existing, err := s.store.GetExpense(c.Request.Context(), group.ID, c.Param("expenseId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense := s.buildExpense(c, group, &req)
	if expense == nil {
		return
	}
	expense.ID = existing.ID
	expense.CreatedAt = existing.CreatedAt
	if expense.Date == 0 {
		expense.Date = existing.Date
	}

	if err := s.store.UpdateExpense(c.Request.Context(), expense); err != nil {
		slog.Error("failed to update expense", "expense_id", expense.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update expense"})
		return
	}

	slog.Info("expense updated", "group_id", group.ID, "expense_id", expense.ID)
	c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense from a group.
func (s *ExpenseService) DeleteExpense(c *gin.Context) {
	group := s.memberGroup(c)
	if group == nil {
		return
	}

	if err := s.store.DeleteExpense(c.Request.Context(), group.ID, c.Param("expenseId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}

	slog.Info("expense deleted", "group_id", group.ID, "expense_id", c.Param("expenseId"))
	c.Status(http.StatusNoContent)
}
