package handlers

import (
	"context"
	"errors"
	"github.com/14kear/pollstore/internal/domain/models"
	"github.com/14kear/pollstore/internal/services/polls"
	"github.com/gin-gonic/gin"
	"net/http"
)

// Коды причин отдаются рядом с "error", чтобы клиент мог различать ошибки.
const (
	ReasonInvalidInput     = "invalid_input"
	ReasonDuplicateOptions = "duplicate_options"
	ReasonPollNotFound     = "poll_not_found"
	ReasonInvalidOption    = "invalid_option"
	ReasonInternal         = "internal"
)

type PollStore interface {
	Create(ctx context.Context, req models.CreatePollRequest) (models.Poll, error)
	Vote(ctx context.Context, req models.VoteRequest) error
	Get(id string) (models.Poll, bool)
	GetResults(id string) (models.PollResult, bool)
	ListAll() []models.Poll
}

type PollHandler struct {
	store PollStore
}

// Пустая строка допустима как вопрос и как вариант ответа, поэтому
// required проверяет только наличие поля.
type CreatePollRequest struct {
	Question *string  `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
}

type VoteRequest struct {
	PollID string  `json:"poll_id" binding:"required"`
	Option *string `json:"option" binding:"required"`
}

func NewPollHandler(store PollStore) *PollHandler {
	return &PollHandler{store: store}
}

func (h *PollHandler) CreatePoll(c *gin.Context) {
	var req CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid input", ReasonInvalidInput)
		return
	}

	poll, err := h.store.Create(c.Request.Context(), models.CreatePollRequest{
		Question: *req.Question,
		Options:  req.Options,
	})
	if err != nil {
		if errors.Is(err, polls.ErrDuplicateOptions) {
			fail(c, http.StatusBadRequest, err.Error(), ReasonDuplicateOptions)
			return
		}
		fail(c, http.StatusInternalServerError, "failed to create poll", ReasonInternal)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"poll": poll})
}

func (h *PollHandler) GetPoll(c *gin.Context) {
	poll, ok := h.store.Get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "poll not found", ReasonPollNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll": poll})
}

func (h *PollHandler) GetPolls(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"polls": h.store.ListAll()})
}

func (h *PollHandler) GetResults(c *gin.Context) {
	result, ok := h.store.GetResults(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "poll not found", ReasonPollNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *PollHandler) Vote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid input", ReasonInvalidInput)
		return
	}

	err := h.store.Vote(c.Request.Context(), models.VoteRequest{PollID: req.PollID, Option: *req.Option})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "vote cast successfully"})
	case errors.Is(err, polls.ErrPollNotFound):
		fail(c, http.StatusNotFound, "poll not found", ReasonPollNotFound)
	case errors.Is(err, polls.ErrInvalidOption):
		fail(c, http.StatusBadRequest, "invalid option", ReasonInvalidOption)
	default:
		fail(c, http.StatusInternalServerError, "failed to cast vote", ReasonInternal)
	}
}

func fail(c *gin.Context, status int, msg, reason string) {
	c.JSON(status, gin.H{"error": msg, "reason": reason})
}
