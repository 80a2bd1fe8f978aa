package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/dto"
	"churchthreads.app/api/internal/service"
)

type ThreadHandler struct {
	threadService service.ThreadService
}

func NewThreadHandler(threadService service.ThreadService) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

func (h *ThreadHandler) Create(c *gin.Context) {
	feedID, ok := paramID(c, "feedId")
	if !ok {
		return
	}
	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "content is required")
		return
	}

	thread, err := h.threadService.CreateThread(c.Request.Context(), currentUser(c), feedID, req.Content)
	if err != nil {
		respondError(c, err, "failed to create thread")
		return
	}
	c.JSON(http.StatusCreated, dto.ToThreadResponse(thread))
}

// List pages threads with ?cursor=<last thread id>&limit=<n>.
func (h *ThreadHandler) List(c *gin.Context) {
	feedID, ok := paramID(c, "feedId")
	if !ok {
		return
	}

	var cursor int64
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			badRequest(c, "invalid cursor")
			return
		}
		cursor = parsed
	}
	limit := int32(service.DefaultThreadPageSize)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			badRequest(c, "invalid limit")
			return
		}
		limit = min(int32(parsed), service.MaxThreadPageSize)
	}

	threads, err := h.threadService.ListThreads(c.Request.Context(), currentUser(c), feedID, cursor, limit)
	if err != nil {
		respondError(c, err, "failed to list threads")
		return
	}
	c.JSON(http.StatusOK, dto.ToThreadPage(threads, limit))
}

func (h *ThreadHandler) Get(c *gin.Context) {
	threadID, ok := paramID(c, "threadId")
	if !ok {
		return
	}

	thread, err := h.threadService.GetThread(c.Request.Context(), currentUser(c), threadID)
	if err != nil {
		respondError(c, err, "failed to get thread")
		return
	}
	c.JSON(http.StatusOK, dto.ToThreadResponse(thread))
}

func (h *ThreadHandler) CreateMessage(c *gin.Context) {
	threadID, ok := paramID(c, "threadId")
	if !ok {
		return
	}
	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "content is required")
		return
	}

	msg, err := h.threadService.CreateMessage(c.Request.Context(), currentUser(c), threadID, req.Content)
	if err != nil {
		respondError(c, err, "failed to create message")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMessageResponse(msg))
}

func (h *ThreadHandler) ListMessages(c *gin.Context) {
	threadID, ok := paramID(c, "threadId")
	if !ok {
		return
	}

	messages, err := h.threadService.ListMessages(c.Request.Context(), currentUser(c), threadID)
	if err != nil {
		respondError(c, err, "failed to list messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": dto.ToMessageResponses(messages)})
}
