package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyago/models"
	"voyago/services/conversation"
	"voyago/utils"
)

// chat handles one dialogue turn on /api/chat.
func (hb *HandlerBundle) chat() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		resp, err := hb.Controller.ProcessMessage(c.Request.Context(), req.ThreadID, req.Message)
		if err != nil {
			var storeErr *conversation.StoreError
			if errors.As(err, &storeErr) {
				utils.JSONError(c, http.StatusServiceUnavailable,
					"conversation state unavailable", "please retry shortly")
				return
			}
			utils.GetLogger().Error("chat turn failed",
				zap.String("threadID", req.ThreadID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError,
				"failed to process message", "please try again later")
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// resetThread wipes a thread's dialogue state.
func (hb *HandlerBundle) resetThread() gin.HandlerFunc {
	return func(c *gin.Context) {
		threadID := c.Param("threadID")
		if threadID == "" {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "threadID is required")
			return
		}
		if err := hb.Controller.Reset(c.Request.Context(), threadID); err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable,
				"failed to reset thread", "please retry shortly")
			return
		}
		c.JSON(http.StatusOK, gin.H{"thread_id": threadID, "status": "reset"})
	}
}

// listThreads enumerates active thread IDs.
func (hb *HandlerBundle) listThreads() gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := hb.Controller.Threads(c.Request.Context())
		if err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable,
				"failed to list threads", "please retry shortly")
			return
		}
		if ids == nil {
			ids = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"threads": ids, "count": len(ids)})
	}
}
