package handlers

import (
	"github.com/gin-gonic/gin"

	"voyago/database/repository/dataset"
	"voyago/services/dialogue"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Controller  *dialogue.Controller
	DatasetRepo dataset.Repository
	Cache       ResponseCache

	// Chat endpoints
	ChatHandler        gin.HandlerFunc
	ResetThreadHandler gin.HandlerFunc
	ListThreadsHandler gin.HandlerFunc

	// Operational endpoints
	DatasetStatsHandler gin.HandlerFunc
	HealthHandler       gin.HandlerFunc
}

// NewHandlerBundle wires each handler against the shared services.
// cache may be nil; handlers then recompute on every request.
func NewHandlerBundle(controller *dialogue.Controller, repo dataset.Repository, cache ResponseCache) *HandlerBundle {
	hb := &HandlerBundle{
		Controller:  controller,
		DatasetRepo: repo,
		Cache:       cache,
	}
	hb.ChatHandler = hb.chat()
	hb.ResetThreadHandler = hb.resetThread()
	hb.ListThreadsHandler = hb.listThreads()
	hb.DatasetStatsHandler = hb.datasetStats()
	hb.HealthHandler = hb.health()
	return hb
}
