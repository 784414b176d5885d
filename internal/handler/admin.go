package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/index"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/ingest"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/store"
)

// AdminHandler exposes the administrative ingest surface. It is a separate
// interface from /chat; the chat client never calls these.
type AdminHandler struct {
	pipeline *ingest.Pipeline
	store    store.Store
	index    index.Index
}

func NewAdminHandler(pipeline *ingest.Pipeline, st store.Store, idx index.Index) *AdminHandler {
	return &AdminHandler{pipeline: pipeline, store: st, index: idx}
}

// UploadDocument ingests one uploaded text document immediately. Only
// plain-text uploads are accepted here; PDFs go through the ingest CLI,
// which has the converter available.
func (h *AdminHandler) UploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, apperr.New(apperr.KindInvalidRequest, "file is required"))
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".txt" && ext != ".md" {
		respondError(c, apperr.New(apperr.KindInvalidRequest, "unsupported upload type: %s", name))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindIngest, err, "failed to read upload"))
		return
	}

	summary, err := h.pipeline.IngestDocument(c.Request.Context(), name, []string{string(data)})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

func (h *AdminHandler) ListDocuments(c *gin.Context) {
	docs, err := h.store.ListDocuments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Reindex re-embeds every stored chunk and rebuilds the index, e.g. after an
// embedder change.
func (h *AdminHandler) Reindex(c *gin.Context) {
	if err := h.pipeline.Rebuild(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	indexed, err := h.index.Size()
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindRetrieval, err, "index unavailable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexed": indexed})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	docs, err := h.store.ListDocuments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	chunks, err := h.store.CountChunks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	indexSize, err := h.index.Size()
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindRetrieval, err, "index unavailable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"documents":  len(docs),
		"chunks":     chunks,
		"index_size": indexSize,
	})
}
