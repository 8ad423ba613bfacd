package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
)

const (
	fileFormField       = "file"
	multipartMemory     = 1 << 20
	msgPayloadTooLarge  = "file is too large"
	msgMissingFileField = "multipart field \"file\" is required"
)

type FileService interface {
	Upload(ctx context.Context, params model.UploadFileParams, reader io.Reader) (model.File, error)
	Download(ctx context.Context, ownerID, id uuid.UUID) (model.File, io.ReadCloser, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.File, error)
}

type filesEnvelope struct {
	Files []fileResponse `json:"files"`
}

// File handles upload and retrieval of user files.
type File struct {
	fileService    FileService
	contextManager model.ContextManager
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewFile(fileService FileService, contextManager model.ContextManager, maxUploadBytes int64, logger *logger.Logger) *File {
	return &File{
		fileService:    fileService,
		contextManager: contextManager,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload accepts a multipart form with a single "file" field.
func (h *File) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	if r.ContentLength > h.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, msgPayloadTooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgPayloadTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	part, header, err := r.FormFile(fileFormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFileField)
		return
	}
	defer part.Close()

	file, err := h.fileService.Upload(r.Context(), model.UploadFileParams{
		OwnerID:     user.ID,
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, part)
	if err != nil {
		h.logger.Error("File handler: upload failed",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newFileResponse(file))
}

func (h *File) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	files, err := h.fileService.List(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("File handler: list failed",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	resp := filesEnvelope{Files: make([]fileResponse, 0, len(files))}
	for _, f := range files {
		resp.Files = append(resp.Files, newFileResponse(f))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Download streams the stored content with its original content type.
func (h *File) Download(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	file, rc, err := h.fileService.Download(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("File handler: failed to stream file",
			"file_id", file.ID,
			"error", err.Error())
	}
}
