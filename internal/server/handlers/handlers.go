// Package handlers implements the HTTP handlers for the reconciliation
// API: CSV upload, job status retrieval, and report downloads.
package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jayjaychukwu/reconcilation/internal/server/response"
	"github.com/jayjaychukwu/reconcilation/internal/store"
	"github.com/jayjaychukwu/reconcilation/internal/worker"
	"github.com/jayjaychukwu/reconcilation/pkg/constants"
	"github.com/jayjaychukwu/reconcilation/pkg/errors"
	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
	"github.com/jayjaychukwu/reconcilation/pkg/report"
)

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	store  *store.Store
	files  *store.Files
	pool   *worker.Pool
	logger *zerolog.Logger
}

// New creates a handlers instance.
func New(s *store.Store, files *store.Files, pool *worker.Pool, logger *zerolog.Logger) *Handlers {
	return &Handlers{store: s, files: files, pool: pool, logger: logger}
}

// jobView is the wire representation of a job record.
type jobView struct {
	TaskID          string           `json:"task_id"`
	Status          reconcile.Status `json:"status"`
	MissingInTarget json.RawMessage  `json:"missing_data_in_target_file"`
	MissingInSource json.RawMessage  `json:"missing_data_in_source_file"`
	Discrepancies   json.RawMessage  `json:"discrepancies"`
	Error           string           `json:"error,omitempty"`
}

func viewOf(rec *store.Record) jobView {
	return jobView{
		TaskID:          rec.TaskID,
		Status:          rec.Status,
		MissingInTarget: rec.MissingInTarget,
		MissingInSource: rec.MissingInSource,
		Discrepancies:   rec.Discrepancies,
		Error:           rec.ErrorMessage,
	}
}

// HandleUpload accepts two multipart CSV files, persists them, creates a
// PROCESSING job record, and enqueues it for asynchronous reconciliation.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(2 * constants.MaxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form", err.Error())
		return
	}

	sourceData, err := readUpload(r, "source_file")
	if err != nil {
		response.UnprocessableEntity(w, err.Error(), "")
		return
	}
	targetData, err := readUpload(r, "target_file")
	if err != nil {
		response.UnprocessableEntity(w, err.Error(), "")
		return
	}

	sourcePath, err := h.files.SaveSource(formFileName(r, "source_file"), sourceData)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to persist source upload")
		response.InternalError(w, err)
		return
	}
	targetPath, err := h.files.SaveTarget(formFileName(r, "target_file"), targetData)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to persist target upload")
		response.InternalError(w, err)
		return
	}

	rec, err := h.store.Create(r.Context(), sourcePath, targetPath)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create job record")
		response.InternalError(w, err)
		return
	}

	if err := h.pool.Enqueue(rec.TaskID); err != nil {
		h.logger.Error().Err(err).Str("task_id", rec.TaskID).Msg("failed to enqueue job")
		if failErr := h.store.MarkFailed(r.Context(), rec.TaskID, err.Error()); failErr != nil {
			h.logger.Error().Err(failErr).Str("task_id", rec.TaskID).Msg("failed to mark job failed")
		}
		response.InternalError(w, err)
		return
	}

	h.logger.Info().Str("task_id", rec.TaskID).Msg("reconciliation job accepted")
	response.Accepted(w, map[string]any{
		"id":      rec.TaskID,
		"message": "please use this ID to get your reconciliation result",
	})
}

// HandleGetJob returns job status and, once terminal, the result sections.
func (h *Handlers) HandleGetJob(w http.ResponseWriter, r *http.Request, taskID string) {
	rec, err := h.store.Get(r.Context(), taskID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var message string
	switch rec.Status {
	case reconcile.StatusProcessing:
		message = "this task is still processing"
	case reconcile.StatusSuccess:
		message = "this task was successful"
	default:
		message = "there was an issue processing this task, please reupload"
	}

	response.OK(w, map[string]any{
		"message": message,
		"record":  viewOf(rec),
	})
}

// HandleReport streams a rendered report document for a successful job.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request, taskID, formatName string) {
	format, err := report.ParseFormat(formatName)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	rec, err := h.store.Get(r.Context(), taskID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	switch rec.Status {
	case reconcile.StatusProcessing:
		response.Conflict(w, "this task is still processing", "")
		return
	case reconcile.StatusFailed:
		response.Conflict(w, "this task failed, no report is available", rec.ErrorMessage)
		return
	}

	result, err := resultOf(rec)
	if err != nil {
		h.logger.Error().Err(err).Str("task_id", taskID).Msg("stored result is unreadable")
		response.InternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename(taskID)+`"`)
	if err := report.Render(w, result, format); err != nil {
		h.logger.Error().Err(err).Str("task_id", taskID).Msg("report rendering failed")
	}
}

// resultOf rebuilds the reconciliation result from the stored sections.
func resultOf(rec *store.Record) (*reconcile.Result, error) {
	result := &reconcile.Result{Status: rec.Status}
	if err := json.Unmarshal(rec.MissingInTarget, &result.MissingInTarget); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rec.MissingInSource, &result.MissingInSource); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rec.Discrepancies, &result.Discrepancies); err != nil {
		return nil, err
	}
	return result, nil
}

// readUpload extracts and validates one CSV file from the form.
func readUpload(r *http.Request, field string) ([]byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, errors.NewValidationError(field, nil, "file is required")
	}
	defer file.Close()

	if err := validateCSVUpload(field, header); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes+1))
	if err != nil {
		return nil, errors.WrapIO("read", header.Filename, err)
	}
	if int64(len(data)) > constants.MaxUploadBytes {
		return nil, errors.NewValidationError(field, header.Filename, "file exceeds the maximum upload size")
	}
	return data, nil
}

// validateCSVUpload requires a .csv name and, when the client sent one,
// a text/csv content type.
func validateCSVUpload(field string, header *multipart.FileHeader) error {
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		return errors.NewValidationError(field, header.Filename, "the uploaded file must be a CSV file")
	}
	if ct := header.Header.Get("Content-Type"); ct != "" {
		if mediaType := strings.TrimSpace(strings.Split(ct, ";")[0]); mediaType != "text/csv" && mediaType != "application/vnd.ms-excel" && mediaType != "application/octet-stream" {
			return errors.NewValidationError(field, ct, "invalid file type, the file must be of type 'text/csv'")
		}
	}
	return nil
}

func formFileName(r *http.Request, field string) string {
	if _, header, err := r.FormFile(field); err == nil {
		return header.Filename
	}
	return "upload.csv"
}
