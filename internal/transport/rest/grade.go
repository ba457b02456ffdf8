package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/hangyeol/internal/service/analysis"
	"github.com/heartmarshall/hangyeol/pkg/textenc"
)

type gradeService interface {
	Grade(ctx context.Context, sentence string) (*analysis.Result, error)
	GradeText(ctx context.Context, text string) ([]*analysis.Result, error)
}

// GradeHandler serves sentence and file grading.
type GradeHandler struct {
	svc     gradeService
	maxBody int64
	log     *slog.Logger
}

// NewGradeHandler creates a GradeHandler. maxBody caps request bodies.
func NewGradeHandler(svc gradeService, maxBody int64, logger *slog.Logger) *GradeHandler {
	return &GradeHandler{svc: svc, maxBody: maxBody, log: logger.With("handler", "grade")}
}

type gradeRequest struct {
	Sentence string `json:"sentence"`
}

type gradeFileResponse struct {
	Results []*analysis.Result `json:"results"`
	Count   int                `json:"count"`
}

// Grade handles POST /api/grade.
//
// Engine-level failures answer with the sentinel result (grade label and
// message) so clients can display them in place of a grade.
func (h *GradeHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		h.badBody(w, r, err)
		return
	}

	res, err := h.svc.Grade(r.Context(), req.Sentence)
	if err != nil {
		if fail, ok := analysis.Failure(req.Sentence, err); ok {
			writeJSON(w, statusFor(err), fail)
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// GradeFile handles POST /api/grade/file. The body is plain text in UTF-8
// or CP949; every non-empty line is graded.
func (h *GradeHandler) GradeFile(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		h.badBody(w, r, err)
		return
	}
	text, err := textenc.Decode(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported text encoding")
		return
	}

	results, err := h.svc.GradeText(r.Context(), text)
	if err != nil {
		if fail, ok := analysis.Failure("", err); ok {
			writeJSON(w, statusFor(err), fail)
			return
		}
		handleError(w, r, h.log, err)
		return
	}
	if results == nil {
		results = []*analysis.Result{}
	}

	writeJSON(w, http.StatusOK, gradeFileResponse{Results: results, Count: len(results)})
}

func (h *GradeHandler) badBody(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request body")
}
