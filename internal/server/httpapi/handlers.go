package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/models"
	"github.com/dmitrijs2005/reportdrop/internal/server/auth"
	"github.com/dmitrijs2005/reportdrop/internal/upload"
	"github.com/dmitrijs2005/reportdrop/internal/validator"
)

const (
	maxAuthBodyBytes   = 16 << 10
	multipartMemory    = 8 << 20
	uploadFormFieldKey = "files"
)

type errorResponse struct {
	Error        string `json:"error"`
	AuthRequired bool   `json:"authRequired,omitempty"`
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string           `json:"token"`
	Identity *models.Identity `json:"identity"`
}

type rejectedFile struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type uploadResponse struct {
	Result   *models.BatchResult `json:"result"`
	Rejected []rejectedFile      `json:"rejected"`
	Message  string              `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error:        common.UserMessage(err),
		AuthRequired: status == http.StatusUnauthorized,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, common.ErrMissingFields),
		errors.Is(err, common.ErrPasswordMismatch),
		errors.Is(err, common.ErrPasswordTooShort),
		errors.Is(err, common.ErrInvalidEmail),
		errors.Is(err, common.ErrEmptySelection),
		errors.Is(err, common.ErrNoFile),
		errors.Is(err, common.ErrWrongExtension),
		errors.Is(err, common.ErrTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrStorageNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxAuthBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return common.ErrMissingFields
	}
	return nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := s.opts.Identities.Register(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.issueToken(w, r, http.StatusCreated, id)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := s.opts.Identities.Validate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.issueToken(w, r, http.StatusOK, id)
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, status int, id *models.Identity) {
	token, err := auth.GenerateToken(id, s.opts.SecretKey, s.opts.TokenValidity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, authResponse{Token: token, Identity: id})
}

// tokenSession is the per-request authentication state derived from a
// bearer token.
type tokenSession struct {
	identity *models.Identity
}

func (t tokenSession) IsAuthenticated() bool { return t.identity != nil }

func (s *Server) sessionFromRequest(r *http.Request) (tokenSession, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return tokenSession{}, common.ErrUnauthenticated
	}

	id, err := auth.ParseToken(strings.TrimSpace(token), s.opts.SecretKey)
	if err != nil {
		return tokenSession{}, err
	}
	return tokenSession{identity: id}, nil
}

// formFile exposes a multipart part as a models.Opener.
type formFile struct {
	header *multipart.FileHeader
}

func (f formFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}

func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeError(w, r, common.ErrUnauthenticated)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxRequestBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request too large"})
			return
		}
		s.writeError(w, r, common.ErrEmptySelection)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[uploadFormFieldKey]
	files := make([]models.SelectedFile, 0, len(headers))
	for _, h := range headers {
		files = append(files, models.SelectedFile{Name: h.Filename, SizeBytes: h.Size, Handle: formFile{header: h}})
	}

	valid, rejected := validator.Filter(files, s.opts.Policy)
	rejectedOut := make([]rejectedFile, 0, len(rejected))
	for _, rj := range rejected {
		rejectedOut = append(rejectedOut, rejectedFile{File: rj.File, Error: common.UserMessage(rj.Err)})
	}

	if len(files) > 0 && len(valid) == 0 {
		writeJSON(w, http.StatusBadRequest, uploadResponse{
			Rejected: rejectedOut,
			Message:  "none of the selected files can be uploaded",
		})
		return
	}

	orch := upload.NewOrchestrator(session, s.opts.Transport, s.logger, upload.WithClock(s.clock.Now))
	result, err := orch.Submit(r.Context(), valid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "batch uploaded",
		"user", session.identity.Email, "succeeded", result.SucceededCount, "failed", result.FailedCount)

	writeJSON(w, http.StatusOK, uploadResponse{Result: result, Rejected: rejectedOut, Message: result.Summary()})
}
