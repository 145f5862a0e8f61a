package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ukaji3/exmerge-go/pkg/exmerge/models"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/placeholder"
	"github.com/ukaji3/exmerge-go/pkg/exmerge/session"
)

const defaultPageSize = 50

// multipartMemory is the part of an upload kept in memory before spilling to disk.
const multipartMemory = 8 << 20

func (s *Server) session(r *http.Request) (*session.Session, error) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		return nil, errSessionNotFound
	}
	return sess, nil
}

type createdResponse struct {
	ID      string          `json:"id"`
	Summary session.Summary `json:"session"`
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) error {
	id, sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, createdResponse{ID: id, Summary: sess.Summary()})
	return nil
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, sess.Summary())
	return nil
}

// resetSession restores a session to its initial state, or removes it
// from the registry when ?remove=true.
func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if remove, _ := strconv.ParseBool(r.URL.Query().Get("remove")); remove {
		if !s.sessions.Remove(id) {
			return errSessionNotFound
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	sess, err := s.session(r)
	if err != nil {
		return err
	}
	sess.Reset()
	writeJSON(w, http.StatusOK, sess.Summary())
	return nil
}

func (s *Server) uploadData(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}

	if limit := s.cfg.Server.MaxUploadMB; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit<<20)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return wrapHTTPError(http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return wrapHTTPError(http.StatusBadRequest, fmt.Errorf("missing form file %q: %w", "file", err))
	}
	defer file.Close()

	if err := sess.LoadReader(r.Context(), file, header.Filename); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, sess.Summary())
	return nil
}

func (s *Server) clearData(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}
	sess.ClearData()
	writeJSON(w, http.StatusOK, sess.Summary())
	return nil
}

// templateRequest updates the fields that are present.
type templateRequest struct {
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
}

func (s *Server) putTemplate(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}

	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Subject != nil {
		sess.SetSubject(*req.Subject)
	}
	if req.Body != nil {
		sess.SetBody(*req.Body)
	}
	return s.writeFields(w, sess)
}

type fieldsResponse struct {
	Fields      []string            `json:"fields"`
	Suggestions []string            `json:"suggestions"`
	Formats     map[string][]string `json:"formats"`
	Mapped      []string            `json:"mapped"`
	Unmapped    []string            `json:"unmapped"`
	Previews    map[string][]string `json:"previews"`
}

func (s *Server) getFields(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}
	return s.writeFields(w, sess)
}

func (s *Server) writeFields(w http.ResponseWriter, sess *session.Session) error {
	fields := sess.Fields()
	resp := fieldsResponse{
		Fields:      fields,
		Suggestions: sess.Suggestions(),
		Formats:     make(map[string][]string, len(fields)),
		Mapped:      sess.MappedFields(),
		Unmapped:    sess.UnmappedFields(),
		Previews:    make(map[string][]string),
	}
	for _, f := range fields {
		resp.Formats[f] = placeholder.Formats(f)
	}
	for _, e := range sess.Mapping().Entries() {
		resp.Previews[e.Placeholder] = sess.ColumnPreview(e.Column)
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

type mappingResponse struct {
	Mapping  models.FieldMapping `json:"mapping"`
	Mapped   []string            `json:"mapped"`
	Unmapped []string            `json:"unmapped"`
}

func (s *Server) putMapping(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}

	var m models.FieldMapping
	if err := decodeJSON(r, &m); err != nil {
		return err
	}
	sess.ReplaceMapping(m)
	writeMapping(w, sess)
	return nil
}

func (s *Server) autoMap(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}
	sess.AutoMap()
	writeMapping(w, sess)
	return nil
}

func writeMapping(w http.ResponseWriter, sess *session.Session) {
	writeJSON(w, http.StatusOK, mappingResponse{
		Mapping:  sess.Mapping(),
		Mapped:   sess.MappedFields(),
		Unmapped: sess.UnmappedFields(),
	})
}

type emailsResponse struct {
	Total      int                     `json:"total"`
	Offset     int                     `json:"offset"`
	Statistics models.Statistics       `json:"statistics"`
	Emails     []models.GeneratedEmail `json:"emails"`
}

func (s *Server) listEmails(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}

	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil {
		return err
	}

	emails, total := sess.Page(offset, limit)
	writeJSON(w, http.StatusOK, emailsResponse{
		Total:      total,
		Offset:     offset,
		Statistics: sess.Stats(),
		Emails:     emails,
	})
	return nil
}

func (s *Server) getEmail(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, "email id must be an integer")
	}
	email, ok := sess.Email(n)
	if !ok {
		return NewHTTPError(http.StatusNotFound, fmt.Sprintf("email %d not found", n))
	}
	writeJSON(w, http.StatusOK, email)
	return nil
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}

	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	a, err := sess.Export(chi.URLParam(r, "format"), pretty)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", a.MediaType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Content)
	return nil
}

type stepRequest struct {
	Step session.Step `json:"step"`
}

type stepResponse struct {
	Step  session.Step       `json:"step"`
	Steps []session.StepInfo `json:"steps"`
}

func (s *Server) putStep(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}

	var req stepRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if !sess.GoTo(req.Step) {
		return NewHTTPError(http.StatusConflict, fmt.Sprintf("step %d is not available yet", req.Step))
	}
	writeJSON(w, http.StatusOK, stepResponse{Step: sess.Step(), Steps: sess.Steps()})
	return nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a non-negative integer", key))
	}
	return n, nil
}
