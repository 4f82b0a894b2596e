// Package server provides an HTTP service for storing context-free grammars
// and serving analysis reports and parses over them.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/ashware/chomsky"
	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/server/dao"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// PathPrefix is the prefix of all paths in the API.
const PathPrefix = "/v1"

// Server is a grammar analysis HTTP server.
//
//   - POST   /v1/grammars           - store a new grammar
//   - GET    /v1/grammars           - list stored grammars
//   - GET    /v1/grammars/{id}      - get a stored grammar
//   - DELETE /v1/grammars/{id}      - delete a stored grammar
//   - GET    /v1/grammars/{id}/report?op=...&format=... - analysis output
//   - POST   /v1/grammars/{id}/parse - parse an input string
type Server struct {
	router chi.Router
	db     dao.Store
}

// New creates a Server from a config, connecting its persistence layer.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router: chi.NewRouter(),
		db:     db,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Route(PathPrefix+"/grammars", func(r chi.Router) {
		r.Post("/", s.handleCreateGrammar)
		r.Get("/", s.handleListGrammars)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGrammar)
			r.Delete("/", s.handleDeleteGrammar)
			r.Get("/report", s.handleReport)
			r.Post("/parse", s.handleParse)
		})
	})

	return s, nil
}

// ServeForever listens on the given address until the server fails.
func (s *Server) ServeForever(address string, port int) error {
	defer s.db.Close()
	listenOn := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  listening on %s", listenOn)
	return http.ListenAndServe(listenOn, s.router)
}

// Router returns the server's HTTP handler, for mounting or testing.
func (s *Server) Router() http.Handler {
	return s.router
}

// GrammarModel is the JSON shape of a stored grammar.
type GrammarModel struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
	Text   string `json:"text"`
}

// CreateGrammarRequest is the body of POST /v1/grammars.
type CreateGrammarRequest struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Text   string `json:"text"`
}

// ParseRequest is the body of POST /v1/grammars/{id}/parse.
type ParseRequest struct {
	Input  string `json:"input"`
	Parser string `json:"parser"`
}

// ParseResponse is the result of a parse request.
type ParseResponse struct {
	Parser  string `json:"parser"`
	Indices []int  `json:"indices"`
	TreeDOT string `json:"treeDot"`
}

func toModel(g dao.Grammar) GrammarModel {
	return GrammarModel{
		ID:     g.ID.String(),
		Name:   g.Name,
		Format: g.Format,
		Text:   g.Text,
	}
}

func (s *Server) handleCreateGrammar(w http.ResponseWriter, req *http.Request) {
	var body CreateGrammarRequest
	if err := parseJSON(req, &body); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	// reject text that does not actually parse as a grammar
	snap := chomsky.Snapshot{Name: body.Name, Format: body.Format, Text: body.Text}
	if _, err := snap.Grammar(); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := s.db.Grammars().Create(req.Context(), dao.Grammar{
		Name:   body.Name,
		Format: body.Format,
		Text:   body.Text,
	})
	if err != nil {
		httpError(w, http.StatusInternalServerError, "could not store grammar")
		log.Printf("ERROR store grammar: %v", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	renderJSON(w, toModel(stored))
}

func (s *Server) handleListGrammars(w http.ResponseWriter, req *http.Request) {
	all, err := s.db.Grammars().GetAll(req.Context())
	if err != nil {
		httpError(w, http.StatusInternalServerError, "could not list grammars")
		log.Printf("ERROR list grammars: %v", err)
		return
	}

	models := make([]GrammarModel, len(all))
	for i := range all {
		models[i] = toModel(all[i])
	}
	renderJSON(w, models)
}

func (s *Server) handleGetGrammar(w http.ResponseWriter, req *http.Request) {
	stored, ok := s.lookupGrammar(w, req)
	if !ok {
		return
	}
	renderJSON(w, toModel(stored))
}

func (s *Server) handleDeleteGrammar(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		httpError(w, http.StatusNotFound, "the requested resource was not found")
		return
	}

	if _, err := s.db.Grammars().Delete(req.Context(), id); err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			httpError(w, http.StatusNotFound, "the requested resource was not found")
		} else {
			httpError(w, http.StatusInternalServerError, "could not delete grammar")
			log.Printf("ERROR delete grammar: %v", err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, req *http.Request) {
	stored, ok := s.lookupGrammar(w, req)
	if !ok {
		return
	}

	opStr := req.URL.Query().Get("op")
	if opStr == "" {
		opStr = string(chomsky.OpReport)
	}
	op, err := chomsky.ParseOperation(opStr)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	formatStr := req.URL.Query().Get("format")
	if formatStr == "" {
		formatStr = string(chomsky.FormatText)
	}
	format, err := chomsky.ParseOutputFormat(formatStr)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := chomsky.Snapshot{Name: stored.Name, Format: stored.Format, Text: stored.Text}.Grammar()
	if err != nil {
		httpError(w, http.StatusInternalServerError, "stored grammar no longer parses: "+err.Error())
		return
	}

	out, err := chomsky.Run(g, op, format)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch format {
	case chomsky.FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	io.WriteString(w, out)
}

func (s *Server) handleParse(w http.ResponseWriter, req *http.Request) {
	stored, ok := s.lookupGrammar(w, req)
	if !ok {
		return
	}

	var body ParseRequest
	if err := parseJSON(req, &body); err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind, err := chomsky.ParseParserKind(body.Parser)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := chomsky.Snapshot{Name: stored.Name, Format: stored.Format, Text: stored.Text}.Grammar()
	if err != nil {
		httpError(w, http.StatusInternalServerError, "stored grammar no longer parses: "+err.Error())
		return
	}

	res, err := chomsky.ParseInput(g, kind, chomsky.Tokens(g, body.Input), nil)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, cfgerrors.ErrParseFailure) {
			status = http.StatusUnprocessableEntity
		}
		httpError(w, status, err.Error())
		return
	}

	renderJSON(w, ParseResponse{
		Parser:  string(res.Parser),
		Indices: res.Indices,
		TreeDOT: res.TreeDOT(),
	})
}

// lookupGrammar fetches the grammar named by the id URL parameter, writing
// the error response itself when the lookup fails.
func (s *Server) lookupGrammar(w http.ResponseWriter, req *http.Request) (dao.Grammar, bool) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		httpError(w, http.StatusNotFound, "the requested resource was not found")
		return dao.Grammar{}, false
	}

	stored, err := s.db.Grammars().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			httpError(w, http.StatusNotFound, "the requested resource was not found")
		} else {
			httpError(w, http.StatusInternalServerError, "could not load grammar")
			log.Printf("ERROR load grammar: %v", err)
		}
		return dao.Grammar{}, false
	}
	return stored, true
}

func httpError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}

func renderJSON(w http.ResponseWriter, v interface{}) {
	js, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

// parseJSON decodes a JSON request body into v, which must be a pointer.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}

	err = json.Unmarshal(bodyData, v)
	if err != nil {
		return fmt.Errorf("malformed JSON in request")
	}

	return nil
}
