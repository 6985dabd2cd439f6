package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/dmitrymomot/locmark/pkg/i18n"
	"github.com/dmitrymomot/locmark/pkg/logger"
	"github.com/dmitrymomot/locmark/pkg/plural"
	"github.com/dmitrymomot/locmark/pkg/shape"
)

// Output formats of POST /v1/resolve.
const (
	FormatText         = "text"
	FormatHTML         = "html"
	FormatMarkdown     = "markdown"
	// FormatMarkdownHTML renders the markdown form to sanitized HTML.
	FormatMarkdownHTML = "markdown_html"
)

// ResolveRequest is the body of POST /v1/resolve.
type ResolveRequest struct {
	Template     string            `json:"template"`
	Language     string            `json:"language,omitempty"`
	Placeholders map[string]any    `json:"placeholders,omitempty"`
	Dictionary   map[string]string `json:"dictionary,omitempty"`
	Count        *json.Number      `json:"count,omitempty"`
	Choice       *int              `json:"choice,omitempty"`
	Format       string            `json:"format,omitempty"`
}

// ResolveResponse is the answer of POST /v1/resolve.
type ResolveResponse struct {
	Language    string         `json:"language"`
	Format      string         `json:"format"`
	Output      string         `json:"output"`
	Runs        []shape.Run    `json:"runs"`
	Diagnostics []logger.Entry `json:"diagnostics"`
}

var formats = []string{FormatText, FormatHTML, FormatMarkdown, FormatMarkdownHTML}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var req ResolveRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	format := req.Format
	if format == "" {
		format = FormatText
	}
	if !slices.Contains(formats, format) {
		writeError(w, http.StatusBadRequest, "unknown format "+format)
		return
	}

	lang := req.Language
	if lang == "" {
		lang = i18n.ParseAcceptLanguage(r.Header.Get("Accept-Language"), s.catalog.Languages())
	}
	if lang == "" {
		lang = s.catalog.DefaultLanguage()
	}

	out, diagnostics, err := s.catalog.Preview(r.Context(), lang, req.Template, req.args())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := ResolveResponse{
		Language:    lang,
		Format:      format,
		Runs:        out.Runs(),
		Diagnostics: diagnostics,
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []logger.Entry{}
	}

	switch format {
	case FormatHTML:
		resp.Output, err = shape.RenderHTML(r.Context(), out)
	case FormatMarkdown:
		resp.Output = out.Markdown()
	case FormatMarkdownHTML:
		resp.Output, err = shape.RenderMarkdown(out)
	default:
		resp.Output = out.String()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default":   s.catalog.DefaultLanguage(),
		"languages": s.catalog.Languages(),
	})
}

// args flattens the request into catalog arguments. Placeholders override
// dictionary keys of the same name; numeric placeholders keep their exact
// decimal digits.
func (req ResolveRequest) args() i18n.M {
	args := make(i18n.M, len(req.Placeholders)+len(req.Dictionary)+2)
	for k, v := range req.Dictionary {
		args[k] = v
	}
	for k, v := range req.Placeholders {
		if n, ok := v.(json.Number); ok {
			if pv, err := plural.ParseValue(n.String()); err == nil {
				v = pv
			}
		}
		args[k] = v
	}
	if req.Count != nil {
		args[i18n.CountArg] = req.Count.String()
	}
	if req.Choice != nil {
		args[i18n.ChoiceArg] = *req.Choice
	}
	return args
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
