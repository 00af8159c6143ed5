package web

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tfgate/guarantees/internal/core"
)

// handleListFiles returns the uploads visible to the actor.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.service.FilesFor(r.Context(), actorFrom(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// handleUploadFile stores a multipart upload verbatim. The declared
// type is the filename extension; it is not validated here, so an
// unsupported upload still lands and fails visibly when processed.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or oversized file upload")
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file upload")
		return
	}

	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	f, err := s.service.StoreFile(r.Context(), actorFrom(r), header.Filename, ext, contents)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	f, err := s.service.FileByID(r.Context(), actorFrom(r), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// handleFileContents serves the stored payload back for inspection.
func (s *Server) handleFileContents(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	f, err := s.service.FileByID(r.Context(), actorFrom(r), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(f.FileType))
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(f.FileContents)
}

// handleProcessFile triggers ingestion for an uploaded file and
// returns the batch outcome.
func (s *Server) handleProcessFile(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	result, done, err := s.service.ProcessFile(r.Context(), actorFrom(r), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !done {
		// Either the actor may not process this file, it already left
		// the uploaded state, or it just failed parsing. The file
		// record carries the outcome either way.
		f, ferr := s.service.FileByID(r.Context(), actorFrom(r), id)
		if ferr != nil {
			s.respondError(w, r, ferr)
			return
		}
		writeJSON(w, http.StatusConflict, f)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSample serves an example upload payload for a format.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	data, contentType, ok := core.SamplePayload(format)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown sample format")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="sample.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func contentTypeFor(fileType string) string {
	switch strings.ToLower(fileType) {
	case "csv":
		return "text/csv"
	case "json":
		return "application/json"
	case "xml":
		return "application/xml"
	default:
		return "application/octet-stream"
	}
}
