package http

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/deckfold/deckfold/internal/adapters/secondary/parser"
	"github.com/deckfold/deckfold/internal/domain/entities"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// PresentationResponse describes the loaded presentation
type PresentationResponse struct {
	Title       string                 `json:"title"`
	Format      string                 `json:"format"`
	SlideCount  int                    `json:"slide_count"`
	SlideTitles []string               `json:"slide_titles"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Slides      []SlideResponse        `json:"slides"`
}

// SlideResponse represents a single slide in the API response
type SlideResponse struct {
	ID        string          `json:"id"`
	Index     int             `json:"index"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	HTML      string          `json:"html,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	NotesHTML string          `json:"notes_html,omitempty"`
	StartLine int             `json:"start_line"`
	EndLine   int             `json:"end_line"`
	Chunks    []ChunkResponse `json:"chunks"`
}

// ChunkResponse represents a content chunk in the API response
type ChunkResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Code    string `json:"code,omitempty"`
}

// UpdateSlideRequest is the body of PUT /api/slides/{index}
type UpdateSlideRequest struct {
	Content string `json:"content"`
}

// ConfigResponse represents the configuration API response
type ConfigResponse struct {
	Version      string `json:"version"`
	WebSocketURL string `json:"websocket_url"`
	LiveReload   bool   `json:"live_reload"`
}

// handlePresentation returns the full presentation, rendered
func (s *Server) handlePresentation(w http.ResponseWriter, r *http.Request) {
	presentation := s.presenter.CurrentPresentation()
	if presentation == nil {
		s.handleError(w, errors.New("no presentation loaded"), http.StatusNotFound)
		return
	}

	response, err := s.presentationResponse(r, presentation, true)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, response)
}

// handleSlides returns the slide list without rendered HTML
func (s *Server) handleSlides(w http.ResponseWriter, r *http.Request) {
	presentation := s.presenter.CurrentPresentation()
	if presentation == nil {
		s.handleError(w, errors.New("no presentation loaded"), http.StatusNotFound)
		return
	}

	response, err := s.presentationResponse(r, presentation, false)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, response)
}

// handleGetSlide returns a single slide by index
func (s *Server) handleGetSlide(w http.ResponseWriter, r *http.Request) {
	presentation := s.presenter.CurrentPresentation()
	if presentation == nil {
		s.handleError(w, errors.New("no presentation loaded"), http.StatusNotFound)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}

	slide, err := presentation.GetSlideByIndex(index)
	if err != nil {
		s.handleError(w, err, http.StatusNotFound)
		return
	}

	s.writeJSON(w, slideResponse(*slide))
}

// handleUpdateSlide replaces one slide's content and broadcasts a reload
func (s *Server) handleUpdateSlide(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}

	var req UpdateSlideRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}

	updated, err := s.presenter.UpdateSlide(r.Context(), index, req.Content)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, parser.ErrSlideIndexOutOfRange) {
			status = http.StatusNotFound
		}
		s.handleError(w, err, status)
		return
	}

	s.BroadcastReload()

	slide, err := updated.GetSlideByIndex(index)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, slideResponse(*slide))
}

// handleExportMarkdown returns the serialized markdown document
func (s *Server) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	markdown, err := s.presenter.ExportMarkdown(r.Context())
	if err != nil {
		s.handleError(w, err, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="presentation.md"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(markdown)); err != nil {
		s.logger.Error("failed to write export response: %v", err)
	}
}

// handleConfig returns the client-facing server configuration
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, ConfigResponse{
		Version:      "1.0.0",
		WebSocketURL: "/ws",
		LiveReload:   true,
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/mermaid@10/dist/mermaid.min.js"></script>
</head>
<body>
{{range .Slides}}<section class="slide">{{.HTML}}</section>
{{end}}
<script>
mermaid.initialize({startOnLoad: true});
var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = function(msg) {
  var event = JSON.parse(msg.data);
  if (event.type === "reload") { location.reload(); }
};
</script>
</body>
</html>
`))

type indexSlide struct {
	HTML template.HTML
}

type indexPage struct {
	Title  string
	Slides []indexSlide
}

// handleIndex serves the preview page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	presentation := s.presenter.CurrentPresentation()
	if presentation == nil {
		http.Error(w, "No presentation loaded", http.StatusNotFound)
		return
	}

	rendered, err := s.presenter.RenderSlides(r.Context(), presentation)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	page := indexPage{Title: presentation.Title()}
	if page.Title == "" {
		page.Title = "deckfold"
	}
	for _, rs := range rendered {
		page.Slides = append(page.Slides, indexSlide{HTML: template.HTML(rs.HTML)}) // #nosec G203 - HTML comes from the local renderer
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		s.logger.Error("failed to render index page: %v", err)
	}
}

// presentationResponse builds the API view of a presentation
func (s *Server) presentationResponse(r *http.Request, p *entities.Presentation, withHTML bool) (*PresentationResponse, error) {
	response := &PresentationResponse{
		Title:       p.Title(),
		Format:      string(p.Format),
		SlideCount:  p.SlideCount(),
		SlideTitles: p.SlideTitles(),
		Metadata:    p.Metadata,
		Slides:      make([]SlideResponse, 0, len(p.Slides)),
	}

	if withHTML {
		rendered, err := s.presenter.RenderSlides(r.Context(), p)
		if err != nil {
			return nil, err
		}
		for _, rs := range rendered {
			sr := slideResponse(*rs.Slide)
			sr.HTML = rs.HTML
			sr.NotesHTML = rs.NotesHTML
			response.Slides = append(response.Slides, sr)
		}
		return response, nil
	}

	for _, slide := range p.Slides {
		response.Slides = append(response.Slides, slideResponse(slide))
	}
	return response, nil
}

// slideResponse builds the API view of one slide
func slideResponse(slide entities.Slide) SlideResponse {
	chunks := make([]ChunkResponse, 0, len(slide.Chunks))
	for _, chunk := range slide.Chunks {
		chunks = append(chunks, ChunkResponse{
			ID:      chunk.ID,
			Type:    string(chunk.Type),
			Content: chunk.Content,
			Code:    chunk.Code,
		})
	}

	return SlideResponse{
		ID:        slide.ID,
		Index:     slide.Index,
		Title:     slide.Title,
		Content:   slide.Location.Content,
		Notes:     slide.Notes,
		StartLine: slide.Location.StartLine,
		EndLine:   slide.Location.EndLine,
		Chunks:    chunks,
	}
}

// handleError writes a sanitized error response and logs the real error
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	var message string
	switch status {
	case http.StatusBadRequest:
		message = "Invalid request"
	case http.StatusNotFound:
		message = "Resource not found"
	case http.StatusMethodNotAllowed:
		message = "Method not allowed"
	case http.StatusInternalServerError:
		message = "Internal server error"
	default:
		message = "An error occurred"
	}

	s.logger.Error("HTTP error (status %d): %v", status, err)

	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("failed to encode error response: %v", err)
	}
}

// writeJSON writes a JSON response with status 200
func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}
