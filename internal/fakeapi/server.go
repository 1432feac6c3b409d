// Package fakeapi is an in-memory content API used by tests and local demos.
// It mirrors the real backend's routes, pagination and plain-text errors.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mmcdole/hema/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	paramID         = "id"
)

// Catalogue is the data served by the fake API
type Catalogue struct {
	Books      []domain.FightingBook
	Chapters   map[int][]domain.Chapter   // by book ID
	Techniques map[int][]domain.Technique // by chapter ID
}

// Server serves a Catalogue over the content API routes
type Server struct {
	mu       sync.Mutex
	cat      Catalogue
	requests map[string]int
	failures map[string][]int // path -> statuses to return before succeeding
	router   chi.Router
}

// New creates a fake API serving cat
func New(cat Catalogue) *Server {
	s := &Server{
		cat:      cat,
		requests: make(map[string]int),
		failures: make(map[string][]int),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.track)

	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/fighting-books", s.listBooks)
		r.Get("/fighting-books/{id}", s.getBook)
		r.Get("/fighting-books/{id}/chapters", s.listChapters)
		r.Get("/chapters/{id}/techniques", s.listTechniques)
	})
	s.router = r
	return s
}

// Start serves on a local httptest server; the caller closes it
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Requests returns how many requests reached path
func (s *Server) Requests(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

// FailNext makes the next requests for path fail with the given statuses, in order
func (s *Server) FailNext(path string, statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = append(s.failures[path], statuses...)
}

// SetBooks replaces the book list
func (s *Server) SetBooks(books []domain.FightingBook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cat.Books = books
}

// track counts requests and injects queued failures
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.URL.Path]++
		status := 0
		if queued := s.failures[r.URL.Path]; len(queued) > 0 {
			status = queued[0]
			s.failures[r.URL.Path] = queued[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, domain.Health{Status: "healthy", Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	page := intParam(r, "page", 1)
	pageSize := intParam(r, "page_size", defaultPageSize)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	s.mu.Lock()
	books := s.cat.Books
	s.mu.Unlock()

	total := len(books)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)
	totalPages := max((total+pageSize-1)/pageSize, 1)

	data := append([]domain.FightingBook{}, books[start:end]...)
	writeJSON(w, domain.Page[domain.FightingBook]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	})
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid fighting book ID")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.cat.Books {
		if b.ID == id {
			writeJSON(w, b)
			return
		}
	}
	http.Error(w, "fighting book not found", http.StatusNotFound)
}

func (s *Server) listChapters(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid fighting book ID")
	if !ok {
		return
	}
	s.mu.Lock()
	chapters, found := s.cat.Chapters[id]
	s.mu.Unlock()
	if !found {
		http.Error(w, "fighting book not found", http.StatusNotFound)
		return
	}
	writeJSON(w, append([]domain.Chapter{}, chapters...))
}

func (s *Server) listTechniques(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid chapter ID")
	if !ok {
		return
	}
	s.mu.Lock()
	techniques, found := s.cat.Techniques[id]
	s.mu.Unlock()
	if !found {
		http.Error(w, "chapter not found", http.StatusNotFound)
		return
	}
	writeJSON(w, append([]domain.Technique{}, techniques...))
}

func pathID(w http.ResponseWriter, r *http.Request, msg string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, paramID))
	if err != nil {
		http.Error(w, msg, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func intParam(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Sample returns a small catalogue for demos and tests
func Sample() Catalogue {
	year := func(y int) *int { return &y }
	video := func(u string) *string { return &u }

	return Catalogue{
		Books: []domain.FightingBook{
			{ID: 1, SwordMasterID: 1, Title: "Fior di Battaglia", SwordMasterName: "Fiore dei Liberi", PublicationYear: year(1409),
				Description: "Italian treatise covering wrestling, dagger, sword, spear and mounted combat."},
			{ID: 2, SwordMasterID: 2, Title: "MS 3227a", SwordMasterName: "Hanko Döbringer", PublicationYear: year(1389),
				Description: "Earliest surviving record of the Liechtenauer tradition."},
			{ID: 3, SwordMasterID: 3, Title: "Opera Nova", SwordMasterName: "Achille Marozzo", PublicationYear: year(1536),
				Description: "Bolognese manual of sword and buckler."},
			{ID: 4, SwordMasterID: 4, Title: "Anonymous Gladiatoria", SwordMasterName: "Unknown",
				Description: "Armoured combat in the German tradition."},
		},
		Chapters: map[int][]domain.Chapter{
			1: {
				{ID: 1, FightingBookID: 1, ChapterNumber: 1, Title: "Abrazare", Description: "Grappling at close quarters."},
				{ID: 2, FightingBookID: 1, ChapterNumber: 2, Title: "Daga", Description: "Dagger against dagger."},
				{ID: 3, FightingBookID: 1, ChapterNumber: 3, Title: "Longsword", Description: "The sword in two hands."},
			},
			2: {
				{ID: 4, FightingBookID: 2, ChapterNumber: 1, Title: "Zettel", Description: "The epitome of the art."},
			},
			3: {},
			4: {},
		},
		Techniques: map[int][]domain.Technique{
			1: {},
			2: {},
			3: {
				{ID: 1, ChapterID: 3, Name: "Posta di Donna", OrderInChapter: 1,
					Description: "The woman's guard, sword held over the rear shoulder.",
					Instructions: "Stand with the left foot forward and load the sword behind the right shoulder.",
					VideoURL:     video("https://videos.example.com/posta-di-donna.mp4")},
				{ID: 2, ChapterID: 3, Name: "Colpo di Villano", OrderInChapter: 2,
					Description: "Defending against the peasant's blow.",
					Instructions: "Receive the wide blow with a rising cover, then pass and strike."},
			},
			4: {
				{ID: 3, ChapterID: 4, Name: "Zornhau", OrderInChapter: 1,
					Description: "The strike of wrath.",
					Instructions: "Strike diagonally from the right shoulder with the long edge."},
			},
		},
	}
}
