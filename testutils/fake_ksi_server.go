package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed ksidata
var ksidata embed.FS

// FakeKSIServer serves captured KSÍ pages for tests: one index page for the
// 2025 season and three competition pages covering both markup dialects.
type FakeKSIServer struct {
	s *httptest.Server
}

func NewFakeKSIServer() *FakeKSIServer {
	r := chi.NewRouter()
	r.Route("/mot", func(r chi.Router) {
		r.Get("/", indexHandler)
		r.Get("/stakt-mot/", competitionHandler)
	})

	return &FakeKSIServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeKSIServer) Close() {
	f.s.Close()
}

func (f *FakeKSIServer) URL() string {
	return f.s.URL
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("year") != "2025" {
		// No competitions for other seasons; an empty page is what the real
		// site serves too.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body><h1>Mót</h1></body></html>"))
		return
	}
	serveFile(w, "index.html")
}

func competitionHandler(w http.ResponseWriter, r *http.Request) {
	mot := r.URL.Query().Get("motnumer")
	switch mot {
	case "40123", "40260", "40300":
		serveFile(w, fmt.Sprintf("comp_%s.html", mot))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := ksidata.ReadFile(fmt.Sprintf("ksidata/%s", name))
	if err != nil {
		log.Printf("error reading ksidata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
