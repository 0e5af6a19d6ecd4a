package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/dracor"
	"dracor-mcp/internal/logger"
)

const collectionFixture = `{
	"@id": "https://staging.dracor.org/api/v1/dts/collection",
	"dtsVersion": "1-alpha",
	"member": [
		{"@id": "ger", "title": "German Drama Corpus"},
		{"@id": "rus", "title": "Russian Drama Corpus"}
	]
}`

const registryFixture = `[
	{"name": "ger", "repository": "https://github.com/dracor-org/gerdracor"},
	{"name": "cal", "repository": "https://github.com/dracor-org/caldracor"}
]`

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, err := logger.NewDefault()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	client := dracor.New(config.DraCorConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, log)

	service := NewService(client)
	service.registryURL = server.URL + "/corpora.json"
	return service
}

func TestService_Corpora(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dts/collection", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(collectionFixture))
	})
	service := newTestService(t, mux)

	result, err := service.Corpora(context.Background())
	if err != nil {
		t.Fatalf("Corpora() unexpected error: %v", err)
	}

	corpora, ok := result["corpora"]
	if !ok {
		t.Fatal("Corpora() result missing corpora key")
	}
	if !strings.Contains(string(corpora), "German Drama Corpus") {
		t.Errorf("Corpora() = %s, expected the collection members", corpora)
	}
	if strings.Contains(string(corpora), "dtsVersion") {
		t.Error("Corpora() returned the whole collection document, expected only the members")
	}
}

func TestService_Corpus(t *testing.T) {
	var gotID string
	mux := http.NewServeMux()
	mux.HandleFunc("/dts/collection", func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("id")
		w.Write([]byte(`{"@id": "ger", "title": "German Drama Corpus"}`))
	})
	service := newTestService(t, mux)

	result, err := service.Corpus(context.Background(), "ger")
	if err != nil {
		t.Fatalf("Corpus() unexpected error: %v", err)
	}
	if gotID != "ger" {
		t.Errorf("Corpus() id query = %q, expected %q", gotID, "ger")
	}
	if _, ok := result["corpus"]; !ok {
		t.Fatal("Corpus() result missing corpus key")
	}
}

func TestService_Registry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/corpora.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(registryFixture))
	})
	service := newTestService(t, mux)

	result, err := service.Registry(context.Background())
	if err != nil {
		t.Fatalf("Registry() unexpected error: %v", err)
	}

	corpora, ok := result["corpora"]
	if !ok {
		t.Fatal("Registry() result missing corpora key")
	}
	if !strings.Contains(string(corpora), "caldracor") {
		t.Errorf("Registry() = %s, expected the registered corpora", corpora)
	}
}

func TestService_Corpora_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dts/collection", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	service := newTestService(t, mux)

	if _, err := service.Corpora(context.Background()); err == nil {
		t.Fatal("Corpora() expected error on server failure, got nil")
	}
}
