package headhunter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(zap.NewNop(), token)
	client.APIURL = srv.URL
	client.HTTPClient = srv.Client()
	client.SetRateLimit(0)

	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestSearchFollowsPages(t *testing.T) {
	var requests atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		if r.URL.Path != SearchPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no authorization header, got %q", got)
		}

		q := r.URL.Query()
		if q.Get("text") != "kassir" || q.Get("per_page") != perPage {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if areas := q["area"]; len(areas) != 2 {
			t.Errorf("expected two areas, got %v", areas)
		}

		page := q.Get("page")
		switch page {
		case "":
			writeJSON(t, w, map[string]any{
				"items": []any{map[string]any{"id": "1", "name": "Kassir", "salary": map[string]any{"from": 3000000, "currency": "UZS"}}},
				"found": 2, "pages": 2, "page": 0, "per_page": 1,
			})
		case "1":
			writeJSON(t, w, map[string]any{
				"items": []any{map[string]any{"id": "2", "name": "Katta kassir", "salary": nil, "address": nil}},
				"found": 2, "pages": 2, "page": 1, "per_page": 1,
			})
		default:
			t.Errorf("unexpected page %q", page)
		}
	}, "")

	vacancies, err := client.Search(context.Background(), &SearchParams{Text: "kassir", Areas: []string{"2759", "2760"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vacancies.Len() != 2 {
		t.Fatalf("expected 2 vacancies, got %d", vacancies.Len())
	}
	if requests.Load() != 2 {
		t.Fatalf("expected 2 requests, got %d", requests.Load())
	}
	if vacancies.Items[0].Salary.From != 3000000 || vacancies.Items[0].Salary.Currency != "UZS" {
		t.Fatalf("unexpected salary: %+v", vacancies.Items[0].Salary)
	}
	if vacancies.Items[1].Name != "Katta kassir" {
		t.Fatalf("unexpected second vacancy: %+v", vacancies.Items[1])
	}
}

func TestSearchGzipAndToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}

		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()

		_ = json.NewEncoder(gz).Encode(map[string]any{
			"items": []any{map[string]any{"id": "7", "name": "Haydovchi"}},
			"pages": 1,
		})
	}, "secret")

	vacancies, err := client.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vacancies.Len() != 1 || vacancies.Items[0].ID != "7" {
		t.Fatalf("unexpected vacancies: %+v", vacancies.Items)
	}
}

func TestSearchBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, "")

	_, err := client.Search(context.Background(), &SearchParams{})
	if err == nil || !strings.Contains(err.Error(), "bad status") {
		t.Fatalf("expected bad status error, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SearchPath + "/1":
			writeJSON(t, w, map[string]any{"id": "1", "name": "Kassir", "description": "<p>To'liq tavsif</p>"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, "")

	vacancies := &Vacancies{Items: []*Vacancy{
		{ID: "1", Name: "Kassir"},
		{ID: "2", Name: "Oshpaz", Snippet: Snippet{Requirement: "Tajriba"}},
		{ID: "3", Description: "already here"},
	}}

	if err := client.Describe(context.Background(), vacancies); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vacancies.Items[0].Description != "<p>To'liq tavsif</p>" {
		t.Fatalf("expected description to be fetched, got %q", vacancies.Items[0].Description)
	}
	if vacancies.Items[1].Description != "" || vacancies.Items[1].Snippet.Requirement != "Tajriba" {
		t.Fatalf("failed fetch must keep the search result: %+v", vacancies.Items[1])
	}
	if vacancies.Items[2].Description != "already here" {
		t.Fatalf("existing description must not be refetched")
	}
}

func TestDescribeCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Describe(ctx, &Vacancies{Items: []*Vacancy{{ID: "1"}}})
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestGetVacancyRequiresID(t *testing.T) {
	client := New(nil, "")
	if _, err := client.GetVacancy(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty id")
	}
}
