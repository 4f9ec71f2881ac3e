package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchBuildsQueryAndNormalizes(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"results":[{
			"id":"42",
			"title":" Backend Engineer ",
			"company":{"display_name":"Acme"},
			"location":{"display_name":"Portland, OR"},
			"redirect_url":"https://adzuna.example/42",
			"created":"2025-05-01T10:00:00Z",
			"salary_min":120000.4,
			"salary_max":150000.6
		}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "id", AppKey: "key", Country: "GB", BaseURL: srv.URL, PageSize: 5})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	postings, err := client.Search(context.Background(), "go developer", SearchParams{Location: "London", Page: 2, MaxDaysOld: 7})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/v1/api/jobs/gb/search/2" {
		t.Errorf("path = %q", gotPath)
	}
	want := map[string]string{
		"app_id":           "id",
		"app_key":          "key",
		"what":             "go developer",
		"where":            "London",
		"results_per_page": "5",
		"max_days_old":     "7",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if len(postings) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(postings))
	}
	p := postings[0]
	if p.Title != "Backend Engineer" || p.Company != "Acme" {
		t.Errorf("unexpected posting %+v", p)
	}
	if p.SalaryMin != 120000 || p.SalaryMax != 150001 {
		t.Errorf("salary = %d-%d", p.SalaryMin, p.SalaryMax)
	}
	if p.PostedAt.IsZero() {
		t.Errorf("expected PostedAt to be parsed")
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	client, err := NewClient(Config{AppID: "id", AppKey: "key"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Search(context.Background(), "  ", SearchParams{}); err == nil {
		t.Fatalf("expected error for empty query")
	}
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, _ := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	if _, err := client.Search(context.Background(), "go", SearchParams{}); err == nil {
		t.Fatalf("expected error on 401")
	}
}
