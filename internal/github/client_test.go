package github

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const statsPage1 = `{"data":{"user":{
  "name":"Fynn",
  "followers":{"totalCount":3},
  "contributionsCollection":{"totalCommitContributions":321,"totalPullRequestReviewContributions":4},
  "repositoriesContributedTo":{"totalCount":9},
  "pullRequests":{"totalCount":40},
  "mergedPullRequests":{"totalCount":30},
  "openIssues":{"totalCount":2},
  "closedIssues":{"totalCount":3},
  "repositories":{
    "nodes":[
      {"name":"alpha","stargazers":{"totalCount":5},"languages":{"edges":[{"size":100,"node":{"name":"Go"}}]}},
      {"name":"scratch","stargazers":{"totalCount":50},"languages":{"edges":[{"size":999,"node":{"name":"C"}}]}}
    ],
    "pageInfo":{"hasNextPage":true,"endCursor":"cur1"}
  }
}}}`

const statsPage2 = `{"data":{"user":{
  "name":"Fynn",
  "repositories":{
    "nodes":[
      {"name":"beta","stargazers":{"totalCount":7},"languages":{"edges":[{"size":50,"node":{"name":"Go"}},{"size":120,"node":{"name":"Python"}}]}}
    ],
    "pageInfo":{"hasNextPage":false,"endCursor":""}
  }
}}}`

func testClient(srv *httptest.Server) *Client {
	return &Client{
		endpoint: srv.URL,
		token:    "token123",
		http:     srv.Client(),
		logger:   log.New(io.Discard),
	}
}

func TestFetchUserStatsAggregatesPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "bearer token123" {
			t.Errorf("Authorization = %q, expected \"bearer token123\"", auth)
		}
		var req graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Variables["after"] == nil {
			io.WriteString(w, statsPage1)
			return
		}
		if cursor := req.Variables["after"]; cursor != "cur1" {
			t.Errorf("after = %v, expected cur1", cursor)
		}
		io.WriteString(w, statsPage2)
	}))
	defer srv.Close()

	stats, err := testClient(srv).FetchUserStats(context.Background(), "fynn", []string{"scratch"})
	if err != nil {
		t.Fatalf("FetchUserStats() error: %v", err)
	}
	if stats.AccountName != "Fynn" {
		t.Errorf("AccountName = %q, expected Fynn", stats.AccountName)
	}
	if stats.TotalStars != 12 {
		t.Errorf("TotalStars = %d, expected 12 (ignored repo must not count)", stats.TotalStars)
	}
	if stats.CommitsLastYear != 321 {
		t.Errorf("CommitsLastYear = %d, expected 321", stats.CommitsLastYear)
	}
	if stats.TotalIssues != 5 {
		t.Errorf("TotalIssues = %d, expected 5", stats.TotalIssues)
	}
	if stats.MergedPercentage != 75 {
		t.Errorf("MergedPercentage = %v, expected 75", stats.MergedPercentage)
	}
	expectedLangs := []Language{{Name: "Go", Size: 150}, {Name: "Python", Size: 120}}
	if len(stats.Languages) != len(expectedLangs) {
		t.Fatalf("Languages = %v, expected %v", stats.Languages, expectedLangs)
	}
	for i, lang := range expectedLangs {
		if stats.Languages[i] != lang {
			t.Errorf("Languages[%d] = %v, expected %v", i, stats.Languages[i], lang)
		}
	}
	if stats.Rank.Level == "" {
		t.Errorf("Rank.Level is empty, expected a grade")
	}
}

func TestFetchUserStatsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"errors":[{"message":"rate limited"}]}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchUserStats(context.Background(), "fynn", nil)
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("FetchUserStats() error = %v, expected api error message", err)
	}
}

func TestFetchUserStatsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchUserStats(context.Background(), "fynn", nil)
	if err == nil {
		t.Errorf("FetchUserStats() error = nil, expected status error")
	}
}

func TestNewClientMissingToken(t *testing.T) {
	_, err := NewClient("", log.New(io.Discard))
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("NewClient(\"\") error = %v, expected ErrMissingToken", err)
	}
}

func TestTopLanguages(t *testing.T) {
	stats := &UserStats{Languages: []Language{{"Go", 3}, {"C", 2}, {"Lua", 1}}}
	got := stats.TopLanguages(5)
	if len(got) != 3 {
		t.Errorf("TopLanguages(5) len = %d, expected 3", len(got))
	}
	got = stats.TopLanguages(2)
	if len(got) != 2 || got[0] != "Go" || got[1] != "C" {
		t.Errorf("TopLanguages(2) = %v, expected [Go C]", got)
	}
}
