package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/goccy/go-json"
	"google.golang.org/api/iterator"

	"crosswarped.com/anagram"
	"crosswarped.com/anagram/internal"
	"crosswarped.com/anagram/pkg/trie"
)

const maxMaxWords = 8

var logger = anagram.NewJSONLogger(slog.LevelInfo)

type FindAnagramsRequest struct {
	Phrase        string   `json:"phrase"`
	Hashes        []string `json:"hashes"`
	MaxWords      int      `json:"maxWords"`
	MinWordLength int      `json:"minWordLength"`
	Words         []string `json:"words"`
	WordScope     string   `json:"wordScope"`
}

type MatchResponse struct {
	Anagram string `json:"anagram"`
	Digest  string `json:"digest"`
}

type FindAnagramsResponse struct {
	Success bool            `json:"success"`
	Matches []MatchResponse `json:"matches"`
	Error   string          `json:"error,omitempty"`
}

func projectID() string {
	if id := os.Getenv("GOOGLE_CLOUD_PROJECT"); id != "" {
		return id
	}
	return "anagram-x"
}

func getWords(ctx context.Context, scope string) ([]string, error) {
	client, err := bigquery.NewClient(ctx, projectID())
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query("SELECT word FROM `Dictionary.words` WHERE scope = @scope")
	q.DefaultProjectID = projectID()
	q.Location = "US"
	q.Parameters = []bigquery.QueryParameter{
		{Name: "scope", Value: scope},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}

func validate(req FindAnagramsRequest) error {
	if strings.TrimSpace(req.Phrase) == "" {
		return fmt.Errorf("phrase must not be empty")
	}
	if len(req.Hashes) == 0 {
		return fmt.Errorf("hashes must not be empty")
	}
	if req.MaxWords < 1 {
		return fmt.Errorf("maxWords must be at least 1")
	}
	if req.MaxWords > maxMaxWords {
		return fmt.Errorf("maxWords must be at most %d", maxMaxWords)
	}
	if len(req.Words) == 0 && req.WordScope == "" {
		return fmt.Errorf("one of words or wordScope must be set")
	}
	return nil
}

func execute(ctx context.Context, req FindAnagramsRequest) ([]anagram.Match, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	words := req.Words
	if req.WordScope != "" {
		scoped, err := getWords(ctx, req.WordScope)
		logger.LogDictionary(ctx, "bigquery:"+req.WordScope, len(scoped), len(scoped), err)
		if err != nil {
			return nil, fmt.Errorf("getWords: %w", err)
		}
		words = append(words, scoped...)
	}

	filterParams := internal.FilterParams{Phrase: req.Phrase}
	if req.MinWordLength > 0 {
		filterParams.MinWordLength = &req.MinWordLength
	}
	filtered, err := internal.FilterWords(ctx, words, filterParams)
	if err != nil {
		return nil, fmt.Errorf("filtering words: %w", err)
	}

	finder, err := anagram.NewFinder(trie.Build(filtered), anagram.FinderParams{
		Phrase:   req.Phrase,
		Hashes:   req.Hashes,
		MaxWords: req.MaxWords,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return finder.FindAll(ctx)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func findAnagrams(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req FindAnagramsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "invalid request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(FindAnagramsResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	matches, err := execute(r.Context(), req)

	response := FindAnagramsResponse{
		Success: err == nil,
		Matches: make([]MatchResponse, 0, len(matches)),
	}
	for _, m := range matches {
		response.Matches = append(response.Matches, MatchResponse{Anagram: m.Text, Digest: m.Digest})
	}
	if err != nil {
		response.Error = err.Error()
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(r.Context(), "encoding response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/find-anagrams", findAnagrams)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
