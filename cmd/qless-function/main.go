// Command qless-function re-hosts the teacher's src/main.go as a
// Google Cloud Function: same functions-framework registration and
// CORS handling, but its dictionary now comes from a BigQuery table of
// words instead of a per-request word list, and the handler calls
// qless.Solver.Solve instead of the teacher's generator.CreateGenerator.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log"
	"net/http"
	"os"
	"sync"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"google.golang.org/api/iterator"

	"github.com/snakezilla/qless-game"
	"github.com/snakezilla/qless-game/pkg/search"
)

// SolveRequest is the Cloud Function's request body: a tile rack and
// the two knobs spec.md's solve entry point exposes.
type SolveRequest struct {
	Tiles      []TileInput `json:"tiles"`
	DeadlineMs int         `json:"deadlineMs"`
	Seed       int64       `json:"seed"`
}

// TileInput mirrors qless.Tile for JSON purposes; qless.Tile itself
// carries no json tags since it is primarily an in-process value.
type TileInput struct {
	ID   string `json:"id"`
	Char string `json:"char"`
}

// SolveResponse wraps qless.SolveResult with the success/error envelope
// shape the teacher's GenerateGridResponse uses.
type SolveResponse struct {
	Success       bool                   `json:"success"`
	Placements    []qless.TilePlacement  `json:"placements,omitempty"`
	RemovedLetter string                 `json:"removedLetter,omitempty"`
	Stats         qless.Stats            `json:"stats"`
	Error         string                 `json:"error,omitempty"`
}

// bigQueryWords runs the equivalent of the teacher's getWords query
// against a flat word table, returning every row's word column.
func bigQueryWords(ctx context.Context, project, dataset, table string) (iter.Seq[string], error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}

	query := fmt.Sprintf("SELECT word FROM `%s.%s.%s`", project, dataset, table)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	return func(yield func(string) bool) {
		defer client.Close()
		for {
			var row []bigquery.Value
			err := it.Next(&row)
			if err == iterator.Done {
				return
			}
			if err != nil {
				return
			}
			word, ok := row[0].(string)
			if !ok {
				continue
			}
			if !yield(word) {
				return
			}
		}
	}, nil
}

var (
	solverOnce sync.Once
	solver     *qless.Solver
	solverErr  error
)

func getSolver(ctx context.Context) (*qless.Solver, error) {
	solverOnce.Do(func() {
		words, err := bigQueryWords(ctx, envOr("BIGQUERY_PROJECT", "qless-x"), envOr("BIGQUERY_DATASET", "Dictionary"), envOr("BIGQUERY_TABLE", "words"))
		if err != nil {
			solverErr = fmt.Errorf("bigQueryWords: %w", err)
			return
		}
		dict, err := qless.LoadDictionary(words)
		if err != nil {
			solverErr = fmt.Errorf("LoadDictionary: %w", err)
			return
		}
		solver = qless.NewSolver(dict, search.DefaultConfig())
	})
	return solver, solverErr
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solveHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	s, err := getSolver(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(SolveResponse{Error: fmt.Sprintf("dictionary unavailable: %v", err)})
		return
	}

	tiles := make([]qless.Tile, len(req.Tiles))
	for i, t := range req.Tiles {
		if len(t.Char) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SolveResponse{Error: fmt.Sprintf("tile %q: char must be one letter", t.ID)})
			return
		}
		tiles[i] = qless.Tile{ID: t.ID, Char: t.Char[0]}
	}

	result, err := s.Solve(tiles, req.DeadlineMs, req.Seed)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveResponse{Error: err.Error()})
		return
	}

	json.NewEncoder(w).Encode(SolveResponse{
		Success:       result.Success,
		Placements:    result.Placements,
		RemovedLetter: result.RemovedLetter,
		Stats:         result.Stats,
	})
}

func main() {
	funcframework.RegisterHTTPFunction("/solve", solveHandler)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if os.Getenv("LOCAL_ONLY") == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
