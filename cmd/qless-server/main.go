// Command qless-server hosts the solver behind HTTP, the surface
// spec.md §6 calls the long-running deployment target. Routing and
// graceful shutdown follow the teacher-pack's
// vancomm-minesweeper-server/cmd/game/main.go (logger, server,
// errCh, signal.NotifyContext); query decoding follows that repo's
// top-level main.go (gorilla/schema with IgnoreUnknownKeys); CORS and
// request logging are internal/middleware, adapted from that same
// repo's internal/middleware package.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/snakezilla/qless-game"
	"github.com/snakezilla/qless-game/internal/config"
	"github.com/snakezilla/qless-game/internal/middleware"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// SolveParams is the query-string half of a solve request: the knobs,
// not the rack. Tiles travel in the JSON body since a rack doesn't fit
// comfortably in a query string once tile ids are involved.
type SolveParams struct {
	DeadlineMs int   `schema:"deadline_ms"`
	Seed       int64 `schema:"seed"`
}

type tileInput struct {
	ID   string `json:"id"`
	Char string `json:"char"`
}

type solveResponse struct {
	Success       bool                  `json:"success"`
	Placements    []qless.TilePlacement `json:"placements,omitempty"`
	RemovedLetter string                `json:"removedLetter,omitempty"`
	Stats         qless.Stats           `json:"stats"`
	Error         string                `json:"error,omitempty"`
}

type application struct {
	solver *qless.Solver
	log    *logrus.Logger
	live   bool
}

func (app *application) decodeTiles(body []byte) ([]qless.Tile, error) {
	var inputs []tileInput
	if err := json.Unmarshal(body, &inputs); err != nil {
		return nil, fmt.Errorf("decoding tiles: %w", err)
	}
	tiles := make([]qless.Tile, len(inputs))
	for i, t := range inputs {
		if len(t.Char) != 1 {
			return nil, fmt.Errorf("tile %q: char must be exactly one letter", t.ID)
		}
		tiles[i] = qless.Tile{ID: t.ID, Char: t.Char[0]}
	}
	return tiles, nil
}

func (app *application) handleSolve(w http.ResponseWriter, r *http.Request) {
	var params SolveParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(solveResponse{Error: err.Error()})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(solveResponse{Error: fmt.Sprintf("reading body: %v", err)})
		return
	}

	tiles, err := app.decodeTiles(body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(solveResponse{Error: err.Error()})
		return
	}

	result, err := app.solver.Solve(tiles, params.DeadlineMs, params.Seed)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(solveResponse{Error: err.Error()})
		return
	}

	json.NewEncoder(w).Encode(solveResponse{
		Success:       result.Success,
		Placements:    result.Placements,
		RemovedLetter: result.RemovedLetter,
		Stats:         result.Stats,
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleSolveLive upgrades to a websocket and sends a {"status":"running"}
// tick every 100ms while a solve runs in the background, then sends the
// final result (with its Stats) and closes. The ticks carry no
// Attempts/CombosChecked counts; those arrive only in the final result.
func (app *application) handleSolveLive(w http.ResponseWriter, r *http.Request) {
	var params SolveParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	tiles, err := app.decodeTiles(body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.log.WithError(err).Warn("qless-server: websocket upgrade failed")
		return
	}
	defer conn.Close()

	resultCh := make(chan qless.SolveResult, 1)
	errCh := make(chan error, 1)
	go func() {
		result, err := app.solver.Solve(tiles, params.DeadlineMs, params.Seed)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- result
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteJSON(map[string]string{"status": "running"}); err != nil {
				return
			}
		case err := <-errCh:
			conn.WriteJSON(solveResponse{Error: err.Error()})
			return
		case result := <-resultCh:
			conn.WriteJSON(solveResponse{
				Success:       result.Success,
				Placements:    result.Placements,
				RemovedLetter: result.RemovedLetter,
				Stats:         result.Stats,
			})
			return
		}
	}
}

func (app *application) serveMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /solve", app.handleSolve)
	if app.live {
		mux.HandleFunc("GET /solve/live", app.handleSolveLive)
	}
	return mux
}

func main() {
	configFile := flag.String("config", "", "Path to a JSON config file; falls back to built-in defaults")
	live := flag.Bool("live", false, "Serve GET /solve/live, a websocket progress stream")
	flag.Parse()

	log := logrus.StandardLogger()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Read(*configFile)
		if err != nil {
			log.WithError(err).Fatal("qless-server: reading config")
		}
	}
	log.WithFields(cfg.Fields()).Info("qless-server: starting")

	dict, err := qless.LoadFromFile(cfg.Dictionary.File)
	if err != nil {
		log.WithError(err).Fatal("qless-server: loading dictionary")
	}

	app := &application{
		solver: qless.NewSolver(dict, cfg.Search).WithLogger(log),
		log:    log,
		live:   *live,
	}

	handler := middleware.Logging(log)(
		cors.New(cors.Options{
			AllowedOrigins: cfg.Cors.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		}).Handler(app.serveMux()),
	)

	server := &http.Server{Addr: cfg.Addr, Handler: handler}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
		}
		close(errCh)
	}()

	log.WithField("addr", cfg.Addr).Info("qless-server: online")

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Fatal("qless-server: failed to start")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)
}
