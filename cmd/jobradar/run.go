package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"jobradar-engine/internal/httpx"
	"jobradar-engine/internal/logger"
	"jobradar-engine/internal/profile"
	"jobradar-engine/internal/rank"
	"jobradar-engine/internal/search"
	"jobradar-engine/internal/secrets"
	"jobradar-engine/internal/source/adzuna"
	"jobradar-engine/internal/source/authenticjobs"
	"jobradar-engine/internal/source/dice"
	"jobradar-engine/internal/source/hnhiring"
	"jobradar-engine/internal/source/jsearch"
	"jobradar-engine/internal/source/remoteok"
	"jobradar-engine/internal/source/usajobs"
	"jobradar-engine/internal/source/weworkremotely"
	"jobradar-engine/internal/tracker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var noTrack bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one search across all configured sources",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&noTrack, "no-track", false, "skip the seen-listing tracker")
}

func run(ctx context.Context) {
	zl, err := logger.New(jsonLog, debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zl.Sync()

	p, err := profile.Load(profilePath)
	if err != nil {
		zl.Fatal("loading profile", zap.String("path", profilePath), zap.Error(err))
	}
	zl.Info("starting search",
		zap.String("version", version),
		zap.Strings("target_titles", p.TargetTitles),
	)

	var store *tracker.Store
	if !noTrack {
		store, err = tracker.Open(dbPath, zl)
		if err != nil {
			zl.Fatal("opening tracker", zap.String("path", dbPath), zap.Error(err))
		}
		defer store.Close()
	}

	getter := httpx.NewClient(zl,
		httpx.WithLimiter(httpx.NewHostLimiter(2, 2)),
		httpx.WithCache(httpx.NewResponseCache(10*time.Minute)),
	)
	creds := secrets.NewKeychainProvider(zl)
	gate := httpx.NewSourceGate(30, 5)

	engine := search.NewEngine(zl,
		dice.New(getter, zl),
		hnhiring.New(getter, zl),
		remoteok.New(getter, zl),
		weworkremotely.New(getter, zl),
		adzuna.New(getter, creds, gate, zl),
		authenticjobs.New(getter, creds, gate, zl),
		jsearch.New(getter, creds, gate, zl),
		usajobs.New(getter, creds, gate, p, zl),
	)
	engine.OnProgress = func(done, total int, sourceName string) {
		zl.Debug("query finished",
			zap.Int("done", done),
			zap.Int("total", total),
			zap.String("source", sourceName),
		)
	}
	engine.OnSourceProgress = func(display string, n, total int, state string, jobs int) {
		if state == search.StateComplete {
			zl.Info("source complete",
				zap.String("source", display),
				zap.Int("jobs", jobs),
				zap.String("progress", fmt.Sprintf("%d/%d", n, total)),
			)
			return
		}
		zl.Info("source started", zap.String("source", display))
	}

	results := engine.FetchAll(ctx, p)
	zl.Info("listings after dedup", zap.Int("count", len(results)))

	scorer := rank.New(p)
	type row struct {
		idx   int
		score rank.ScoreResult
	}
	rows := make([]row, 0, len(results))
	for i, job := range results {
		rows = append(rows, row{idx: i, score: scorer.Score(job)})
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].score.Overall > rows[b].score.Overall
	})

	newByKey := map[string]bool{}
	if store != nil {
		tracked, terr := store.Annotate(ctx, results)
		if terr != nil {
			zl.Warn("tracker annotate failed", zap.Error(terr))
		} else {
			for _, t := range tracked {
				if t.IsNew {
					newByKey[t.Job.DedupKey()] = true
				}
			}
		}
	}

	for _, r := range rows {
		job := results[r.idx]
		if r.score.Recommendation == rank.RecDealbreaker {
			zl.Debug("dealbreaker",
				zap.String("title", job.Title),
				zap.String("company", job.Company),
				zap.String("matched", r.score.Dealbreaker),
			)
			continue
		}
		zl.Info("listing",
			zap.Float64("score", r.score.Overall),
			zap.String("recommendation", r.score.Recommendation),
			zap.Bool("new", newByKey[job.DedupKey()]),
			zap.String("title", job.Title),
			zap.String("company", job.Company),
			zap.String("location", job.Location),
			zap.String("source", job.Source),
			zap.String("url", job.URL),
		)
	}
}
