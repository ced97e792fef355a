package main

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/petstore/bossfight/internal/config"
	"github.com/petstore/bossfight/internal/data"
	"github.com/petstore/bossfight/internal/scripting"
	"github.com/petstore/bossfight/internal/sim"
)

// BatchReport summarises many encounters run with consecutive seeds.
type BatchReport struct {
	Runs        int            `json:"runs"`
	Outcomes    map[string]int `json:"outcomes"`
	MeanSeconds float64        `json:"mean_seconds"`
	BossWinRate float64        `json:"boss_win_rate"`
	Errors      []string       `json:"errors,omitempty"`
	Results     []sim.Result   `json:"results"`
}

// runBatch runs cfg.Sim.Batch encounters on cfg.Sim.Workers goroutines.
// Each worker owns its Lua VM; simulations share nothing.
func runBatch(ctx context.Context, cfg *config.Config, tuning *data.Tuning, seed int64, log *zap.Logger) (*BatchReport, error) {
	n := cfg.Sim.Batch
	results := make([]sim.Result, n)
	errs := make([]error, n)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Sim.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			wlog := log.With(zap.Int("worker", worker))

			var engine *scripting.Engine
			if cfg.Scripts.Bot {
				e, err := scripting.NewEngine(cfg.Scripts.Dir, wlog.Named("lua"))
				if err != nil {
					wlog.Error("腳本載入失敗, 使用內建 AI", zap.Error(err))
				} else {
					engine = e
					defer engine.Close()
				}
			}

			for i := range jobs {
				s := sim.New(sim.Setup{
					Tuning:    tuning,
					Seed:      seed + int64(i),
					Frame:     cfg.Sim.Frame(),
					FixedStep: cfg.Sim.FixedStep,
					Duration:  cfg.Sim.Duration,
					Brain:     brainFor(engine),
					Log:       wlog.Named("sim").WithOptions(zap.IncreaseLevel(zap.WarnLevel)),
				})
				results[i], errs[i] = s.Run(ctx)
			}
		}(w)
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	report := &BatchReport{Outcomes: make(map[string]int)}
	total := 0.0
	for i, res := range results {
		if errs[i] != nil {
			report.Errors = append(report.Errors, errs[i].Error())
			continue
		}
		if res.Frames == 0 {
			continue // never started
		}
		report.Runs++
		report.Outcomes[string(res.Outcome)]++
		total += res.Seconds
		report.Results = append(report.Results, res)
	}
	if report.Runs > 0 {
		report.MeanSeconds = total / float64(report.Runs)
		report.BossWinRate = float64(report.Outcomes[string(sim.OutcomePlayerDefeated)]) / float64(report.Runs)
	}
	log.Info("批次完成",
		zap.Int("runs", report.Runs),
		zap.Any("outcomes", report.Outcomes),
		zap.Float64("mean_seconds", report.MeanSeconds))
	return report, ctx.Err()
}
