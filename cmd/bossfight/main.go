package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petstore/bossfight/internal/config"
	"github.com/petstore/bossfight/internal/data"
	"github.com/petstore/bossfight/internal/scripting"
	"github.com/petstore/bossfight/internal/sim"
)

const defaultConfigPath = "config/bossfight.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Fprintln(os.Stderr, "\033[36;1m  │\033[0m           Boss Arena  v0.1.0              \033[36;1m│\033[0m")
	fmt.Fprintln(os.Stderr, "\033[36;1m  │\033[0m      寵物店 Boss 戰 · 模擬器              \033[36;1m│\033[0m")
	fmt.Fprintln(os.Stderr, "\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "  \033[1m場景:\033[0m %s\n\n", name)
}

// displayWidth counts CJK runes as two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func printSection(title string) {
	lineLen := 46 - displayWidth(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Fprintf(os.Stderr, "  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value string) {
	dotsLen := 42 - displayWidth(label) - len(value)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Fprintf(os.Stderr, "  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), value)
}

func printOK(msg string) {
	fmt.Fprintf(os.Stderr, "  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Fprintf(os.Stderr, "  \033[32m▶\033[0m %s\n", msg)
}

// ── Main logic ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := defaultConfigPath
	if p := os.Getenv("BOSSFIGHT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Tuning
	printSection("資料載入")
	tuning, err := data.LoadTuning(cfg.Data.Boss, cfg.Data.Player, cfg.Data.Scene)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	printStat("Boss 生命值", fmt.Sprintf("%.0f", tuning.Boss.MaxHealth))
	printStat("玩家生命值", fmt.Sprintf("%.0f", tuning.Player.Health.Max))
	printStat("領地半徑", fmt.Sprintf("%.1f", tuning.Boss.TerritoryRadius))
	printOK("調校檔載入完成")
	fmt.Fprintln(os.Stderr)

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out, closeOut, err := openOutput(cfg.Output.Path)
	if err != nil {
		return err
	}
	defer closeOut()

	// 4. Signals cancel the run
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sim.Batch > 1 {
		printSection("批次模擬")
		printReady(fmt.Sprintf("%d 場戰鬥 · %d 個工作者", cfg.Sim.Batch, cfg.Sim.Workers))
		fmt.Fprintln(os.Stderr)
		report, err := runBatch(ctx, cfg, tuning, seed, log)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return writeJSON(out, report)
	}

	// 5. Scripts
	var engine *scripting.Engine
	if cfg.Scripts.Bot {
		printSection("腳本引擎")
		engine, err = scripting.NewEngine(cfg.Scripts.Dir, log.Named("lua"))
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		if engine.HasBot() {
			printOK(fmt.Sprintf("Lua 機器人已載入 (%s)", engine.BotName()))
		} else {
			printOK("未找到 bot_decide, 使用內建 AI")
		}
		fmt.Fprintln(os.Stderr)
	}

	s := sim.New(sim.Setup{
		Tuning:    tuning,
		Seed:      seed,
		Frame:     cfg.Sim.Frame(),
		FixedStep: cfg.Sim.FixedStep,
		Duration:  cfg.Sim.Duration,
		Brain:     brainFor(engine),
		Log:       log,
	})

	printSection("戰鬥開始")
	printReady(fmt.Sprintf("種子 %d · 幀長 %s · 物理步長 %s", seed, cfg.Sim.Frame(), cfg.Sim.FixedStep))
	fmt.Fprintln(os.Stderr)

	var res sim.Result
	if cfg.Sim.Realtime {
		res, err = runRealtime(ctx, cfg, s, engine, log)
	} else {
		res, err = s.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		log.Info("收到關閉信號, 輸出目前結果")
	}
	printSection("結果")
	printStat("結局", string(res.Outcome))
	printStat("耗時 (秒)", fmt.Sprintf("%.2f", res.Seconds))
	fmt.Fprintln(os.Stderr)
	return writeJSON(out, res)
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil && path == defaultConfigPath && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func brainFor(engine *scripting.Engine) sim.Brain {
	if engine == nil || !engine.HasBot() {
		return sim.NewChaseBrain()
	}
	return sim.NewScriptBrain(engine, sim.NewChaseBrain())
}

// runRealtime paces frames on a ticker and applies tuning and script edits
// between frames.
func runRealtime(ctx context.Context, cfg *config.Config, s *sim.Simulation, engine *scripting.Engine, log *zap.Logger) (sim.Result, error) {
	var events <-chan string
	var errs <-chan error
	if cfg.Data.Watch {
		w, err := data.NewWatcher(log.Named("watch"), watchDirs(cfg)...)
		if err != nil {
			log.Warn("熱重載停用", zap.Error(err))
		} else {
			defer w.Close()
			events, errs = w.Events, w.Errors
			printReady("熱重載已啟用")
		}
	}

	ticker := time.NewTicker(cfg.Sim.Frame())
	defer ticker.Stop()

	for !s.Done() {
		select {
		case <-ticker.C:
			s.Step()
		case name := <-events:
			reload(name, cfg, s, engine, log)
		case err := <-errs:
			log.Warn("watcher error", zap.Error(err))
		case <-ctx.Done():
			return s.Result(), ctx.Err()
		}
	}
	return s.Result(), nil
}

func reload(name string, cfg *config.Config, s *sim.Simulation, engine *scripting.Engine, log *zap.Logger) {
	switch {
	case data.IsTuningFile(name):
		t, err := data.LoadTuning(cfg.Data.Boss, cfg.Data.Player, cfg.Data.Scene)
		if err != nil {
			log.Error("調校檔重載失敗, 保留舊設定", zap.String("file", name), zap.Error(err))
			return
		}
		s.Reconfigure(t)
	case data.IsScriptFile(name) && engine != nil:
		if err := engine.Reload(); err != nil {
			log.Error("腳本重載失敗, 保留舊腳本", zap.String("file", name), zap.Error(err))
		}
	}
}

func watchDirs(cfg *config.Config) []string {
	seen := map[string]bool{}
	var dirs []string
	add := func(d string) {
		if d == "" || seen[d] {
			return
		}
		if _, err := os.Stat(d); err != nil {
			return
		}
		seen[d] = true
		dirs = append(dirs, d)
	}
	for _, p := range []string{cfg.Data.Boss, cfg.Data.Player, cfg.Data.Scene} {
		if p != "" {
			add(filepath.Dir(p))
		}
	}
	if cfg.Scripts.Bot {
		for _, sub := range []string{"core", "bot"} {
			add(filepath.Join(cfg.Scripts.Dir, sub))
		}
	}
	return dirs
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
