package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM that drives the scripted player bot.
// Single-goroutine access only (simulation loop).
type Engine struct {
	dir string
	vm  *lua.LState
	log *zap.Logger
}

// 腳本載入順序: core 先於 bot
var scriptDirs = []string{"core", "bot"}

// NewEngine creates a Lua engine and loads all scripts under dir.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{dir: dir, log: log}
	vm, err := e.newVM()
	if err != nil {
		return nil, err
	}
	e.vm = vm
	return e, nil
}

func (e *Engine) newVM() (*lua.LState, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	for _, sub := range scriptDirs {
		if err := loadDir(vm, filepath.Join(e.dir, sub), e.log); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return vm, nil
}

// Reload rebuilds the VM from disk. On failure the running VM is kept.
func (e *Engine) Reload() error {
	vm, err := e.newVM()
	if err != nil {
		return err
	}
	e.vm.Close()
	e.vm = vm
	e.log.Info("lua scripts reloaded", zap.String("dir", e.dir))
	return nil
}

// loadDir loads all .lua files in a directory.
func loadDir(vm *lua.LState, dir string, log *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// BotContext is the world as the bot sees it for one decision.
type BotContext struct {
	Time float64

	X, Z      float64
	HP, MaxHP float64
	Mental    float64
	MaxMental float64
	Tired     bool
	Grooming  bool
	LowHealth bool
	Regen     bool

	BossX, BossZ float64
	BossDist     float64
	BossHP       float64
	BossMaxHP    float64
	BossState    string
	BossAttack   bool

	AreaActive bool
	AreaX      float64
	AreaZ      float64
	AreaRadius float64

	AttackRange   float64
	SkillRange    float64
	UltimateRange float64
	AttackReady   bool
	SkillReady    bool
	UltimateReady bool

	Popup       string
	Talked      bool
	ChestOpened bool
	Adopted     bool
}

// BotCommand is one frame of bot intent.
type BotCommand struct {
	MoveX, MoveZ float64
	Run          bool
	Jump         bool
	Groom        bool
	Hide         bool
	Attack       bool
	Skill        bool
	Ultimate     bool
	Click        string // scene object to click, "" for none
}

// HasBot reports whether a bot_decide function is loaded.
func (e *Engine) HasBot() bool {
	return e.vm.GetGlobal("bot_decide") != lua.LNil
}

// RunBot calls the Lua bot_decide(ctx) function. ok is false when the
// function is missing or fails.
func (e *Engine) RunBot(ctx BotContext) (BotCommand, bool) {
	fn := e.vm.GetGlobal("bot_decide")
	if fn == lua.LNil {
		return BotCommand{}, false
	}

	t := e.vm.NewTable()
	t.RawSetString("time", lua.LNumber(ctx.Time))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("z", lua.LNumber(ctx.Z))
	t.RawSetString("hp", lua.LNumber(ctx.HP))
	t.RawSetString("max_hp", lua.LNumber(ctx.MaxHP))
	t.RawSetString("mental", lua.LNumber(ctx.Mental))
	t.RawSetString("max_mental", lua.LNumber(ctx.MaxMental))
	t.RawSetString("tired", lua.LBool(ctx.Tired))
	t.RawSetString("grooming", lua.LBool(ctx.Grooming))
	t.RawSetString("low_health", lua.LBool(ctx.LowHealth))
	t.RawSetString("regen", lua.LBool(ctx.Regen))

	boss := e.vm.NewTable()
	boss.RawSetString("x", lua.LNumber(ctx.BossX))
	boss.RawSetString("z", lua.LNumber(ctx.BossZ))
	boss.RawSetString("dist", lua.LNumber(ctx.BossDist))
	boss.RawSetString("hp", lua.LNumber(ctx.BossHP))
	boss.RawSetString("max_hp", lua.LNumber(ctx.BossMaxHP))
	boss.RawSetString("state", lua.LString(ctx.BossState))
	boss.RawSetString("attacking", lua.LBool(ctx.BossAttack))
	t.RawSetString("boss", boss)

	if ctx.AreaActive {
		area := e.vm.NewTable()
		area.RawSetString("x", lua.LNumber(ctx.AreaX))
		area.RawSetString("z", lua.LNumber(ctx.AreaZ))
		area.RawSetString("radius", lua.LNumber(ctx.AreaRadius))
		t.RawSetString("area", area)
	}

	abilities := e.vm.NewTable()
	abilities.RawSetString("attack_range", lua.LNumber(ctx.AttackRange))
	abilities.RawSetString("skill_range", lua.LNumber(ctx.SkillRange))
	abilities.RawSetString("ultimate_range", lua.LNumber(ctx.UltimateRange))
	abilities.RawSetString("attack_ready", lua.LBool(ctx.AttackReady))
	abilities.RawSetString("skill_ready", lua.LBool(ctx.SkillReady))
	abilities.RawSetString("ultimate_ready", lua.LBool(ctx.UltimateReady))
	t.RawSetString("abilities", abilities)

	ui := e.vm.NewTable()
	ui.RawSetString("popup", lua.LString(ctx.Popup))
	ui.RawSetString("talked", lua.LBool(ctx.Talked))
	ui.RawSetString("chest_opened", lua.LBool(ctx.ChestOpened))
	ui.RawSetString("adopted", lua.LBool(ctx.Adopted))
	t.RawSetString("ui", ui)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua bot_decide error", zap.Error(err))
		return BotCommand{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return BotCommand{}, false
	}
	return BotCommand{
		MoveX:    lNum(rt, "move_x"),
		MoveZ:    lNum(rt, "move_z"),
		Run:      lBool(rt, "run"),
		Jump:     lBool(rt, "jump"),
		Groom:    lBool(rt, "groom"),
		Hide:     lBool(rt, "hide"),
		Attack:   lBool(rt, "attack"),
		Skill:    lBool(rt, "skill"),
		Ultimate: lBool(rt, "ultimate"),
		Click:    lStr(rt, "click"),
	}, true
}

// BotName returns the optional BOT_NAME global, or "".
func (e *Engine) BotName() string {
	return lua.LVAsString(e.vm.GetGlobal("BOT_NAME"))
}

// --- Lua helpers ---

// lNum reads a number field from a Lua table.
func lNum(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// lBool reads a boolean field; nil and false are false.
func lBool(t *lua.LTable, key string) bool {
	return lua.LVAsBool(t.RawGetString(key))
}

// lStr reads a string field; anything else is "".
func lStr(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
