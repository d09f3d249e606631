package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"example.com/lineedit/pkg/config"
	"example.com/lineedit/pkg/edit"
	"example.com/lineedit/pkg/history"
	"example.com/lineedit/pkg/logs"
	"example.com/lineedit/pkg/script"
	"github.com/gdamore/tcell/v2"
)

// Runner loads a script and a seed buffer, runs the commands and renders
// the result. Every successful step is kept in Journal for the viewer.
type Runner struct {
	Config     *config.Config
	Logger     *logs.Logger
	Journal    *history.Journal
	Screen     tcell.Screen
	ScriptPath string
	SeedPath   string
	Commands   []edit.Command
	Seed       string
	Result     edit.Context
}

// New creates a Runner using cfg, or the defaults when cfg is nil.
func New(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Runner{Config: cfg, Logger: logs.Discard(), Journal: history.New()}
}

// LoadScript parses the script file at path into r.Commands.
func (r *Runner) LoadScript(path string) error {
	data, err := r.readFile(path)
	if err != nil {
		return err
	}
	cmds, err := script.Parse(string(data))
	if err != nil {
		r.Logger.Event("script.error", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("%s: %w", path, err)
	}
	r.ScriptPath = path
	r.Commands = cmds
	r.Logger.Event("script.parsed", map[string]any{"file": path, "commands": len(cmds)})
	return nil
}

// LoadSeed reads the file at path as the initial buffer contents. CRLF
// terminators are rewritten to LF here; the pipeline then keeps every
// remaining terminator as read.
func (r *Runner) LoadSeed(path string) error {
	if path == "" {
		return nil
	}
	data, err := r.readFile(path)
	if err != nil {
		return err
	}
	r.SeedPath = path
	// Normalize CRLF to LF for internal buffer storage
	r.Seed = strings.ReplaceAll(string(data), "\r\n", "\n")
	return nil
}

func (r *Runner) readFile(path string) ([]byte, error) {
	r.Logger.Event("open.attempt", map[string]any{"file": path})
	data, err := os.ReadFile(path)
	if err != nil {
		r.Logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		return nil, err
	}
	r.Logger.Event("open.success", map[string]any{"file": path, "bytes": len(data)})
	return data, nil
}

// Execute runs r.Commands against r.Seed. The final buffer is stored in
// r.Result even when a command fails, so the partial run can be viewed.
func (r *Runner) Execute() (edit.Context, error) {
	r.Journal = history.New()
	r.Logger.Event("run.start", map[string]any{"commands": len(r.Commands), "seed": r.SeedPath})
	p := edit.Pipeline{Seed: r.Seed, OnStep: r.observe}
	ctx, err := p.Execute(r.Commands...)
	r.Result = ctx
	if err != nil {
		r.Logger.Event("run.error", map[string]any{"error": err.Error()})
		return ctx, err
	}
	r.Logger.Event("run.done", map[string]any{"cursor": ctx.Cursor, "lines": ctx.Len()})
	return ctx, nil
}

func (r *Runner) observe(step edit.Step) {
	r.Journal.Observe(step)
	fields := map[string]any{
		"step":    step.Index + 1,
		"command": edit.Describe(step.Command),
		"cursor":  step.After.Cursor,
		"lines":   step.After.Len(),
	}
	if step.Err != nil {
		fields["error"] = step.Err.Error()
		r.Logger.Event("command.error", fields)
		return
	}
	r.Logger.Event("command.apply", fields)
}

// RunFiles loads the script and seed files, executes the script and writes
// the final buffer to w.
func (r *Runner) RunFiles(scriptPath, seedPath string, w io.Writer) error {
	if err := r.LoadScript(scriptPath); err != nil {
		return err
	}
	if err := r.LoadSeed(seedPath); err != nil {
		return err
	}
	ctx, err := r.Execute()
	if err != nil {
		return err
	}
	return r.Render(w, ctx)
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
}

// View opens the step viewer on the journal recorded by Execute.
func (r *Runner) View() error {
	if err := r.InitScreen(); err != nil {
		return err
	}
	defer r.Fini()
	v := &Viewer{Screen: r.Screen, Journal: r.Journal, Keymap: r.Config.Keymap}
	r.Logger.Event("view.start", map[string]any{"steps": r.Journal.Len()})
	return v.Run()
}
