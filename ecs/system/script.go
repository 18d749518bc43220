package system

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/owl/ecs"
)

const scriptTimeout = 50 * time.Millisecond

// scriptModules are the tengo stdlib modules level scripts may import; os
// and file access are left out.
var scriptModules = []string{"math", "text", "fmt", "times"}

// ScriptRunner runs the small tengo snippets that levels attach to badguys,
// such as a dead script. Scripts see:
//
//	entity      the id of the entity the script belongs to
//	tick        the current world tick
//	log(msg)    write msg to the game log
//	emit(name)  push a script event onto the world queue
type ScriptRunner struct {
	logger  *log.Logger
	modules *tengo.ModuleMap
}

func NewScriptRunner(logger *log.Logger) *ScriptRunner {
	if logger == nil {
		logger = log.Default()
	}
	return &ScriptRunner{
		logger:  logger,
		modules: stdlib.GetModuleMap(scriptModules...),
	}
}

// Run compiles and runs src for entity e.
func (r *ScriptRunner) Run(w *ecs.World, e ecs.Entity, src string) error {
	if r == nil || w == nil || src == "" {
		return nil
	}
	script := tengo.NewScript([]byte(src))
	script.SetImports(r.modules)

	if err := script.Add("entity", int64(e)); err != nil {
		return fmt.Errorf("script: bind entity: %w", err)
	}
	if err := script.Add("tick", int64(w.Tick())); err != nil {
		return fmt.Errorf("script: bind tick: %w", err)
	}
	if err := script.Add("log", &tengo.UserFunction{Name: "log", Value: r.logFunc(e)}); err != nil {
		return fmt.Errorf("script: bind log: %w", err)
	}
	if err := script.Add("emit", &tengo.UserFunction{Name: "emit", Value: emitFunc(w, e)}); err != nil {
		return fmt.Errorf("script: bind emit: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if _, err := script.RunContext(ctx); err != nil {
		return fmt.Errorf("script: entity=%d: %w", e, err)
	}
	return nil
}

func (r *ScriptRunner) logFunc(e ecs.Entity) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		msg, _ := tengo.ToString(args[0])
		r.logger.Info(msg, "entity", e)
		return tengo.UndefinedValue, nil
	}
}

func emitFunc(w *ecs.World, e ecs.Entity) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[0].TypeName()}
		}
		w.Events().Push(ecs.Event{Type: ecs.EventScript, Data: ecs.ScriptEmitted{Entity: e, Name: name}})
		return tengo.UndefinedValue, nil
	}
}
