package harness

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/cluehunt/prefabs"
)

type scriptCache struct {
	compiled map[string]*tengo.Compiled
}

func newScriptCache() *scriptCache {
	return &scriptCache{compiled: map[string]*tengo.Compiled{}}
}

func (c *scriptCache) invalidate(name string) {
	delete(c.compiled, scriptKey(name))
}

func scriptKey(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "prefabs/")
	return strings.TrimPrefix(name, "scripts/")
}

// Script runs a tengo scenario from prefabs/scripts. The script sees
// solve(id, code), all_solved(), solved(), reset(), lock(bool), log(msg)
// and reports back through its result global.
func (h *Harness) Script(name string) Action {
	return func(env *Env) (string, error) {
		compiled, err := h.compileScript(name)
		if err != nil {
			return "", err
		}
		if err := compiled.Set("result", ""); err != nil {
			return "", err
		}
		if err := compiled.Run(); err != nil {
			return "", fmt.Errorf("harness: run %s: %w", name, err)
		}
		return objectAsString(compiled.Get("result").Object()), nil
	}
}

// RunSource compiles and runs tengo source once, without caching.
func (h *Harness) RunSource(src string) (string, error) {
	compiled, err := compileWith([]byte(src), h.env)
	if err != nil {
		return "", err
	}
	if err := compiled.Run(); err != nil {
		return "", err
	}
	return objectAsString(compiled.Get("result").Object()), nil
}

func (h *Harness) compileScript(name string) (*tengo.Compiled, error) {
	key := scriptKey(name)
	if compiled, ok := h.scripts.compiled[key]; ok {
		return compiled, nil
	}

	src, err := prefabs.LoadScript(key)
	if err != nil {
		return nil, fmt.Errorf("harness: load script %s: %w", key, err)
	}
	compiled, err := compileWith(src, h.env)
	if err != nil {
		return nil, fmt.Errorf("harness: compile %s: %w", key, err)
	}
	h.scripts.compiled[key] = compiled
	return compiled, nil
}

func compileWith(src []byte, env *Env) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	if err := script.Add("result", ""); err != nil {
		return nil, err
	}
	for name, fn := range scriptFunctions(env) {
		if err := script.Add(name, fn); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func scriptFunctions(env *Env) map[string]*tengo.UserFunction {
	fns := map[string]*tengo.UserFunction{}

	fns["solve"] = &tengo.UserFunction{Name: "solve", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if env == nil || env.Clues == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		id := objectAsString(args[0])
		if err := env.Clues.SolveClue(id, objectAsString(args[1])); err != nil {
			log.Printf("harness: script solve %s: %v", id, err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	fns["all_solved"] = &tengo.UserFunction{Name: "all_solved", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if env == nil || env.Clues == nil || !env.Clues.AllCluesSolved() {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	fns["solved"] = &tengo.UserFunction{Name: "solved", Value: func(args ...tengo.Object) (tengo.Object, error) {
		arr := &tengo.Array{}
		if env == nil || env.Clues == nil {
			return arr, nil
		}
		for _, id := range env.Clues.Solved() {
			arr.Value = append(arr.Value, &tengo.String{Value: id})
		}
		return arr, nil
	}}

	fns["reset"] = &tengo.UserFunction{Name: "reset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if env == nil || env.Clues == nil {
			return tengo.FalseValue, nil
		}
		env.Clues.Reset()
		return tengo.TrueValue, nil
	}}

	fns["lock"] = &tengo.UserFunction{Name: "lock", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if env == nil || env.Camera == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		env.Camera.SetCameraLocked(!args[0].IsFalsy())
		return tengo.TrueValue, nil
	}}

	fns["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("harness: script: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return fns
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
