// Package script lets a Lua chunk supply the Validate, Normalize and Foreign
// hooks of a field.
//
// A script defines any of these globals:
//
//	function validate(raw) return #raw <= 6 end
//	function normalize(input) return maskfield.digits(input) end
//	function foreign(raw) return "ID-" .. raw end
//
// normalize returns nil when the input is not recognised; foreign may return
// nil and a message to report an error. The state runs without io, os, debug
// or package libraries. Scripts are not safe for concurrent use, matching the
// single-threaded field they serve.
package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/maskfield/internal/field"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 250 * time.Millisecond

// Hook names looked up in the script.
const (
	HookValidate  = "validate"
	HookNormalize = "normalize"
	HookForeign   = "foreign"
)

// Script is a loaded hook script.
type Script struct {
	name    string
	L       *lua.LState
	timeout time.Duration
	hooks   map[string]*lua.LFunction
	closed  bool
}

// Option configures a Script.
type Option func(*Script)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Load executes src and collects the hook functions it defines.
func Load(name, src string, opts ...Option) (*Script, error) {
	s := &Script{
		name:    name,
		timeout: DefaultTimeout,
		hooks:   make(map[string]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.L.SetGlobal("maskfield", newHelperModule(s.L))

	if err := s.run(func() error { return s.L.DoString(src) }); err != nil {
		s.L.Close()
		return nil, fmt.Errorf("loading script %s: %w", name, err)
	}

	for _, hook := range []string{HookValidate, HookNormalize, HookForeign} {
		if fn, ok := s.L.GetGlobal(hook).(*lua.LFunction); ok {
			s.hooks[hook] = fn
		}
	}
	if len(s.hooks) == 0 {
		s.L.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoHooks)
	}
	return s, nil
}

// openSafeLibraries opens the libraries a hook needs and nothing that
// reaches outside the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// Name returns the script name.
func (s *Script) Name() string {
	return s.name
}

// Has reports whether the script defines hook.
func (s *Script) Has(hook string) bool {
	_, ok := s.hooks[hook]
	return ok
}

// Close releases the Lua state.
func (s *Script) Close() {
	if !s.closed {
		s.closed = true
		s.L.Close()
	}
}

// Apply returns cfg with the hooks the script defines installed. Hooks the
// script leaves out keep their existing value.
func (s *Script) Apply(cfg field.Config) field.Config {
	if s.Has(HookValidate) {
		cfg.Validate = s.Validate
	}
	if s.Has(HookNormalize) {
		cfg.Normalize = s.Normalize
	}
	if s.Has(HookForeign) {
		cfg.Foreign = s.Foreign
	}
	return cfg
}

// Validate calls the validate hook. Script errors reject the edit.
func (s *Script) Validate(raw string) bool {
	ret, err := s.call(HookValidate, 1, lua.LString(raw))
	if err != nil {
		return false
	}
	return lua.LVAsBool(ret[0])
}

// Normalize calls the normalize hook.
func (s *Script) Normalize(input string) (string, bool) {
	ret, err := s.call(HookNormalize, 1, lua.LString(input))
	if err != nil {
		return "", false
	}
	str, ok := ret[0].(lua.LString)
	if !ok {
		return "", false
	}
	return string(str), true
}

// Foreign calls the foreign hook.
func (s *Script) Foreign(raw string) (string, error) {
	ret, err := s.call(HookForeign, 2, lua.LString(raw))
	if err != nil {
		return "", err
	}
	if str, ok := ret[0].(lua.LString); ok {
		return string(str), nil
	}
	if ret[0] == lua.LNil && ret[1] != lua.LNil {
		return "", fmt.Errorf("%s: %s", s.name, ret[1].String())
	}
	return "", fmt.Errorf("%s: %w: %s", s.name, ErrBadReturn, ret[0].Type())
}

// call invokes hook and returns exactly nret values.
func (s *Script) call(hook string, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	if s.closed {
		return nil, ErrClosed
	}
	fn, ok := s.hooks[hook]
	if !ok {
		return nil, fmt.Errorf("%s: hook %q not defined", s.name, hook)
	}

	err := s.run(func() error {
		return s.L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", s.name, hook, err)
	}

	ret := make([]lua.LValue, nret)
	for i := nret - 1; i >= 0; i-- {
		ret[i] = s.L.Get(-1)
		s.L.Pop(1)
	}
	return ret, nil
}

// run executes fn under the call timeout, converting panics into errors.
func (s *Script) run(fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// newHelperModule builds the maskfield table exposed to scripts.
func newHelperModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"digits": func(L *lua.LState) int {
			s := L.CheckString(1)
			L.Push(lua.LString(strings.Map(func(r rune) rune {
				if r >= '0' && r <= '9' {
					return r
				}
				return -1
			}, s)))
			return 1
		},
		"pad": func(L *lua.LState) int {
			s := L.CheckString(1)
			n := L.CheckInt(2)
			if len(s) < n {
				s = strings.Repeat("0", n-len(s)) + s
			}
			L.Push(lua.LString(s))
			return 1
		},
	})
}
