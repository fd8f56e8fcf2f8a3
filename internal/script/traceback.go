package script

import (
	lua "github.com/yuin/gopher-lua"

	"gamehost/internal/errors"
)

const noMessage = "(no error message)"

// trap is the message handler installed under a protected call. It records
// the readable message and, when the runtime has debug.traceback, the stack
// at the point of the error.
type trap struct {
	caught bool
	msg    string
	trace  string
}

func (t *trap) handle(L *lua.LState) int {
	t.caught = true
	t.msg = message(L, L.Get(1))
	t.trace = traceback(L)
	L.Push(lua.LString(t.msg))
	return 1
}

// err builds the structured error for a failed protected call.
func (t *trap) err(phase errors.Phase, callErr error) *errors.Error {
	if t.caught {
		return errors.Runtime(phase, t.msg, t.trace)
	}
	if api, ok := callErr.(*lua.ApiError); ok {
		msg := noMessage
		if api.Object != nil {
			msg = api.Object.String()
		}
		return errors.Runtime(phase, msg, api.StackTrace)
	}
	return errors.Runtime(phase, callErr.Error(), "")
}

// message renders a raised value: strings as they are, everything else
// through tostring (honouring __tostring).
func message(L *lua.LState, v lua.LValue) string {
	switch v := v.(type) {
	case lua.LString:
		return string(v)
	case nil:
		return noMessage
	}
	if v == lua.LNil {
		return noMessage
	}
	s := L.ToStringMeta(v).String()
	if s == "" {
		return noMessage
	}
	return s
}

func traceback(L *lua.LState) string {
	dbg, ok := L.GetGlobal("debug").(*lua.LTable)
	if !ok {
		return ""
	}
	fn, ok := L.GetField(dbg, "traceback").(*lua.LFunction)
	if !ok {
		return ""
	}
	L.Push(fn)
	L.Call(0, 1)
	tb := L.Get(-1)
	L.Pop(1)
	if s, ok := tb.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// Call invokes fn with args under the traceback handler, leaving nret results
// on the stack. A raised error comes back as an *errors.Error of kind runtime
// whose Detail is the message and Trace the call stack.
func Call(L *lua.LState, phase errors.Phase, fn lua.LValue, nret int, args ...lua.LValue) error {
	var t trap
	handler := L.NewFunction(t.handle)
	L.Push(fn)
	for _, a := range args {
		L.Push(a)
	}
	if err := L.PCall(len(args), nret, handler); err != nil {
		return t.err(phase, err)
	}
	return nil
}
