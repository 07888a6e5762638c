package shell

import (
	"context"
	"errors"
	"net/http"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/boggle/search"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("boggle_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand exposes a shell command to scripts. The Lua function takes the
// rest of the command line as one string and returns the command's output,
// or nil and an error message.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := name
		if L.GetTop() > 0 {
			line += " " + L.ToString(1)
		}
		sc := getShell(L)
		cmd, err := extractFields(line)
		if err != nil {
			log.Err(err).Msg("error-parsing-" + name)
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		r, err := sc.dispatch(context.Background(), cmd)
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// Words returns the words of the last solve, at least minlen long, as a
// Lua array.
func Words(L *lua.LState) int {
	sc := getShell(L)
	tbl := L.NewTable()
	for _, w := range search.FilterLength(sc.lastWords, sc.minLength) {
		tbl.Append(lua.LString(w))
	}
	L.Push(tbl)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{}).Loader)

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal("boggle_shell", lsc)
	for _, name := range []string{"new", "board", "load", "solve", "find", "stats", "set"} {
		L.SetGlobal("boggle_"+name, L.NewFunction(luaCommand(name)))
	}
	L.SetGlobal("boggle_words", L.NewFunction(Words))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg("ran " + filepath), nil
}
