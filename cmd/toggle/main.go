//go:build js && wasm

// Command toggle is the browser side of the theme toggle. It is compiled
// with GOOS=js GOARCH=wasm and loaded by the layout from /static.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"syscall/js"

	"portfolio/internal/uistate"
)

// localStorage adapts window.localStorage. Access can throw (private mode,
// quota, disabled storage), which syscall/js surfaces as a panic.
type localStorage struct {
	v js.Value
}

func (s localStorage) Get(key string) (value string, ok bool, err error) {
	defer recoverJS(&err)
	if s.v.IsUndefined() || s.v.IsNull() {
		return "", false, fmt.Errorf("localStorage unavailable")
	}
	item := s.v.Call("getItem", key)
	if item.IsNull() || item.IsUndefined() {
		return "", false, nil
	}
	return item.String(), true, nil
}

func (s localStorage) Set(key, value string) (err error) {
	defer recoverJS(&err)
	if s.v.IsUndefined() || s.v.IsNull() {
		return fmt.Errorf("localStorage unavailable")
	}
	s.v.Call("setItem", key, value)
	return nil
}

func recoverJS(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("localStorage: %v", r)
	}
}

// documentSurface attaches the drag listeners to the document. The js.Funcs
// live for the page; Acquire only adds and removes them.
type documentSurface struct {
	doc    js.Value
	opts   js.Value
	events map[string]js.Func
}

func (s *documentSurface) Acquire() func() {
	for name, fn := range s.events {
		s.doc.Call("addEventListener", name, fn, s.opts)
	}
	released := false
	return func() {
		if released {
			return
		}
		released = true
		for name, fn := range s.events {
			s.doc.Call("removeEventListener", name, fn, s.opts)
		}
	}
}

type app struct {
	ctrl   *uistate.Controller
	window js.Value
	root   js.Value
	button js.Value
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	window := js.Global()
	doc := window.Get("document")

	surface := &documentSurface{doc: doc, opts: js.ValueOf(map[string]any{"passive": false})}
	a := &app{
		window: window,
		root:   doc.Get("documentElement"),
		ctrl: uistate.New(localStorage{v: storageValue(window)},
			uistate.WithSurface(surface),
			uistate.WithLogger(logger),
		),
	}

	onDrag := js.FuncOf(func(this js.Value, args []js.Value) any {
		a.handle(args[0])
		return nil
	})
	surface.events = make(map[string]js.Func, len(uistate.DragListenerTypes))
	for _, typ := range uistate.DragListenerTypes {
		surface.events[typ] = onDrag
	}

	a.ctrl.Mount(uistate.Environment{
		ViewportWidth:  window.Get("innerWidth").Float(),
		ViewportHeight: window.Get("innerHeight").Float(),
		PrefersDark:    prefersDark(window),
	})

	a.button = a.createButton(doc)
	a.render()

	window.Call("addEventListener", "resize", js.FuncOf(func(this js.Value, args []js.Value) any {
		a.ctrl.Resize(window.Get("innerWidth").Float(), window.Get("innerHeight").Float())
		a.render()
		return nil
	}))
	window.Call("addEventListener", "blur", js.FuncOf(func(this js.Value, args []js.Value) any {
		a.handle(args[0])
		return nil
	}))

	select {}
}

func storageValue(window js.Value) (v js.Value) {
	defer func() {
		if recover() != nil {
			v = js.Undefined()
		}
	}()
	return window.Get("localStorage")
}

// prefersDark reads the system color scheme once. Later changes are ignored.
func prefersDark(window js.Value) bool {
	mm := window.Get("matchMedia")
	if mm.Type() != js.TypeFunction {
		return false
	}
	return window.Call("matchMedia", "(prefers-color-scheme: dark)").Get("matches").Truthy()
}

func (a *app) createButton(doc js.Value) js.Value {
	btn := doc.Call("createElement", "button")
	btn.Set("type", "button")
	btn.Set("id", uistate.ElementID)
	style := btn.Get("style")
	style.Set("position", "fixed")
	style.Set("touchAction", "none")

	onInput := js.FuncOf(func(this js.Value, args []js.Value) any {
		a.handle(args[0])
		return nil
	})
	btn.Call("addEventListener", uistate.PressListenerType, onInput)
	btn.Call("addEventListener", "keydown", onInput)

	doc.Get("body").Call("appendChild", btn)
	return btn
}

// render applies the controller state to the page.
func (a *app) render() {
	st := a.ctrl.State()
	if !st.Ready || a.button.IsUndefined() {
		return
	}

	classes := a.root.Get("classList")
	if st.Theme == uistate.ThemeDark {
		classes.Call("add", "dark")
	} else {
		classes.Call("remove", "dark")
	}

	style := a.button.Get("style")
	style.Set("left", fmt.Sprintf("%.0fpx", st.Position.X))
	style.Set("top", fmt.Sprintf("%.0fpx", st.Position.Y))
	a.button.Get("classList").Call("toggle", uistate.DraggingClass, st.Dragging)

	next := st.Theme.Toggled()
	a.button.Set("textContent", icon(st.Theme))
	a.button.Call("setAttribute", "aria-label", "Switch to "+string(next)+" theme")
	a.button.Call("setAttribute", "aria-pressed", strconv.FormatBool(st.Theme == uistate.ThemeDark))
}

func icon(t uistate.Theme) string {
	if t == uistate.ThemeDark {
		return "☀"
	}
	return "☾"
}

// handle forwards a DOM event to the controller and redraws.
func (a *app) handle(ev js.Value) {
	in := uistate.Input{Type: ev.Get("type").String()}
	if x := ev.Get("clientX"); x.Type() == js.TypeNumber {
		in.X = x.Float()
		in.Y = ev.Get("clientY").Float()
	}
	in.Primary = ev.Get("isPrimary").Truthy()
	if k := ev.Get("key"); k.Type() == js.TypeString {
		in.Key = k.String()
	}

	if a.ctrl.Dispatch(in) && ev.Get("cancelable").Truthy() {
		ev.Call("preventDefault")
	}
	a.render()
}
