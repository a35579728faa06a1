//go:build js && wasm

// Package web binds the engine's host interfaces to the browser through
// syscall/js.
package web

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/engine/signal"
)

var ErrForeignImage = errors.New("image does not belong to the web host")

type Host struct{}

func New() *Host {
	return &Host{}
}

func (*Host) Window() (platform.Window, bool) {
	w := js.Global().Get("window")
	if !present(w) {
		return nil, false
	}
	return &Window{v: w}, true
}

type Window struct {
	v js.Value
}

func (w *Window) Document() (platform.Document, bool) {
	d := w.v.Get("document")
	if !present(d) {
		return nil, false
	}
	return &Document{v: d}, true
}

func (w *Window) NewImage() (platform.Image, error) {
	ctor := w.v.Get("Image")
	if !present(ctor) {
		return nil, errors.New("could not create HtmlImageElement: no Image constructor")
	}
	var (
		v   js.Value
		err error
	)
	if err = catch(func() { v = ctor.New() }); err != nil {
		return nil, fmt.Errorf("could not create HtmlImageElement: %w", err)
	}
	return &Image{v: v}, nil
}

// Fetch calls window.fetch and reads the body as bytes. A response with a
// non-2xx status is returned, not an error; only a rejected promise is.
func (w *Window) Fetch(ctx context.Context, path string) (*platform.Response, error) {
	var p js.Value
	if err := catch(func() { p = w.v.Call("fetch", path) }); err != nil {
		return nil, err
	}
	resp, err := await(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", path, err)
	}
	r := &platform.Response{
		Path:   path,
		Status: resp.Get("status").Int(),
		OK:     resp.Get("ok").Bool(),
	}
	if !r.OK {
		return r, nil
	}

	if err := catch(func() { p = resp.Call("arrayBuffer") }); err != nil {
		return nil, err
	}
	buf, err := await(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	u8 := js.Global().Get("Uint8Array").New(buf)
	r.Body = make([]byte, u8.Get("length").Int())
	js.CopyBytesToGo(r.Body, u8)
	return r, nil
}

func (w *Window) RequestAnimationFrame(cb platform.FrameCallback) (int, error) {
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		fn.Release()
		var ts float64
		if len(args) > 0 {
			ts = args[0].Float()
		}
		cb(ts)
		return nil
	})
	var id js.Value
	if err := catch(func() { id = w.v.Call("requestAnimationFrame", fn) }); err != nil {
		fn.Release()
		return 0, fmt.Errorf("cannot request animation frame: %w", err)
	}
	return id.Int(), nil
}

type Document struct {
	v js.Value
}

func (d *Document) ElementByID(id string) (platform.Element, bool) {
	el := d.v.Call("getElementById", id)
	if !present(el) {
		return nil, false
	}
	return &Element{v: el}, true
}

type Element struct {
	v js.Value
}

func (e *Element) Context(kind string) (platform.Context2D, bool) {
	if e.v.Get("getContext").Type() != js.TypeFunction {
		return nil, false
	}
	var ctx js.Value
	if err := catch(func() { ctx = e.v.Call("getContext", kind) }); err != nil || !present(ctx) {
		return nil, false
	}
	if ctor := js.Global().Get("CanvasRenderingContext2D"); present(ctor) && !ctx.InstanceOf(ctor) {
		return nil, false
	}
	return &Context{v: ctx}, true
}

// Context wraps a CanvasRenderingContext2D.
type Context struct {
	v js.Value
}

func element(img platform.Image) (js.Value, error) {
	wi, ok := img.(*Image)
	if !ok {
		return js.Undefined(), ErrForeignImage
	}
	return wi.v, nil
}

func (c *Context) DrawImage(img platform.Image, dx, dy float64) error {
	v, err := element(img)
	if err != nil {
		return err
	}
	return catch(func() { c.v.Call("drawImage", v, dx, dy) })
}

func (c *Context) DrawImageRect(img platform.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	v, err := element(img)
	if err != nil {
		return err
	}
	return catch(func() { c.v.Call("drawImage", v, sx, sy, sw, sh, dx, dy, dw, dh) })
}

func (c *Context) ClearRect(x, y, w, h float64) error {
	return catch(func() { c.v.Call("clearRect", x, y, w, h) })
}

// Image wraps an HtmlImageElement. Both handlers are detached and released
// once either of them fires.
type Image struct {
	v       js.Value
	src     string
	onLoad  js.Func
	onError js.Func
}

func (i *Image) SetOnLoad(f func()) {
	i.onLoad.Release()
	i.onLoad = js.FuncOf(func(this js.Value, args []js.Value) any {
		i.release()
		f()
		return nil
	})
	i.v.Set("onload", i.onLoad)
}

func (i *Image) SetOnError(f func(error)) {
	i.onError.Release()
	i.onError = js.FuncOf(func(this js.Value, args []js.Value) any {
		err := fmt.Errorf("error loading image %q: %w", i.src, eventError(args))
		i.release()
		f(err)
		return nil
	})
	i.v.Set("onerror", i.onError)
}

func (i *Image) release() {
	i.v.Set("onload", js.Null())
	i.v.Set("onerror", js.Null())
	i.onLoad.Release()
	i.onError.Release()
	i.onLoad = js.Func{}
	i.onError = js.Func{}
}

func (i *Image) SetSrc(src string) {
	i.src = src
	i.v.Set("src", src)
}

func (i *Image) Src() string {
	return i.src
}

func (i *Image) Size() (int, int) {
	return i.v.Get("naturalWidth").Int(), i.v.Get("naturalHeight").Int()
}

// await bridges a promise into a Go return through a Signal.
func await(ctx context.Context, p js.Value) (js.Value, error) {
	sig := signal.New[js.Value]()
	onFulfilled := js.FuncOf(func(this js.Value, args []js.Value) any {
		v := js.Undefined()
		if len(args) > 0 {
			v = args[0]
		}
		sig.Succeed(v)
		return nil
	})
	onRejected := js.FuncOf(func(this js.Value, args []js.Value) any {
		sig.Fail(eventError(args))
		return nil
	})
	go func() {
		<-sig.Done()
		onFulfilled.Release()
		onRejected.Release()
	}()
	p.Call("then", onFulfilled, onRejected)
	return sig.Wait(ctx)
}

// JSError carries a JavaScript error or event value.
type JSError struct {
	Value js.Value
}

func (e *JSError) Error() string {
	v := e.Value
	switch {
	case !present(v):
		return "javascript error"
	case v.Type() == js.TypeObject && v.Get("message").Type() == js.TypeString:
		return v.Get("message").String()
	case v.Type() == js.TypeObject && v.Get("type").Type() == js.TypeString:
		return v.Get("type").String() + " event"
	default:
		return js.Global().Get("String").Invoke(v).String()
	}
}

func eventError(args []js.Value) error {
	if len(args) == 0 {
		return &JSError{Value: js.Undefined()}
	}
	return &JSError{Value: args[0]}
}

// catch turns a JavaScript exception thrown during fn into an error.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jerr, ok := r.(js.Error); ok {
				err = &JSError{Value: jerr.Value}
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

func present(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}
