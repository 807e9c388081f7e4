// Package web is a thin layer over gin that lets handlers return errors
// and compose middleware the same way for every route.
package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles a request. A returned error is one the handler could not
// render itself.
type Handler func(c *Context) error

// Middleware wraps a Handler with extra behaviour.
type Middleware func(Handler) Handler

// App is the entrypoint into the application. It embeds the gin engine so
// plain gin handlers can still be registered next to web handlers.
type App struct {
	*gin.Engine
	mw []Middleware
}

// NewApp creates an App with request logging and panic recovery. The given
// middleware run around every web handler.
func NewApp(mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	return &App{
		Engine: engine,
		mw:     mw,
	}
}

// Handle registers handler for method and path. Route middleware runs inside
// the application wide middleware.
func (a *App) Handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := &Context{
			Context: gc,
			Ctx:     gc.Request.Context(),
		}

		if err := handler(c); err != nil {
			log.Printf("web: %s %s: %v", method, path, err)
			if !gc.Writer.Written() {
				gc.JSON(http.StatusInternalServerError, gin.H{
					"error":  http.StatusText(http.StatusInternalServerError),
					"status": false,
				})
			}
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodDelete, path, handler, mw...)
}

// wrapMiddleware wraps handler so that the first middleware in mw is the
// outermost one.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}

	return handler
}
