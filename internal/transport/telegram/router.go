package telegram

import (
	"context"
	"log"
	"regexp"
)

// HandlerFunc is the signature for all update handlers.
type HandlerFunc func(ctx context.Context, client *Client, update Update)

// callbackRoute pairs a regex pattern with a handler.
type callbackRoute struct {
	pattern *regexp.Regexp
	handler HandlerFunc
}

// Router dispatches incoming updates to registered handlers.
//
// Dispatch priority:
//  1. Command handlers (exact match on command name)
//  2. Callback query handlers (regex match on callback data)
//  3. The default text handler
type Router struct {
	commands    map[string]HandlerFunc
	callbacks   []callbackRoute
	defaultText HandlerFunc
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		commands:  make(map[string]HandlerFunc),
		callbacks: make([]callbackRoute, 0),
	}
}

// AddCommand registers a handler for a bot command (e.g. "start" for /start).
func (r *Router) AddCommand(name string, handler HandlerFunc) {
	r.commands[name] = handler
}

// AddCallbackQuery registers a handler for callback queries matching the
// regex pattern.
func (r *Router) AddCallbackQuery(pattern string, handler HandlerFunc) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Printf("[Router] WARNING: invalid callback pattern %q: %v", pattern, err)
		return
	}
	r.callbacks = append(r.callbacks, callbackRoute{pattern: re, handler: handler})
}

// SetDefaultText registers the handler for plain text messages that matched
// no command.
func (r *Router) SetDefaultText(handler HandlerFunc) {
	r.defaultText = handler
}

// Dispatch routes an update to the appropriate handler. It reports whether
// a handler was found and invoked.
func (r *Router) Dispatch(ctx context.Context, client *Client, update Update) bool {
	// 1. Command messages
	if update.Message != nil && update.Message.IsCommand() {
		if handler, ok := r.commands[update.Message.Command()]; ok {
			handler(ctx, client, update)
			return true
		}
		// Unknown command falls through to the default text handler
	}

	// 2. Callback queries
	if update.CallbackQuery != nil {
		data := update.CallbackQuery.Data
		for _, route := range r.callbacks {
			if route.pattern.MatchString(data) {
				route.handler(ctx, client, update)
				return true
			}
		}
		return false
	}

	// 3. Plain text
	if update.Message != nil && update.Message.Text != "" && r.defaultText != nil {
		r.defaultText(ctx, client, update)
		return true
	}

	return false
}
