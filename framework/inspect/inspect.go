// Package inspect exposes a read-only HTTP view of a registry.
//
//	GET /                      → {"data": {"id", "names", "tags"}}
//	GET /bindings/{name}       → {"data": {"name", "shared", "value"}}
//	GET /tags/{tag}            → {"data": {"tag", "names"}}
//	GET /tags/{tag}/snapshot   → {"data": {"tag", "registry", "values"}}
//
// Resolving a binding over HTTP runs its factory like any other Get.
package inspect

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/km-arc/go-pore/framework/container"
	gohttp "github.com/km-arc/go-pore/framework/http"
	"github.com/km-arc/go-pore/framework/routing"
)

// Handler serves the inspector endpoints for one registry.
type Handler struct {
	registry *container.Registry
	logger   *slog.Logger
}

// New creates a Handler. A nil logger falls back to slog.Default().
func New(r *container.Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{registry: r, logger: logger}
}

// Routes registers the endpoints on router.
//
//	router.Prefix("/registry", inspect.New(reg, logger).Routes)
func (h *Handler) Routes(router *routing.Router) {
	router.Get("/", h.summary)
	router.Get("/bindings/{name}", h.binding)
	router.Get("/tags/{tag}", h.tagged)
	router.Get("/tags/{tag}/snapshot", h.snapshot)
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(map[string]any{
		"id":    h.registry.ID(),
		"names": h.registry.Names(),
		"tags":  h.registry.TagNames(),
	})
}

func (h *Handler) binding(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	name := routing.Param(req, "name")

	v, err := h.registry.Get(name)
	if err != nil {
		h.fail(res, err)
		return
	}

	res.Success(map[string]any{
		"name":   name,
		"shared": h.registry.IsShared(name),
		"value":  encodable(v),
	})
}

func (h *Handler) tagged(w http.ResponseWriter, req *http.Request) {
	tag := routing.Param(req, "tag")
	gohttp.NewResponse(w).Success(map[string]any{
		"tag":   tag,
		"names": h.registry.Tagged(tag),
	})
}

func (h *Handler) snapshot(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	tag := routing.Param(req, "tag")

	derived, err := h.registry.NewFromTag(tag)
	if err != nil {
		h.fail(res, err)
		return
	}

	values := make(map[string]any)
	for _, name := range derived.Names() {
		v, err := derived.Get(name)
		if err != nil {
			h.fail(res, err)
			return
		}
		values[name] = encodable(v)
	}

	res.Success(map[string]any{
		"tag":      tag,
		"registry": derived.ID(),
		"values":   values,
	})
}

func (h *Handler) fail(res *gohttp.Response, err error) {
	if errors.Is(err, container.ErrUndefinedKey) {
		res.NotFound(err.Error())
		return
	}
	h.logger.Error("inspector resolution failed", slog.String("error", err.Error()))
	res.ServerError()
}

// encodable returns v when it marshals to JSON, otherwise its %v rendering.
func encodable(v any) any {
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return v
}
