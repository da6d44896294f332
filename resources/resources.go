// Package resources serves the persisted create/read/list/delete routes for virtual
// machines, virtual networks and storage accounts.
package resources

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/valyala/fastjson"

	"github.com/siegeai/cloudmock/auth"
	"github.com/siegeai/cloudmock/persist"
	"github.com/siegeai/cloudmock/reply"
)

const (
	ResourceGroupPrefix = "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/"

	maxBodyBytes = 1 << 20
)

type Handler struct {
	store persist.Service
	gate  auth.Gate
	kinds []Kind
}

func New(store persist.Service, gate auth.Gate) *Handler {
	return &Handler{
		store: store,
		gate:  gate,
		kinds: Kinds,
	}
}

func (k Kind) CollectionPath() string {
	return ResourceGroupPrefix + k.Namespace + "/" + k.Collection
}

func (k Kind) ItemPath() string {
	return k.CollectionPath() + "/{" + k.NameVar + "}"
}

// Register installs the routes of every kind, each behind the auth gate.
func (h *Handler) Register(router *mux.Router) {
	guard := auth.Middleware(h.gate)
	for _, k := range h.kinds {
		router.Handle(k.ItemPath(), guard(h.handlePut(k))).Methods(http.MethodPut)
		router.Handle(k.ItemPath(), guard(h.handleGet(k))).Methods(http.MethodGet)
		router.Handle(k.ItemPath(), guard(h.handleDelete(k))).Methods(http.MethodDelete)
		router.Handle(k.CollectionPath(), guard(h.handleList(k))).Methods(http.MethodGet)
	}
}

func (h *Handler) Kinds() []Kind {
	return h.kinds
}

func itemKey(r *http.Request, k Kind) persist.Key {
	vars := mux.Vars(r)
	return persist.Key{
		ResourceGroup: vars["resourceGroupName"],
		Name:          vars[k.NameVar],
	}
}

func (h *Handler) handlePut(k Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			reply.Error(w, http.StatusBadRequest, "could not read request body")
			return
		}
		v, err := fastjson.ParseBytes(body)
		if err != nil {
			reply.Error(w, http.StatusBadRequest, fmt.Sprintf("request body is not valid JSON: %v", err))
			return
		}
		if v.Type() != fastjson.TypeObject {
			reply.Error(w, http.StatusBadRequest, "request body must be a JSON object")
			return
		}
		fields, err := k.decode(v)
		if err != nil {
			reply.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		rec := h.store.Upsert(k.Collection, itemKey(r, k), fields)
		reply.JSON(w, http.StatusOK, k.render(rec))
	}
}

func (h *Handler) handleGet(k Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := h.store.Get(k.Collection, itemKey(r, k))
		if !ok {
			reply.Error(w, http.StatusNotFound, k.NotFound)
			return
		}
		reply.JSON(w, http.StatusOK, k.render(rec))
	}
}

func (h *Handler) handleList(k Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs := h.store.List(k.Collection, persist.Filter{ResourceGroup: mux.Vars(r)["resourceGroupName"]})
		res := make([]any, len(recs))
		for i, rec := range recs {
			res[i] = k.render(rec)
		}
		reply.JSON(w, http.StatusOK, res)
	}
}

func (h *Handler) handleDelete(k Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.store.Delete(k.Collection, itemKey(r, k)) {
			reply.Error(w, http.StatusNotFound, k.NotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
