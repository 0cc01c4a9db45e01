// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
}

type handler struct {
	reg *Registry
}

// NewHandler routes <contextPath>/aclAdmin/cache/ to reg.
func NewHandler(reg *Registry, contextPath string) http.Handler {
	h := &handler{reg: reg}
	contextPath = "/" + strings.Trim(contextPath, "/")
	if contextPath == "/" {
		contextPath = ""
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route(contextPath+"/aclAdmin/cache", func(r chi.Router) {
		r.Get("/list", h.list)
		r.Get("/{cacheId}", h.get)
		r.Post("/{cacheId}/refresh", h.refresh)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "Resource not found: "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed: "+req.Method)
	})

	return r
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	caches, err := h.reg.List()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, caches)
}

func (h *handler) get(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "cacheId")
	summary, err := h.reg.Get(id)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Cache ["+id+"] not found")
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeJSON(w, http.StatusOK, summary)
	}
}

func (h *handler) refresh(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "cacheId")
	err := h.reg.Refresh(id)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Cache ["+id+"] not found")
	case errors.Is(err, ErrNotRefreshable), errors.Is(err, ErrRefreshing):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		summary, err := h.reg.Get(id)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorBody{Message: msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		log.WithFields(log.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).Round(time.Microsecond),
		}).Debug("request")
	})
}
