package main

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/websocket"

	"github.com/amiralikarma0098/noortoos/internal/academy"
	"github.com/amiralikarma0098/noortoos/internal/catalog"
	"github.com/amiralikarma0098/noortoos/internal/config"
	"github.com/amiralikarma0098/noortoos/internal/files"
	"github.com/amiralikarma0098/noortoos/internal/llm"
	"github.com/amiralikarma0098/noortoos/internal/searchidx"
	"github.com/amiralikarma0098/noortoos/internal/store"
)

// Server holds all shared state. Every dependency is constructed once in
// main and passed in; handlers never reach for globals.
type Server struct {
	cfg       *config.Config
	store     *store.Store
	files     *files.Handler
	catalog   *catalog.Catalog
	model     llm.Analyzer
	search    *searchidx.Index
	assistant *academy.Assistant
	upgrader  websocket.Upgrader
}

// ========== Middleware ==========

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware keeps a panicking handler from killing the server.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				jsonErr(w, "خطای داخلی سرور", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ========== Helpers ==========

func jsonResp(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{"error": true, "message": msg})
}
