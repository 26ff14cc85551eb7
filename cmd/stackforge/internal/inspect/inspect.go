// Package inspect serves the resolved topology of a spec over HTTP,
// for inspecting what a compile run would produce without writing files.
package inspect

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/schema"

	"github.com/broady/stackforge/gateway"
	"github.com/broady/stackforge/ir"
	"github.com/broady/stackforge/spec"
)

type Cmd struct {
	File string `help:"Spec file to inspect." short:"f" default:"stackforge.yaml"`
	Port int    `help:"Port to listen on." short:"p" default:"9010"`
}

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// topologyQuery filters the /topology response.
type topologyQuery struct {
	// Service restricts the response to one service by name.
	Service string `schema:"service"`
}

func (c *Cmd) Run() error {
	project, err := spec.LoadFile(c.File)
	if err != nil {
		return err
	}
	if errs := spec.Validate(project); len(errs) > 0 {
		for _, verr := range errs {
			fmt.Fprintf(os.Stderr, "error[%s]: %s\n", verr.Code, verr.Error())
		}
		return fmt.Errorf("%d validation error(s)", len(errs))
	}

	irp := ir.Build(project)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("/topology", func(w http.ResponseWriter, r *http.Request) {
		var q topologyQuery
		if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
			http.Error(w, "bad query: "+err.Error(), http.StatusBadRequest)
			return
		}
		if q.Service != "" {
			svc := irp.FindService(q.Service)
			if svc == nil {
				http.Error(w, "unknown service: "+q.Service, http.StatusNotFound)
				return
			}
			writeJSON(w, svc)
			return
		}
		writeJSON(w, irp)
	})
	mux.HandleFunc("/routes", func(w http.ResponseWriter, r *http.Request) {
		type route struct {
			Prefix   string `json:"prefix"`
			Upstream string `json:"upstream"`
			Service  string `json:"service"`
		}
		var out []route
		for _, rt := range gateway.Routes(irp) {
			out = append(out, route{Prefix: rt.Prefix, Upstream: rt.Upstream, Service: rt.Service})
		}
		writeJSON(w, out)
	})

	addr := fmt.Sprintf("localhost:%d", c.Port)
	fmt.Printf("stackforge inspect listening on http://%s\n", addr)
	return http.ListenAndServe(addr, logRequests(logger, mux))
}

// logRequests logs each request with its duration, in the shape the
// generated services log theirs.
func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
