package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

type route struct {
	method   string
	segments []string // "*" matches one segment, trailing "*" matches the rest
	handler  HandlerFunc
}

// Router is a minimal method-and-path mux with wildcard segments and
// colored request logging. Routes match in registration order, so register
// the more specific paths first.
type Router struct {
	routes []route
}

func New() *Router {
	return &Router{}
}

func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes = append(r.routes, route{
		method:   method,
		segments: splitPath(path),
		handler:  handler,
	})
}

func (r *Router) GET(path string, handler HandlerFunc)    { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)   { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)    { r.register(http.MethodPut, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) { r.register(http.MethodDelete, path, handler) }

// ServeHTTP dispatches to the first matching route and logs the request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	segments := splitPath(req.URL.Path)
	var pathExists bool
	var matched *route
	for i := range r.routes {
		rt := &r.routes[i]
		if !matchSegments(segments, rt.segments) {
			continue
		}
		pathExists = true
		if rt.method == req.Method {
			matched = rt
			break
		}
	}

	switch {
	case matched != nil:
		matched.handler(lrw, req)
	case pathExists:
		http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(lrw, "Not Found", http.StatusNotFound)
	}

	duration := time.Since(start)
	color := statusColor(lrw.statusCode)
	methodCol := methodColor(req.Method)
	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodCol, req.Method, colorReset,
		req.URL.Path,
		color, lrw.statusCode, colorReset,
		colorBlue, duration, colorReset,
	)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(path, pattern []string) bool {
	// trailing "*" swallows any number of remaining segments
	if n := len(pattern); n > 0 && pattern[n-1] == "*" && len(path) >= n-1 {
		if matchExact(path[:n-1], pattern[:n-1]) {
			return true
		}
	}
	return matchExact(path, pattern)
}

func matchExact(path, pattern []string) bool {
	if len(path) != len(pattern) {
		return false
	}
	for i, seg := range pattern {
		if seg != "*" && seg != path[i] {
			return false
		}
	}
	return true
}

// Param returns the path segment at index i, "" when out of range. Handlers
// use it to pull wildcard values out of the request path.
func Param(req *http.Request, i int) string {
	segments := splitPath(req.URL.Path)
	if i < 0 || i >= len(segments) {
		return ""
	}
	return segments[i]
}

// --- Start server ---
func (r *Router) Start(addr string) error {
	log.Printf("🚀 Server listening on %s%s%s", colorGreen, addr, colorReset)
	return http.ListenAndServe(addr, r)
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
