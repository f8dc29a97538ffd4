package server

import "net/http"

type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
}

func register(mux *http.ServeMux, routes ...route) {
	for _, r := range routes {
		mux.HandleFunc(r.method+" "+r.pattern, r.handler)
	}
}

func (s *Server) routes() []route {
	return []route{
		{http.MethodPost, "/api/analyze", s.handleAnalyze},
		{http.MethodPost, "/api/extract", s.handleExtract},
		{http.MethodPost, "/api/attempt", s.handleAttempt},
		{http.MethodGet, "/api/stats", s.handleStats},
		{http.MethodGet, "/api/health", s.handleHealth},
	}
}
