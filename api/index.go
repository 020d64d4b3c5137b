package handler

import (
	"net/http"
	"sync"

	"litrato/config"
	"litrato/di"
	"litrato/shared/logger"
	transport "litrato/transport/http"
)

var (
	boot   sync.Once
	server *transport.HTTP
)

// Handler is the serverless entry point. The dependency graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	boot.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
