package handler

import (
	"net/http"
	"sync"

	"cowork/config"
	"cowork/di"
	"cowork/shared/logger"
	httpTransport "cowork/transport/http"
)

var (
	service *httpTransport.HTTP
	once    sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
