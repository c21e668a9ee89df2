package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/promptdeck/promptdeck-backend/usecases"
)

const (
	DEFAULT_TIMEOUT            = 10 * time.Second
	DEFAULT_PLAYGROUND_TIMEOUT = 2 * time.Minute
)

func NewServer(router *gin.Engine, conf Configuration, uc usecases.Usecases, auth Authentication) *http.Server {
	conf = withDefaultTimeouts(conf)
	addRoutes(router, conf, uc, auth)

	// Streams are bounded by the playground timeout, plus a margin to end them gracefully
	writeTimeout := max(conf.DefaultTimeout, conf.PlaygroundTimeout) + 5*time.Second

	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.Port),
		ReadTimeout:  conf.DefaultTimeout + 5*time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  writeTimeout,
		Handler:      h2c.NewHandler(router, &http2.Server{}),
	}
}

func withDefaultTimeouts(conf Configuration) Configuration {
	if conf.DefaultTimeout <= 0 {
		conf.DefaultTimeout = DEFAULT_TIMEOUT
	}
	if conf.PlaygroundTimeout <= 0 {
		conf.PlaygroundTimeout = DEFAULT_PLAYGROUND_TIMEOUT
	}
	return conf
}
