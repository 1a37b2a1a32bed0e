// mockapi levanta el backend falso del marketplace para desarrollo local
// y tests e2e. Data en memoria, seed fija, sin auth.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/patitas/internal/metrics"
	"github.com/dropDatabas3/patitas/internal/mockapi"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
)

func main() {
	_ = godotenv.Load()

	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger.Init(logger.Config{
		Env:         os.Getenv("APP_ENV"),
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "mockapi",
	})
	defer func() { _ = logger.Sync() }()

	log := logger.Named("mockapi")

	// Las métricas del SDK van al registry default, que es el que sirve
	// /metrics; sin este registro las familias no aparecen en el scrape.
	if err := metrics.RegisterClient(nil); err != nil {
		log.Fatal("metrics", logger.Err(err))
	}

	log.Info("mock backend escuchando", logger.String("addr", addr))

	srv := &http.Server{
		Addr:         addr,
		Handler:      mockapi.New().Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server falló", logger.Err(err))
	}
}
