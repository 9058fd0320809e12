package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tradegate/mtgate/internal/metaapi"
	"github.com/tradegate/mtgate/internal/server"
	"github.com/tradegate/mtgate/pkg/logger"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	getenv := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	var (
		listenAddr = flag.String("listen", getenv("MTGATE_LISTEN", ":8080"), "HTTP listen address")
		dbPath     = flag.String("db", os.Getenv("MTGATE_DB"), "SQLite db file path")
		logLevel   = flag.String("log-level", getenv("LOG_LEVEL", "info"), "log level")
		logFile    = flag.String("log-file", os.Getenv("LOG_FILE"), "optional log file (size-rotated)")
	)
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, OutputFile: *logFile}); err != nil {
		fmt.Fprintf(os.Stderr, "init logging failed: %v\n", err)
		os.Exit(1)
	}

	jwtSecret := os.Getenv("MTGATE_JWT_SECRET")
	metaapiToken := os.Getenv("MTGATE_METAAPI_TOKEN")
	switch {
	case *dbPath == "":
		logrus.Fatal("MTGATE_DB is required")
	case jwtSecret == "":
		logrus.Fatal("MTGATE_JWT_SECRET is required")
	case metaapiToken == "":
		logrus.Fatal("MTGATE_METAAPI_TOKEN is required")
	}

	gateway := metaapi.NewClient(metaapi.Config{AuthToken: metaapiToken})

	srv, err := server.New(server.Config{
		DBPath:    *dbPath,
		JWTSecret: []byte(jwtSecret),
	}, gateway)
	if err != nil {
		logrus.Fatalf("init server failed: %v", err)
	}
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              *listenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.Infof("mtgate listening on %s", *listenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("http server error: %v", err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)

	logrus.Info("server stopped")
}
