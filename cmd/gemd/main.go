package main

import (
	"crypto/tls"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/gemnet/gemd"
)

var (
	addr     = flag.String("addr", "127.0.0.1:1965", "listen address")
	certFile = flag.String("c", "", "TLS cert file (PEM)")
	keyFile  = flag.String("k", "", "TLS key file (PEM)")
	root     = flag.String("d", ".", "static file directory")
	echoMode = flag.Bool("echo", false, "serve the echo handler instead of static files")
	level    = flag.String("level", "info", "log level (trace, debug, info, warn, error)")
	maxConns = flag.Int("max-conns", 0, "max concurrent connections, 0 for unlimited")
	timeout  = flag.Duration("timeout", 0, "per-connection read/write timeout, 0 for none")
)

func main() {
	flag.Parse()

	logLevel, err := zerolog.ParseLevel(*level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(logLevel).
		With().Timestamp().Logger()

	if *certFile == "" || *keyFile == "" {
		logger.Fatal().Msg("both -c and -k are required")
	}

	cer, err := tls.LoadX509KeyPair(*certFile, *keyFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load certificates")
	}

	var handler gemd.Handler
	if *echoMode {
		handler = gemd.EchoHandler{}
	} else {
		fh := gemd.NewFileHandler(*root)
		fh.Logger = logger
		handler = fh
	}

	srv := &gemd.Server{
		Addr:         *addr,
		Handler:      handler,
		TLSConfig:    &tls.Config{Certificates: []tls.Certificate{cer}},
		ReadTimeout:  *timeout,
		WriteTimeout: *timeout,
		MaxConns:     *maxConns,
		Logger:       logger,
	}

	logger.Info().Str("addr", *addr).Bool("echo", *echoMode).Msg("serving")
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
