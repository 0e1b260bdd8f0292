package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/everydev1618/quizgen/serve"
)

// serveCmd starts the HTTP API server.
func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	common := addCommonFlags(fs)
	addr := fs.String("addr", "", "HTTP listen address (default from config)")
	origins := fs.String("origins", "", "Comma-separated CORS origins (default from config)")
	allowLocal := fs.Bool("allow-local-exec", false, "Run code sections on the host with the local runner")

	fs.Usage = func() {
		fmt.Println(`Usage: quizgen serve [options]

Start the HTTP API:
  POST /quiz/output    {"input": "..."}  plain-text quiz
  POST /quiz/generate  {"input": "..."}  quiz_files.zip (DOCX + CSV)
  POST /quiz/validate  {"input": "..."}  template problems

Options:`)
		fs.PrintDefaults()
		fmt.Println(`
Examples:
  quizgen serve
  quizgen serve --addr :8080 --origins http://localhost:4200

Code sections run only with executor.mode docker, or with the local
runner when --allow-local-exec (serve.allow_local_exec) is set.`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	appCfg, logger := common.loadConfig()
	if *allowLocal {
		appCfg.Serve.AllowLocalExec = true
	}
	runner, closeRunner, err := appCfg.ServeRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: code runner unavailable: %v\n", err)
		runner, closeRunner = nil, func() {}
	}
	defer closeRunner()

	cfg := serve.Config{
		Addr:           appCfg.Serve.Addr,
		AllowedOrigins: appCfg.Serve.AllowedOrigins,
		XLSX:           appCfg.Export.XLSX,
		Seed:           appCfg.Generation.Seed,
		Runner:         runner,
		Logger:         logger,
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *origins != "" {
		cfg.AllowedOrigins = strings.Split(*origins, ",")
	}
	if common.seedSet() {
		cfg.Seed = common.seed
	}

	srv := serve.New(cfg)

	// Signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
