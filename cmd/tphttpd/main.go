package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/Gnomino/TP-HTTP/internal/config"
	"github.com/Gnomino/TP-HTTP/internal/server"
	"github.com/Gnomino/TP-HTTP/internal/version"
)

func main() {
	var configPath string
	var listen string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to config json file (optional)")
	flag.StringVar(&listen, "listen", "", `Listen address override, e.g. ":3000"`)
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.Get().String())
		return
	}

	// Load + validate config.
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("FATAL: load config %q: %v", configPath, err)
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}
	if listen != "" {
		cfg.Listen = listen
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("FATAL: invalid config: %v", err)
		fmt.Fprintln(os.Stderr, "Invalid config:", err)
		os.Exit(1)
	}

	wd, _ := os.Getwd()
	log.Printf("tphttpd %s", version.Get().String())
	log.Printf("Listening on %s", color.GreenString(cfg.Listen))
	log.Printf("Working directory: %s (root_dir=%s)", wd, cfg.RootDir)
	log.Printf("(press ctrl-c to exit)")

	srv := server.New(cfg)

	// Bind first (so we can fail early), then serve.
	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Printf("FATAL: listen %q failed: %v", cfg.Listen, err)
		fmt.Fprintln(os.Stderr, "Listen failed:", err)
		os.Exit(1)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		log.Printf("Shutdown signal received")
		_ = srv.Close()
	}()

	if err := srv.Serve(ln); err != nil {
		log.Fatal(err)
	}

	printSummary(srv)
}

func printSummary(srv *server.Server) {
	st := srv.Stats()
	log.Printf("Served %d requests (%d errors) over %ds, %d bytes in, %d bytes out, avg %d ms",
		st.TotalReq, st.TotalErr, st.UptimeSec, st.BytesIn, st.BytesOut, st.AvgMs)
	for verb, n := range st.ByVerb {
		log.Printf("  %-7s %d", verb, n)
	}
}
