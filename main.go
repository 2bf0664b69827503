package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"Overtourissimus/internal/config"
	"Overtourissimus/internal/counterd"
	lnet "Overtourissimus/internal/net"
	"Overtourissimus/internal/remote"
	"Overtourissimus/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [serve]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch flag.Arg(0) {
	case "":
		runBoard(cfg)
	case "serve":
		runServer(cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runBoard(cfg *config.Config) {
	log.Printf("Starting board (counter backend %s)", cfg.Counter.Backend)
	client := &http.Client{Timeout: cfg.Counter.Timeout.Duration}
	backend, err := remote.NewBackend(cfg.Counter, client)
	if err != nil {
		log.Fatalf("Failed to set up counter backend: %v", err)
	}
	ui.RunApp(cfg, remote.NewSync(backend, cfg.Counter.Timeout.Duration))
}

func runServer(cfg *config.Config) {
	log.Println("Starting counter service")
	srv, err := counterd.New(counterd.Config{
		Namespace: cfg.Counter.Namespace,
		Key:       cfg.Counter.Key,
		Bin:       cfg.Server.Bin,
		MasterKey: cfg.Counter.MasterKey,
		StateFile: cfg.Server.StateFile,
	})
	if err != nil {
		log.Fatalf("Failed to start counter service: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port, err := listenPort(cfg.Server.Addr)
	if err != nil {
		log.Fatalf("Bad server address %q: %v", cfg.Server.Addr, err)
	}
	if cfg.Server.Advertise {
		mdnsServer, err := lnet.Advertise(port, cfg.Counter.Namespace, cfg.Counter.Key)
		if err != nil {
			log.Printf("mDNS advertise failed, continuing without it: %v", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}
	log.Printf("Boards on this network can use base_url = %q", lnet.BaseURL(lnet.LocalIP(), port))

	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		log.Fatalf("Counter service stopped: %v", err)
	}
}

func listenPort(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(p)
}
