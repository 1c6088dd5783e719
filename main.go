package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handcraftlab/atelier/config"
	"github.com/handcraftlab/atelier/internal/adminapi"
	"github.com/handcraftlab/atelier/internal/app"
	"github.com/handcraftlab/atelier/internal/storefront"
	"github.com/handcraftlab/atelier/internal/webserver"
)

var (
	h        bool
	initdb   bool
	conffile string
)

func init() {
	flag.BoolVar(&h, "h", false, "help usage")
	flag.BoolVar(&initdb, "initdb", false, "drop and recreate all tables, then exit")
	flag.StringVar(&conffile, "c", "/etc/atelier.yml", "config file")
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(conffile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if initdb {
		application.InitDb()
		fmt.Println("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.Init()
	storefront.Init()

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		return webserver.Listen()
	})

	g.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigs:
			zap.S().Infof("received signal %s, shutting down", sig)
		case <-ctx.Done():
		}
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return webserver.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server exited with error: %v", err)
		os.Exit(1)
	}
}
