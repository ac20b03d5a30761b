package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/viant/afs"

	"winsbygroup.com/appmachineid/internal/appspecific"
	"winsbygroup.com/appmachineid/internal/config"
	"winsbygroup.com/appmachineid/internal/server"
	"winsbygroup.com/appmachineid/internal/source"
	"winsbygroup.com/appmachineid/internal/version"
)

func main() {
	//
	// Flags
	//
	configPath := flag.String("config", "config.yaml", "path to config file")
	appFlag := flag.String("app", "", "print the app-specific machine id for this application uuid and exit")
	plainFlag := flag.Bool("plain", false, "with -app, print 32 hex digits without hyphens")
	routesFlag := flag.Bool("routes", false, "print routes and exit")
	demoFlag := flag.Bool("demo", false, "load sample applications when creating a new database")
	flag.Parse()

	//
	// Load configuration
	//
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *demoFlag {
		cfg.Demo = true
	}

	//
	// One-shot lookup mode
	//
	if *appFlag != "" {
		id, err := lookup(cfg, *appFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if *plainFlag {
			id = strings.ReplaceAll(id, "-", "")
		}
		fmt.Println(id)
		return
	}

	fmt.Println(version.Banner())

	//
	// Build server (Echo, DB, services, etc.)
	//
	srv, err := server.Build(cfg)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}
	defer srv.DB.Close()

	//
	// Routes inspection mode
	//
	if *routesFlag {
		routes := srv.Echo.Routes()
		sort.Slice(routes, func(i, j int) bool {
			return routes[i].Path < routes[j].Path
		})

		for _, r := range routes {
			fmt.Printf("%-6s %s\n", r.Method, r.Path)
		}

		return
	}

	//
	// Normal server startup
	//
	go func() {
		if err := srv.Echo.StartServer(srv.HTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.Echo.Logger.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Echo.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

// lookup derives the id for appID without opening the registry database.
func lookup(cfg *config.Config, appID string) (string, error) {
	svc := appspecific.NewService(source.New(afs.New(), cfg.MachineIDPaths...), nil)

	res, err := svc.GetString(context.Background(), appID)
	if err != nil {
		return "", err
	}
	return res.MachineID, nil
}
