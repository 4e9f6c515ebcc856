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
	"path/filepath"
	"syscall"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/hub"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Hand Gesture Event Service")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	configPath := flag.String("config", filepath.Join(dataDir, "config.yaml"), "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	h := hub.New()
	h.Start()

	application, err := app.New(app.Config{
		Hub:          h,
		CameraID:     cfg.Camera.DeviceID,
		MotionThresh: cfg.Camera.MotionThreshold,
		Classifier:   app.LoadCalibration(st),
	})
	if err != nil {
		log.Fatalf("Failed to initialize detection: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.Fatalf("Failed to start detection pipeline: %v", err)
	}

	srv := server.New(server.Config{
		StaticDir: findWebDir(dataDir),
		Store:     st,
		Hub:       h,
		Camera:    application.Camera(),
	})

	addr := cfg.Server.Addr()
	go func() {
		log.Printf("Listening on ws://%s/ws", addr)
		if err := srv.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	quitCh := make(chan struct{})

	wait := func() {
		// Stop on a signal, a tray quit, or an unrecoverable pipeline
		// failure, then tear down in order: pipeline first, then the
		// listener, then the remaining consumers.
		select {
		case sig := <-sigCh:
			log.Printf("Received %s, shutting down", sig)
			cancel()
			application.Wait()
		case <-quitCh:
			log.Println("Quit requested, shutting down")
			cancel()
			application.Wait()
		case err := <-application.Err():
			if err != nil {
				log.Printf("Detection pipeline failed: %v", err)
			}
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}

		h.Stop()
	}

	if cfg.Tray.Enabled {
		t := tray.New()
		t.OnToggle(application.SetEnabled)
		t.OnQuit(func() { close(quitCh) })
		h.Attach(t.Sink())

		go func() {
			wait()
			t.Quit()
		}()
		t.Run()
		return
	}

	wait()
}

// findWebDir searches for the dashboard assets in common locations.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	candidates := []string{"web", "../web", filepath.Join(dataDir, "web")}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}
	return ""
}
