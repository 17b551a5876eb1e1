// Unattended mode of operation: telemetry, remote commands, metrics.
package service

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/temoto/paystation/cmd/paystation/subcmd"
	"github.com/temoto/paystation/internal/state"
)

const (
	modName            = "service"
	idleCheckMin       = time.Second
	shutdownTimeout    = 5 * time.Second
	metricsReadTimeout = 10 * time.Second
)

var Mod = subcmd.Mod{Name: modName, Help: "run unattended under systemd", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	if err := g.Init(ctx, config); err != nil {
		return errors.Annotate(err, "init")
	}
	defer g.Tele.Close()

	go stopOnSignal(g)

	var srv *http.Server
	if listen := g.Config.Paystation.MetricsListen; listen != "" {
		srv = &http.Server{
			Addr:              listen,
			Handler:           metricsHandler(g),
			ReadHeaderTimeout: metricsReadTimeout,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				g.Error(err, "metrics listen=%s", listen)
				g.Stop()
			}
		}()
	}

	go idleLoop(g, idleCheckInterval(g.Config.CancelIdle()))

	subcmd.SdNotify(daemon.SdNotifyReady)
	g.Log.Infof("service init complete")
	if err := g.Tele.Report(ctx); err != nil {
		g.Error(err, "boot report")
	}

	<-g.Alive.StopChan()
	subcmd.SdNotify(daemon.SdNotifyStopping)
	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		_ = srv.Shutdown(sctx)
		cancel()
	}
	g.Alive.Wait()
	g.Log.Infof("service stopped")
	return nil
}

func metricsHandler(g *state.Global) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g.Metrics, promhttp.HandlerOpts{ErrorLog: g.Log}))
	return mux
}

func stopOnSignal(g *state.Global) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sigCh:
		g.Log.Infof("signal=%v stopping", s)
		g.Stop()
	case <-g.Alive.StopChan():
	}
	signal.Stop(sigCh)
}

func idleCheckInterval(timeout time.Duration) time.Duration {
	d := timeout / 4
	if d < idleCheckMin {
		d = idleCheckMin
	}
	return d
}

// idleLoop returns coins of abandoned transaction.
func idleLoop(g *state.Global, interval time.Duration) {
	const tag = "service.idle"

	if g.Config.CancelIdle() == 0 {
		return
	}
	if !g.Alive.Add(1) {
		return
	}
	defer g.Alive.Done()

	tmr := time.NewTicker(interval)
	defer tmr.Stop()
	stopCh := g.Alive.StopChan()
	for {
		select {
		case <-stopCh:
			return
		case <-tmr.C:
			if returned, ok := g.CancelIdle(); ok {
				g.Log.Infof("%s cancelled returned=%v", tag, returned)
			}
		}
	}
}
