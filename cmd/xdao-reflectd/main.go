package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"xdao.co/reflector/addr"
	"xdao.co/reflector/host/grpchost"
	"xdao.co/reflector/query"
	"xdao.co/reflector/store/kvregistry"
	"xdao.co/reflector/unit"
	"xdao.co/reflector/wire"

	_ "xdao.co/reflector/store/localfs"
)

func main() {
	fs := flag.NewFlagSet("xdao-reflectd", flag.ExitOnError)
	configPath := fs.String("config", "", "Optional TOML config file")
	listen := fs.String("listen", "", "listen address (overrides config)")
	backend := fs.String("backend", "", "KV backend name (overrides config)")
	unitAddr := fs.String("unit-addr", "", "hosted unit's display address (overrides config)")
	metricsListen := fs.String("metrics-listen", "", "Prometheus /metrics listen address (overrides config)")
	upstream := fs.String("upstream", "", "Optional upstream UnitHost for forwarded queries")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	kvregistry.RegisterFlags(fs, kvregistry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range kvregistry.List(kvregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	logger := initLogger("xdao-reflectd")

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("config")
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *unitAddr != "" {
		cfg.UnitAddr = *unitAddr
	}
	if *metricsListen != "" {
		cfg.MetricsListen = *metricsListen
	}

	kv, closeFn, err := kvregistry.Open(cfg.Backend, kvregistry.UsageDaemon)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Backend).Msg("open backend")
	}
	if closeFn != nil {
		defer closeFn()
	}

	querier := query.Querier(noQuerier{})
	if *upstream != "" {
		client, err := grpchost.Dial(*upstream, grpchost.DialOptions{
			Timeout:     5 * time.Second,
			MaxMsgBytes: cfg.MaxMsgBytes,
		})
		if err != nil {
			logger.Fatal().Err(err).Str("upstream", *upstream).Msg("dial upstream")
		}
		defer client.Close()
		client.Timeout = 5 * time.Second
		querier = client.Querier()
	}

	registerMetrics()
	if cfg.MetricsListen != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info().Str("addr", cfg.MetricsListen).Msg("metrics listening")
			if err := http.ListenAndServe(cfg.MetricsListen, mux); err != nil {
				logger.Error().Err(err).Msg("metrics listener")
			}
		}()
	}

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.Listen).Msg("listen")
	}
	defer lis.Close()

	s := grpc.NewServer(grpc.UnaryInterceptor(metricsInterceptor))
	grpchost.RegisterUnitHostServer(s, &grpchost.Server{
		Deps: unit.Deps{
			Store:   kv,
			Addr:    addr.CIDCodec{},
			Querier: query.NewWrapper[unit.SpecialQuery](querier),
		},
		Env: unit.Env{UnitAddr: cfg.UnitAddr},
	})

	logger.Info().
		Str("addr", lis.Addr().String()).
		Str("backend", cfg.Backend).
		Str("unit", cfg.UnitAddr).
		Msg("listening")
	if err := s.Serve(lis); err != nil {
		logger.Fatal().Err(err).Msg("serve")
	}
}

func initLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("app", app).Logger()
}

// noQuerier answers every forwarded query with a transport-layer failure.
// It stands in when no upstream host is configured.
type noQuerier struct{}

func (noQuerier) RawQuery(request []byte) query.RawResult {
	return query.HostErr[query.UnitResult[wire.Binary]]("no upstream querier configured")
}
