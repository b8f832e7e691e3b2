// Command bloomdemo is a small demonstration binary: it loads a YAML
// config describing a BloomSet and a BloomMap, exercises both, serves
// Prometheus metrics, and logs every mutation as structured JSON.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"github.com/bloomlattice/bloomlattice/bloomconfig"
	"github.com/bloomlattice/bloomlattice/bloomfactory"
	"github.com/bloomlattice/bloomlattice/lattice"
	"github.com/bloomlattice/bloomlattice/metrics"
	"github.com/bloomlattice/bloomlattice/store"
)

// config is the shape of the YAML file bloomdemo loads: a capacity and
// hashCount shared by both demo structures, plus the bounds of the
// integer-range lattice the BloomMap demo uses.
type config struct {
	Capacity      int    `yaml:"capacity"`
	HashCount     int    `yaml:"hashCount"`
	LatticeKind   string `yaml:"latticeKind"`
	LatticeLo     int    `yaml:"latticeLo"`
	LatticeHi     int    `yaml:"latticeHi"`
	ListenAddress string `yaml:"listenAddress"`
}

func loadConfig(path string) (config, error) {
	cfg := config{Capacity: 10000, HashCount: 4, LatticeKind: "intrange", LatticeLo: 0, LatticeHi: 1000, ListenAddress: ":9100"}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("bloomdemo: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("bloomdemo: parse config: %w", err)
	}
	return cfg, nil
}

func stringConfig(cfg config) (*bloomconfig.Config[string], error) {
	toBytes := func(s string) []byte { return []byte(s) }
	return bloomfactory.NewConfig[string](cfg.Capacity, cfg.HashCount, toBytes, cfg.HashCount)
}

func main() {
	configPath := flag.String("config", "bloomdemo.yaml", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	rec := metrics.NewRecorder(registry, "bloomdemo")

	bloomCfg, err := stringConfig(cfg)
	if err != nil {
		logger.Error("failed to build config", "error", err)
		os.Exit(1)
	}

	wordFactory, err := bloomfactory.New(bloomCfg, bloomfactory.WithName[string]("words"), bloomfactory.WithLogger[string](logger), bloomfactory.WithRecorder[string](rec))
	if err != nil {
		logger.Error("failed to build word factory", "error", err)
		os.Exit(1)
	}

	set := wordFactory.NewSet()
	for _, w := range []string{"alpha", "bravo", "charlie", "delta"} {
		if _, err := set.Add(w); err != nil {
			logger.Error("add failed", "word", w, "error", err)
		}
	}
	logger.Info("bloomset demo populated", "fillRatio", set.FillRatio(), "falsePositiveProbability", set.FalsePositiveProbability())
	rec.FillRatio("words", set.FillRatio())

	if cfg.LatticeKind == "intrange" {
		runMapDemo(cfg, logger, rec)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", "address", cfg.ListenAddress)
	if err := http.ListenAndServe(cfg.ListenAddress, mux); err != nil {
		logger.Error("metrics server exited", "error", err)
		os.Exit(1)
	}
}

// runMapDemo builds a BloomMap[string,int] over an IntRangeLattice and
// exercises Put/GetSupremum/Keys the way spec §8's scenarios describe.
func runMapDemo(cfg config, logger *slog.Logger, rec *metrics.Recorder) {
	bloomCfg, err := stringConfig(cfg)
	if err != nil {
		logger.Error("failed to build map config", "error", err)
		return
	}
	keyFactory, err := bloomfactory.New(bloomCfg, bloomfactory.WithName[string]("scores"), bloomfactory.WithLogger[string](logger), bloomfactory.WithRecorder[string](rec))
	if err != nil {
		logger.Error("failed to build map factory", "error", err)
		return
	}
	rangeLattice := lattice.NewIntRangeLattice(cfg.LatticeLo, cfg.LatticeHi)
	values := store.New[int](cfg.Capacity, rangeLattice.Bottom())

	m, err := bloomfactory.NewMapFromStore[string, int](keyFactory, values, rangeLattice)
	if err != nil {
		logger.Error("failed to build bloommap", "error", err)
		return
	}

	scores := map[string]int{"alice": 42, "bob": 900, "carol": 17}
	for name, score := range scores {
		if _, err := m.Put(name, score); err != nil {
			logger.Error("put failed", "name", name, "error", err)
		}
	}
	for name := range scores {
		logger.Info("score supremum", "name", name, "supremum", m.GetSupremum(name), "mightContain", m.Keys().MightContain(name))
	}
	logger.Info("bloommap demo populated", "fillRatio", m.FillRatio())
}
