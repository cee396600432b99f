/*
 * main.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Command atomstruct reads structures, summarizes them and keeps their
// sessions in a local store.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rmera/atomstruct"
	"github.com/rmera/atomstruct/config"
	"github.com/rmera/atomstruct/sessionstore"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	showMetrics bool

	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *atomstruct.Metrics

	rootCmd = &cobra.Command{
		Use:   "atomstruct",
		Short: "Inspect molecular structures and manage their sessions",
		Long: `atomstruct reads PDB files into the atomstruct model, reports
polymers, categories, rings and chains, and saves or restores
structure sessions in a local badger store.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if showMetrics {
				printMetrics(cmd.ErrOrStderr())
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default ~/.atomstruct/atomstruct.yaml)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print the work counters on exit")
}

// setup loads the configuration and builds the logger and the metrics
// shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	registry = prometheus.NewRegistry()
	metrics = atomstruct.NewMetrics(registry)
	logger.Debug("configuration loaded", "path", configPath, "store", cfg.Store.Path)
	return nil
}

// structureOptions are the options every structure built by the CLI gets.
func structureOptions() []atomstruct.Option {
	return []atomstruct.Option{
		atomstruct.WithLogger(logger),
		atomstruct.WithHeuristics(cfg.Categories),
		atomstruct.WithMetrics(metrics),
	}
}

func openStore() (*sessionstore.Store, error) {
	return sessionstore.Open(cfg.Store, logger)
}

func printMetrics(w io.Writer) {
	families, err := registry.Gather()
	if err != nil {
		logger.Warn("gathering metrics", "err", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var v float64
			switch {
			case m.GetCounter() != nil:
				v = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				v = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			labels := ""
			for _, l := range m.GetLabel() {
				labels += fmt.Sprintf("{%s=%s}", l.GetName(), l.GetValue())
			}
			fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels, v)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
