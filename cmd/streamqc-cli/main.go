// v0
// cmd/streamqc-cli/main.go is the operator debug CLI: resolve inspects
// threshold resolution for a given PUID/family/instant against a
// badger registry file, and seed loads a YAML fixture of key/value
// pairs into one. Grounded on the cobra root/subcommand shape of
// roach88-nysm/brutalist/internal/cli (root.go, validate.go) and its
// yaml.v3 KnownFields fixture-loading pattern (internal/harness/scenario.go).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindis/observation-management-system/internal/model"
	"github.com/mindis/observation-management-system/internal/registry"
	"github.com/mindis/observation-management-system/internal/resolver"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streamqc-cli",
		Short: "Operator tooling for the streaming QC evaluation engine",
	}
	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newSeedCommand())
	return cmd
}

func newResolveCommand() *cobra.Command {
	var dbPath, feature, procedure, property, family, windowDuration string
	var instantMs int64

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve threshold methods for a PUID/family at an instant, against a badger registry file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := registry.OpenBadgerStore(dbPath)
			if err != nil {
				return fmt.Errorf("open registry: %w", err)
			}
			defer store.Close()

			client := registry.NewClient(store, nil, nil, nil)
			r := resolver.New(client)
			p := model.PUID{Feature: feature, Procedure: procedure, ObservableProperty: property}
			instant := time.UnixMilli(instantMs).UTC()

			var methods []resolver.Method
			if family == "sigma" {
				if windowDuration == "" {
					return fmt.Errorf("--window-duration is required for family=sigma")
				}
				methods = r.ResolveSigmaFamily(context.Background(), p, windowDuration, instant)
			} else {
				methods = r.ResolveFamily(context.Background(), p, family, instant)
			}

			if len(methods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no methods resolved")
				return nil
			}
			for _, m := range methods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tgranularity=%s\tmin=%s\tmax=%s\n", m.Name, m.Granularity, formatBound(m.Min), formatBound(m.Max))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "./data/registry", "path to the badger registry directory")
	cmd.Flags().StringVar(&feature, "feature", "", "PUID feature")
	cmd.Flags().StringVar(&procedure, "procedure", "", "PUID procedure")
	cmd.Flags().StringVar(&property, "observableproperty", "", "PUID observableproperty")
	cmd.Flags().StringVar(&family, "family", "range", "check family (range, delta::step, delta::spike, sigma)")
	cmd.Flags().StringVar(&windowDuration, "window-duration", "", "classified window duration (1h, 12h, 24h); required for family=sigma")
	cmd.Flags().Int64Var(&instantMs, "instant-ms", 0, "instant to resolve at, epoch milliseconds UTC")
	cmd.MarkFlagRequired("feature")
	cmd.MarkFlagRequired("procedure")
	cmd.MarkFlagRequired("observableproperty")
	return cmd
}

func formatBound(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *f)
}

func newSeedCommand() *cobra.Command {
	var dbPath, fixturePath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture of registry key/value entries into a badger store",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}
			store, err := registry.OpenBadgerStore(dbPath)
			if err != nil {
				return fmt.Errorf("open registry: %w", err)
			}
			defer store.Close()

			for _, e := range fixture.Entries {
				if err := store.Set(e.Key, e.Value); err != nil {
					return fmt.Errorf("seed %q: %w", e.Key, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries into %s\n", len(fixture.Entries), dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "./data/registry", "path to the badger registry directory")
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to the YAML fixture file")
	cmd.MarkFlagRequired("fixture")
	return cmd
}
