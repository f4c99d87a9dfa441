// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/shopconfig/internal/configservice"
)

func init() {
	rootCmd.AddCommand(getFlagCmd())
}

func getFlagCmd() *cobra.Command {
	flagCmd := &cobra.Command{
		Use:   "flag",
		Short: "Read and write feature flags",
	}

	flagCmd.AddCommand(&cobra.Command{
		Use:   "get <name>",
		Short: "Resolve a feature flag; missing or unreadable flags are off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				res := rt.svc.ResolveFeatureFlag(ctx, args[0])
				return emit(map[string]any{
					"name":    res.Name,
					"enabled": res.Enabled,
					"outcome": res.Outcome.String(),
				}, func(w io.Writer) {
					fmt.Fprintf(w, "%s: %s (%s)\n", res.Name, onOff(res.Enabled), res.Outcome)
				})
			})
		},
	})

	var (
		enabled     bool
		description string
	)
	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a feature flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				row, err := rt.svc.SetFeatureFlag(ctx, args[0], enabled, description)
				if err != nil {
					return err
				}
				return emit(row, func(w io.Writer) {
					fmt.Fprintf(w, "Feature flag %s is now %s\n", row.Name, onOff(row.Enabled))
				})
			})
		},
	}
	setCmd.Flags().BoolVar(&enabled, "enabled", false, "Turn the flag on")
	setCmd.Flags().StringVar(&description, "description", "", "Description")
	flagCmd.AddCommand(setCmd)

	flagCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every stored feature flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				flags, err := rt.store.ListFeatureFlags(ctx)
				if err != nil {
					return fmt.Errorf("failed to list feature flags: %w", err)
				}
				return emit(flags, func(w io.Writer) {
					rows := make([][]string, 0, len(flags))
					for _, f := range flags {
						rows = append(rows, []string{f.Name, onOff(f.Enabled), f.Description})
					}
					table(w, []string{"NAME", "STATE", "DESCRIPTION"}, rows)
				})
			})
		},
	})

	var interval time.Duration
	watchCmd := &cobra.Command{
		Use:   "watch <name>",
		Short: "Resolve a feature flag until interrupted, printing each change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithListener(cmd, func(ctx context.Context, rt *shopRuntime) error {
				return watchFlag(ctx, rt.svc, args[0], interval, stdout)
			})
		},
	}
	watchCmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "How often to resolve the flag")
	flagCmd.AddCommand(watchCmd)

	return flagCmd
}

type flagResolver interface {
	ResolveFeatureFlag(ctx context.Context, name string) configservice.FlagResolution
}

// watchFlag prints the flag once, then again whenever its resolved state
// or outcome changes. It returns when ctx is done.
func watchFlag(ctx context.Context, r flagResolver, name string, interval time.Duration, w io.Writer) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		last    configservice.FlagResolution
		printed bool
	)
	for {
		res := r.ResolveFeatureFlag(ctx, name)
		if ctx.Err() != nil {
			return nil
		}
		if !printed || res.Enabled != last.Enabled || res.Outcome != last.Outcome {
			if err := printFlagChange(w, res); err != nil {
				return err
			}
			last, printed = res, true
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func printFlagChange(w io.Writer, res configservice.FlagResolution) error {
	now := time.Now().UTC()
	if jsonOutput {
		return json.NewEncoder(w).Encode(map[string]any{
			"time":    now,
			"name":    res.Name,
			"enabled": res.Enabled,
			"outcome": res.Outcome.String(),
		})
	}
	_, err := fmt.Fprintf(w, "%s %s: %s (%s)\n", now.Format(time.RFC3339), res.Name, onOff(res.Enabled), res.Outcome)
	return err
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
