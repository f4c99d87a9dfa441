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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/shopconfig/configdb"
	"github.com/cardinalhq/shopconfig/internal/configservice"
)

func init() {
	rootCmd.AddCommand(getSiteCmd())
}

func getSiteCmd() *cobra.Command {
	siteCmd := &cobra.Command{
		Use:   "site",
		Short: "Site-wide settings",
	}

	siteCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the site configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				site, ok := rt.svc.GetSiteConfig(ctx)
				return printSite(site, ok)
			})
		},
	})

	siteCmd.AddCommand(&cobra.Command{
		Use:   "reload",
		Short: "Drop the cached site configuration everywhere and load it again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				site, ok := rt.svc.ReloadSiteConfig(ctx)
				return printSite(site, ok)
			})
		},
	})

	var params configdb.SiteConfigParams
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the site configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithRuntime(cmd, func(ctx context.Context, rt *shopRuntime) error {
				site, err := rt.svc.SetSiteConfig(ctx, params)
				if err != nil {
					return err
				}
				return printSite(site, true)
			})
		},
	}
	setCmd.Flags().StringVar(&params.Name, "name", "", "Site name (required)")
	setCmd.Flags().StringVar(&params.Tagline, "tagline", "", "Tagline")
	setCmd.Flags().StringVar(&params.ContactEmail, "contact-email", "", "Contact email")
	setCmd.Flags().StringVar(&params.ContactPhone, "contact-phone", "", "Contact phone")
	setCmd.Flags().StringVar(&params.Address, "address", "", "Postal address")
	setCmd.Flags().StringVar(&params.PrimaryColor, "primary-color", "", "Primary brand color")
	setCmd.Flags().StringVar(&params.SecondaryColor, "secondary-color", "", "Secondary brand color")
	setCmd.Flags().StringVar(&params.LogoUrl, "logo-url", "", "Logo URL")
	setCmd.Flags().StringVar(&params.CurrencyDisplay, "currency-display", "symbol", "Show prices with the currency symbol or code")
	_ = setCmd.MarkFlagRequired("name")
	siteCmd.AddCommand(setCmd)

	return siteCmd
}

func printSite(site configdb.SiteConfig, ok bool) error {
	if !ok {
		return fmt.Errorf("site configuration: %w", configservice.ErrNotConfigured)
	}
	return emit(site, func(w io.Writer) {
		fmt.Fprintf(w, "Name:             %s\n", site.Name)
		if site.Tagline != "" {
			fmt.Fprintf(w, "Tagline:          %s\n", site.Tagline)
		}
		fmt.Fprintf(w, "Contact email:    %s\n", site.ContactEmail)
		fmt.Fprintf(w, "Contact phone:    %s\n", site.ContactPhone)
		fmt.Fprintf(w, "Address:          %s\n", site.Address)
		fmt.Fprintf(w, "Colors:           %s / %s\n", site.PrimaryColor, site.SecondaryColor)
		fmt.Fprintf(w, "Logo:             %s\n", site.LogoUrl)
		fmt.Fprintf(w, "Currency display: %s\n", site.CurrencyDisplay)
	})
}
