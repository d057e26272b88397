package main

import (
	"encoding/json"
	"io"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/premiumkit/pkg/httpserver"
	"github.com/dmitrymomot/premiumkit/pkg/logger"
	"github.com/dmitrymomot/premiumkit/svc/premium"
)

func newServeCmd() *cobra.Command {
	var skipFetch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Fetch products and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			if !skipFetch {
				if err := a.manager.FetchProducts(ctx); err != nil {
					a.log.WarnContext(ctx, "initial products fetch failed", logger.Error(err))
				}
			}

			r := httpserver.NewRouter(a.log)
			r.Get("/healthz", httpserver.HealthCheckHandler(a.log, a.checks()))
			r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
			r.Mount("/premium", premium.NewHandler(a.manager).Handle())

			return httpserver.New(a.http, httpserver.WithLogger(a.log)).Run(ctx, r)
		},
	}
	cmd.Flags().BoolVar(&skipFetch, "skip-fetch", false, "do not fetch products before serving")
	return cmd
}

func newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "Fetch products and print the resolved paywall",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.manager.FetchProducts(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.manager.Snapshot())
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore purchases and print the premium status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.manager.RestorePurchases(cmd.Context())
			if err != nil {
				return err
			}
			if result.Err != nil {
				a.log.WarnContext(cmd.Context(), "restore reported an error", logger.Error(result.Err))
			}
			return printJSON(cmd.OutOrStdout(), premium.OperationResult{
				Result: result,
				Error:  errText(result.Err),
				State:  a.manager.Snapshot(),
			})
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print whether premium access is active",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			active, err := a.manager.RefreshStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"is_premium": active})
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
