package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/usecase"
	"go.uber.org/zap"
)

// withApp opens the shared connections, runs fn and closes them again.
// SIGINT and SIGTERM cancel the context passed to fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newImportCmd() *cobra.Command {
	var withResults bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Run one bulk catalog import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				service, err := a.importService(ctx)
				if err != nil {
					return err
				}

				report, runErr := service.Run(ctx)
				if report != nil {
					out := interface{}(struct {
						dto.ImportRunEvent
						Failures []dto.ItemResult `json:"failures,omitempty"`
					}{report.Event(), report.Failures()})
					if withResults {
						out = report
					}
					if err := printJSON(cmd.OutOrStdout(), out); err != nil {
						return err
					}
				}
				return runErr
			})
		},
	}

	cmd.Flags().BoolVar(&withResults, "results", false, "print every record result, not only failures")
	return cmd
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "sync <brands|attributes|variants>",
		Short:     "Pull one simple entity list from TopTex and upsert it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"brands", "attributes", "variants"},
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, ok := model.ParseEntityType(args[0])
			if !ok || entityType == model.EntityCustomer {
				return fmt.Errorf("unknown entity %q: must be one of brands, attributes, variants", args[0])
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				vendor, err := a.vendorClient()
				if err != nil {
					return err
				}

				report, err := a.entityService(vendor).Sync(ctx, entityType)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

func newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Manage customer specific prices",
	}

	var req usecase.PriceRequest
	var rawPrice string

	set := &cobra.Command{
		Use:   "set",
		Short: "Create or update the price of a SKU for a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(rawPrice)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", rawPrice, err)
			}
			req.Price = price

			return withApp(cmd, func(ctx context.Context, a *app) error {
				saved, err := a.priceService().CreateOrUpdatePrice(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), saved)
			})
		},
	}
	set.Flags().StringVar(&req.SKU, "sku", "", "product variant SKU")
	set.Flags().StringVar(&req.CustomerRef, "customer", "", "customer external id")
	set.Flags().StringVar(&rawPrice, "price", "", "price, must be greater than zero")
	set.Flags().StringVar(&req.Currency, "currency", "", "ISO 4217 currency (defaults to pricing.currency)")
	_ = set.MarkFlagRequired("sku")
	_ = set.MarkFlagRequired("customer")
	_ = set.MarkFlagRequired("price")

	list := &cobra.Command{
		Use:   "list <customer>",
		Short: "List the prices of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				prices, err := a.priceService().ListPrices(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), prices)
			})
		},
	}

	cmd.AddCommand(set, list)
	return cmd
}

func newCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	var rec dto.EntityRecord
	upsert := &cobra.Command{
		Use:   "upsert",
		Short: "Create a customer or rename it by external id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				id, err := a.entityService(nil).Upsert(ctx, model.EntityCustomer, rec)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.Succeeded(rec.ExternalID, rec.Name, id))
			})
		},
	}
	upsert.Flags().StringVar(&rec.ExternalID, "id", "", "customer external id")
	upsert.Flags().StringVar(&rec.Name, "name", "", "customer name")
	_ = upsert.MarkFlagRequired("id")

	cmd.AddCommand(upsert)
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				a.logger.Info("Database schema is up to date",
					zap.String("driver", a.cfg.Database.Driver))
				return nil
			})
		},
	}
}

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print import run events published on redis until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				bus, err := a.eventBus()
				if err != nil {
					return err
				}

				messages, err := bus.Subscribe(ctx, a.cfg.Redis.EventsChannel)
				if err != nil {
					return err
				}

				for msg := range messages {
					var event dto.ImportRunEvent
					if err := msg.Decode(&event); err != nil {
						a.logger.Warn("Skipping malformed run event",
							zap.String("channel", msg.Channel),
							zap.Error(err))
						continue
					}
					if err := printJSON(cmd.OutOrStdout(), event); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
