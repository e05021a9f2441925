package cli

import (
	"context"
	"fmt"

	"github.com/agromarket/agromarket-go/internal/api"
	"github.com/agromarket/agromarket-go/internal/domain"

	"github.com/spf13/cobra"
)

func newOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Place and track orders"}
	cmd.AddCommand(
		newOrdersPlaceCommand(),
		newOrdersListCommand("mine", "Orders you placed", (*api.Client).MyOrders),
		newOrdersListCommand("sales", "Orders against your listings", (*api.Client).SellerOrders),
		newOrdersStatusCommand(),
	)
	return cmd
}

func newOrdersPlaceCommand() *cobra.Command {
	var productID, address, phone string
	var quantity int
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an order for a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "placing order", func(ctx context.Context, a *app) ([]string, error) {
				order, err := a.client.PlaceOrder(ctx, api.PlaceOrderInput{
					Items:           []domain.OrderItem{{ProductID: productID, Quantity: quantity}},
					ShippingAddress: address,
					Phone:           phone,
				})
				if err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("order %s placed, total %.2f", order.ID, order.Total)}, nil
			})
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "product id")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity")
	cmd.Flags().StringVar(&address, "address", "", "shipping address")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")
	return cmd
}

func newOrdersListCommand(use, short string, list func(*api.Client, context.Context) ([]domain.Order, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading orders", func(ctx context.Context, a *app) ([]string, error) {
				orders, err := list(a.client, ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(orders))
				for _, o := range orders {
					lines = append(lines, fmt.Sprintf("%s  %-10s  %8.2f  %s", o.ID, o.Status, o.Total, o.CreatedAt.Local().Format("2006-01-02")))
				}
				if len(lines) == 0 {
					lines = []string{"no orders"}
				}
				return lines, nil
			})
		},
	}
}

func newOrdersStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Update an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "updating order", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.UpdateOrderStatus(ctx, args[0], args[1]); err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("order %s is now %s", args[0], args[1])}, nil
			})
		},
	}
}
