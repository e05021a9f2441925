package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/agromarket/agromarket-go/internal/api"

	"github.com/spf13/cobra"
)

func newProductsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Browse and manage marketplace listings"}
	cmd.AddCommand(
		newProductsListCommand(),
		newProductsMineCommand(),
		newProductsAddCommand(),
		newProductsDeleteCommand(),
	)
	return cmd
}

func newProductsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading products", func(ctx context.Context, a *app) ([]string, error) {
				products, err := a.client.Products(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(products))
				for _, p := range products {
					lines = append(lines, fmt.Sprintf("%s  %-24s %8.2f  qty=%d  %s", p.ID, p.Name, p.Price, p.Quantity, p.Category))
				}
				if len(lines) == 0 {
					lines = []string{"no products listed"}
				}
				return lines, nil
			})
		},
	}
}

func newProductsMineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading your products", func(ctx context.Context, a *app) ([]string, error) {
				products, err := a.client.MyProducts(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(products))
				for _, p := range products {
					lines = append(lines, fmt.Sprintf("%s  %-24s %8.2f  qty=%d", p.ID, p.Name, p.Price, p.Quantity))
				}
				if len(lines) == 0 {
					lines = []string{"you have no listings"}
				}
				return lines, nil
			})
		},
	}
}

func newProductsAddCommand() *cobra.Command {
	var in api.ProductInput
	var imagePath string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "creating listing", func(ctx context.Context, a *app) ([]string, error) {
				if imagePath != "" {
					file, err := os.Open(imagePath)
					if err != nil {
						return nil, fmt.Errorf("open image: %w", err)
					}
					defer func() { _ = file.Close() }()
					in.Image = file
					in.ImageName = imagePath
				}
				product, err := a.client.AddProduct(ctx, in)
				if err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("listed %s as %s", product.Name, product.ID)}, nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "product name")
	cmd.Flags().StringVar(&in.Description, "description", "", "product description")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "unit price")
	cmd.Flags().IntVar(&in.Quantity, "quantity", 1, "available quantity")
	cmd.Flags().StringVar(&in.Category, "category", "", "product category")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a product image")
	return cmd
}

func newProductsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Remove a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "removing listing", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.DeleteProduct(ctx, args[0]); err != nil {
					return nil, err
				}
				return []string{"listing removed"}, nil
			})
		},
	}
}

func newCartCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "cart", Short: "Manage your cart and favorites"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading cart", func(ctx context.Context, a *app) ([]string, error) {
				cart, err := a.client.Cart(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(cart.Items)+1)
				for _, item := range cart.Items {
					lines = append(lines, fmt.Sprintf("%s  %-24s x%d  %8.2f", item.ID, item.Product.Name, item.Quantity, item.Product.Price))
				}
				lines = append(lines, fmt.Sprintf("total: %.2f", cart.Total))
				return lines, nil
			})
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "updating cart", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.AddToCart(ctx, args[0], quantity); err != nil {
					return nil, err
				}
				return []string{"added to cart"}, nil
			})
		},
	}
	add.Flags().IntVar(&quantity, "quantity", 1, "quantity to add")

	remove := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a cart item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "updating cart", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.RemoveFromCart(ctx, args[0]); err != nil {
					return nil, err
				}
				return []string{"removed from cart"}, nil
			})
		},
	}

	favorites := &cobra.Command{
		Use:   "favorites",
		Short: "List favorite products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading favorites", func(ctx context.Context, a *app) ([]string, error) {
				products, err := a.client.Favorites(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(products))
				for _, p := range products {
					lines = append(lines, fmt.Sprintf("%s  %s", p.ID, p.Name))
				}
				if len(lines) == 0 {
					lines = []string{"no favorites yet"}
				}
				return lines, nil
			})
		},
	}

	favorite := &cobra.Command{
		Use:   "favorite <product-id>",
		Short: "Toggle a product's favorite state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "updating favorites", func(ctx context.Context, a *app) ([]string, error) {
				favorited, err := a.client.ToggleFavorite(ctx, args[0])
				if err != nil {
					return nil, err
				}
				if favorited {
					return []string{"added to favorites"}, nil
				}
				return []string{"removed from favorites"}, nil
			})
		},
	}

	cmd.AddCommand(show, add, remove, favorites, favorite)
	return cmd
}
