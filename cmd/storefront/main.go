// Command storefront is a terminal counterpart of the ShopEasy web UI:
// it browses the product catalogue, keeps a locally persisted cart and
// simulates checkout against a running product API server.
package main

import (
	"fmt"
	"os"

	"shopeasy/internal/models"
	"shopeasy/internal/storefront"
	"shopeasy/internal/storefront/api"
	"shopeasy/internal/storefront/cart"
	"shopeasy/internal/storefront/checkout"
	"shopeasy/internal/storefront/localstore"
	"shopeasy/internal/storefront/session"
	"shopeasy/pkg/lib/logger/slogdiscard"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	storePath string
)

func main() {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "ShopEasy storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5000", "product API base URL")
	root.PersistentFlags().StringVar(&storePath, "store", localstore.DefaultPath(), "path of the local state file")

	root.AddCommand(
		productsCmd(),
		addProductCmd(),
		deleteProductCmd(),
		cartCmd(),
		loginCmd(),
		logoutCmd(),
		buyCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient() *api.Client {
	return api.New(slogdiscard.NewDiscardLogger(), serverURL)
}

func newStore() *localstore.Store {
	return localstore.New(storePath)
}

func loadCart() *cart.Cart {
	return cart.Load(slogdiscard.NewDiscardLogger(), newStore())
}

func printProduct(p models.Product) {
	fmt.Printf("%s\n  %s - ₹%.2f\n  %s\n  %s\n", p.Id, p.Name, p.Price, p.Description, storefront.ImageURL(p))
}

func productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List all products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := newClient().ListProducts(cmd.Context())
			if err != nil {
				return err
			}

			if len(products) == 0 {
				fmt.Println("No products yet.")
				return nil
			}

			fmt.Printf("%d product(s) found\n\n", len(products))
			for _, p := range products {
				printProduct(p)
			}
			return nil
		},
	}
}

func addProductCmd() *cobra.Command {
	var input models.ProductInput
	var image string

	cmd := &cobra.Command{
		Use:   "add-product",
		Short: "Create a new product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if image != "" {
				input.Image = &image
			}

			created, err := newClient().CreateProduct(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Println("Product added successfully!")
			printProduct(created)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "product name")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "product price")
	cmd.Flags().StringVar(&input.Description, "description", "", "product description")
	cmd.Flags().StringVar(&image, "image", "", "product image URL")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("description")

	return cmd
}

func deleteProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-product <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// the web UI only shows Delete to logged-in users
			if !session.Load(newStore()).LoggedIn() {
				return fmt.Errorf("login required to delete products")
			}

			if err := newClient().DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println("Product deleted successfully")
			return nil
		},
	}
}

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !session.Load(newStore()).LoggedIn() {
				return fmt.Errorf("login required to view the cart")
			}

			c := loadCart()
			if c.Len() == 0 {
				fmt.Println("Your cart is empty.")
				return nil
			}

			for _, entry := range c.Entries() {
				printProduct(entry)
			}

			summary := checkout.NewSummary(c.Total())
			fmt.Printf("\nSubtotal: ₹%.2f\nTax (18%%): ₹%.2f\nShipping: free\nTotal: ₹%.0f\n",
				summary.Subtotal, summary.Tax, summary.Total)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id>",
			Short: "Add a product to the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				product, err := newClient().GetProduct(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if err := loadCart().Add(product); err != nil {
					return err
				}

				fmt.Println("Added to cart!")
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove every cart entry with the given product id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := loadCart().Remove(args[0]); err != nil {
					return err
				}

				fmt.Println("Removed from cart.")
				return nil
			},
		},
	)

	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in with any email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.Load(newStore())
			if err := s.Login(args[0]); err != nil {
				return err
			}

			fmt.Printf("Hello, %s!\n", s.Identity())
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Load(newStore()).Logout(); err != nil {
				return err
			}

			fmt.Println("Logged out.")
			return nil
		},
	}
}

func buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <id>",
		Short: "Buy a product now (simulated order)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !session.Load(newStore()).LoggedIn() {
				return fmt.Errorf("login required to place an order")
			}

			co := checkout.New(slogdiscard.NewDiscardLogger(), newClient())
			if err := co.Load(cmd.Context(), args[0]); err != nil {
				return err
			}

			if co.State() == checkout.StateNotFound {
				return fmt.Errorf("product %s not found", args[0])
			}

			product, _ := co.Product()
			summary, err := co.Summary()
			if err != nil {
				return err
			}

			fmt.Printf("Order summary for %s:\n", product.Name)
			fmt.Printf("  Subtotal: ₹%.2f\n  Tax (18%%): ₹%.2f\n  Shipping: free\n  Total: ₹%.0f\n",
				summary.Subtotal, summary.Tax, summary.Total)

			confirmation, err := co.PlaceOrder()
			if err != nil {
				return err
			}

			fmt.Printf("\nOrder %s placed at %s. Thank you for your purchase!\n",
				confirmation.OrderId, confirmation.PlacedAt.Format("15:04:05"))
			return nil
		},
	}
}
