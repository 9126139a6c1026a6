package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/carelfelix2/scrapper/internal/models"
	"github.com/carelfelix2/scrapper/internal/ui"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse collected product data",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE:  runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

var productsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsSearch,
}

var productsHistoryCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show a product's price history",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsHistory,
}

func init() {
	productsListCmd.Flags().String("platform", "", "Filter by platform (empty for all)")
	productsListCmd.Flags().Int("skip", 0, "Offset into the product list")
	productsListCmd.Flags().Int("limit", 20, "Products per page")
	productsListCmd.Flags().Bool("all", false, "Fetch every page")
	productsListCmd.Flags().String("format", "table", "Output format: json, table")

	productsSearchCmd.Flags().Int("skip", 0, "Offset into the results")
	productsSearchCmd.Flags().Int("limit", 20, "Results per page")
	productsSearchCmd.Flags().String("format", "table", "Output format: json, table")

	productsHistoryCmd.Flags().Int("limit", 50, "History points to fetch")

	productsCmd.AddCommand(productsListCmd, productsGetCmd, productsSearchCmd, productsHistoryCmd)
	rootCmd.AddCommand(productsCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	platformName, _ := cmd.Flags().GetString("platform")
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	all, _ := cmd.Flags().GetBool("all")
	format, _ := cmd.Flags().GetString("format")

	platform := models.Platform(platformName)
	if platformName != "" && !platform.Valid() {
		return fmt.Errorf("unknown platform %q (want one of %v)", platformName, models.Platforms())
	}

	_, client := buildClient()

	var (
		products []models.Product
		total    int
	)
	if all {
		spin := ui.NewSpinner()
		spin.Start("Fetching all products...")
		items, err := client.ListAllProducts(cmd.Context(), platform, 100)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		products, total = items, len(items)
	} else {
		page, err := client.ListProducts(cmd.Context(), platform, skip, limit)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		products, total = page.Items, page.Total
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	default:
		printProductsTable(cmd.OutOrStdout(), products)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d products\n", len(products), total)
		return nil
	}
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("product id must be a number: %q", args[0])
	}

	_, client := buildClient()
	product, err := client.GetProduct(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(product)
}

func runProductsSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	_, client := buildClient()

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Searching %q...", query))
	page, err := client.SearchProducts(cmd.Context(), query, skip, limit)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("search products: %w", err)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	default:
		printProductsTable(cmd.OutOrStdout(), page.Items)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d matches\n", len(page.Items), page.Total)
		return nil
	}
}

func runProductsHistory(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("product id must be a number: %q", args[0])
	}
	limit, _ := cmd.Flags().GetInt("limit")

	_, client := buildClient()
	history, err := client.ProductHistory(cmd.Context(), id, limit)
	if err != nil {
		return fmt.Errorf("product history: %w", err)
	}

	printHistoryTable(cmd.OutOrStdout(), history)
	return nil
}
