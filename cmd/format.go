package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/carelfelix2/scrapper/internal/models"
)

// printTasksTable prints one line per task.
func printTasksTable(w io.Writer, tasks []models.ScrapingTask) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	fmt.Fprintf(w, " %-6s %-12s %-16s %-10s %8s  %s\n", "ID", "PLATFORM", "TYPE", "STATUS", "RESULTS", "UPDATED")
	for _, t := range tasks {
		line := fmt.Sprintf(" %-6d %-12s %-16s %-10s %8d  %s",
			t.ID, t.Platform, truncate(t.TaskType, 16), t.Status, t.ResultsCount,
			t.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintln(w, line)
		if t.Status == models.TaskFailed && t.ErrorMessage != nil {
			fmt.Fprintf(w, "        error: %s\n", truncate(*t.ErrorMessage, 100))
		}
	}
}

// printProductsTable prints products in a human-friendly card layout.
func printProductsTable(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}
	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, " %d. [%s] %s\n", i+1, p.Platform, truncate(p.ProductName, 80))

		priceLine := "    Price: " + formatPrice(p.Price)
		if p.DiscountPercentage != nil && *p.DiscountPercentage > 0 {
			priceLine += fmt.Sprintf("  (-%d%%", *p.DiscountPercentage)
			if p.OriginalPrice != nil {
				priceLine += ", was " + formatPrice(p.OriginalPrice)
			}
			priceLine += ")"
		}
		if p.SoldCount != nil {
			priceLine += fmt.Sprintf("  |  Sold: %d", *p.SoldCount)
		}
		if p.Rating != nil {
			priceLine += fmt.Sprintf("  |  Rating: %.1f", *p.Rating)
		}
		fmt.Fprintln(w, priceLine)

		if p.ShopName != nil {
			shop := "    Shop: " + *p.ShopName
			if p.ShopLocation != nil {
				shop += fmt.Sprintf(" (%s)", *p.ShopLocation)
			}
			fmt.Fprintln(w, shop)
		}
		if p.Status != models.ProductActive {
			fmt.Fprintf(w, "    Status: %s\n", p.Status)
		}
		if p.ProductURL != nil {
			fmt.Fprintf(w, "    %s\n", *p.ProductURL)
		}
	}
}

// printHistoryTable prints a price series, newest point first.
func printHistoryTable(w io.Writer, points []models.PriceHistory) {
	if len(points) == 0 {
		fmt.Fprintln(w, "No history.")
		return
	}
	fmt.Fprintf(w, " %-20s %14s %10s %8s %8s\n", "RECORDED", "PRICE", "DISCOUNT", "SOLD", "RATING")
	for _, h := range points {
		discount := "-"
		if h.DiscountPercentage != nil {
			discount = fmt.Sprintf("%d%%", *h.DiscountPercentage)
		}
		sold := "-"
		if h.SoldCount != nil {
			sold = fmt.Sprintf("%d", *h.SoldCount)
		}
		rating := "-"
		if h.Rating != nil {
			rating = fmt.Sprintf("%.1f", *h.Rating)
		}
		fmt.Fprintf(w, " %-20s %14s %10s %8s %8s\n",
			h.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			formatPrice(h.Price), discount, sold, rating)
	}
}

// formatPrice formats a nullable price as "Rp 1.234.567", or "-" when unknown.
func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	s := fmt.Sprintf("%.0f", *p)
	if len(s) <= 3 {
		return "Rp " + s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return "Rp " + strings.Join(parts, ".")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
