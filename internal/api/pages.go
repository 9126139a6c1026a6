package api

import (
	"context"

	"github.com/carelfelix2/scrapper/internal/models"
	"golang.org/x/sync/errgroup"
)

// ListAllProducts fetches every page of the product listing concurrently,
// bounded by the client's MaxConcurrent, and returns the items in page order.
// The first page is fetched alone to learn the total before fanning out.
func (c *Client) ListAllProducts(ctx context.Context, platform models.Platform, pageSize int) ([]models.Product, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	first, err := c.ListProducts(ctx, platform, 0, pageSize)
	if err != nil {
		return nil, err
	}
	if first.Total <= len(first.Items) {
		return first.Items, nil
	}

	pages := (first.Total + pageSize - 1) / pageSize
	results := make([][]models.Product, pages)
	results[0] = first.Items

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)
	for i := 1; i < pages; i++ {
		g.Go(func() error {
			page, err := c.ListProducts(ctx, platform, i*pageSize, pageSize)
			if err != nil {
				return err
			}
			results[i] = page.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]models.Product, 0, first.Total)
	for _, items := range results {
		all = append(all, items...)
	}
	return all, nil
}
