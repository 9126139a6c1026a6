package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/carelfelix2/scrapper/internal/models"
)

func TestListAllProductsPreservesPageOrder(t *testing.T) {
	t.Parallel()

	const total = 25
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		var items []models.Product
		for i := skip; i < skip+limit && i < total; i++ {
			items = append(items, models.Product{ID: int64(i), ExternalID: fmt.Sprintf("ext-%d", i)})
		}
		w.Write(envelopeJSON(t, Page[models.Product]{
			Total:    total,
			Page:     skip/limit + 1,
			PageSize: limit,
			Items:    items,
		}))
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore(t), Options{MaxConcurrent: 3})
	all, err := c.ListAllProducts(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("ListAllProducts: %v", err)
	}
	if len(all) != total {
		t.Fatalf("got %d products, want %d", len(all), total)
	}
	for i, p := range all {
		if p.ID != int64(i) {
			t.Fatalf("all[%d].ID = %d, page order not preserved", i, p.ID)
		}
	}
}

func TestListAllProductsSinglePage(t *testing.T) {
	t.Parallel()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(envelopeJSON(t, Page[models.Product]{
			Total: 2,
			Items: []models.Product{{ID: 1}, {ID: 2}},
		}))
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore(t), Options{})
	all, err := c.ListAllProducts(context.Background(), models.PlatformTokopedia, 10)
	if err != nil {
		t.Fatalf("ListAllProducts: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d products, want 2", len(all))
	}
	if requests != 1 {
		t.Errorf("issued %d requests, want 1 when the first page covers the total", requests)
	}
}
