// Seeds a running store with a starter hair catalog: the Color and Length
// attributes, delivery zones for Ghana, one simple product and one variable
// product whose variations are staged through the draft flow and flushed
// once the product exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/clients"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/variations"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	baseURL := os.Getenv("ADMIN_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("ADMIN_TOKEN")
	if token == "" {
		log.Fatal("ADMIN_TOKEN is required")
	}

	client := clients.NewAdminClient(baseURL, token)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seedAttributes(ctx, client); err != nil {
		log.Fatal("Failed to seed attributes: ", err)
	}
	if err := seedCatalog(ctx, client); err != nil {
		log.Fatal("Failed to seed catalog: ", err)
	}
	if err := seedContent(ctx, client); err != nil {
		log.Fatal("Failed to seed content: ", err)
	}
	if err := seedShippingZones(ctx, client); err != nil {
		log.Fatal("Failed to seed shipping zones: ", err)
	}
	if err := seedSimpleProduct(ctx, client); err != nil {
		log.Fatal("Failed to seed simple product: ", err)
	}
	if err := seedVariableProduct(ctx, client); err != nil {
		log.Fatal("Failed to seed variable product: ", err)
	}

	log.Println("✓ Seed completed")
}

func seedAttributes(ctx context.Context, client *clients.AdminClient) error {
	existing, err := client.ListAttributes(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, attr := range existing {
		have[attr.Name] = true
	}

	wanted := []models.CreateAttributeRequest{
		{Name: "Color", Terms: []string{"Natural Black", "Chocolate Brown", "Burgundy", "Honey Blonde"}},
		{Name: "Length", Terms: []string{"12\"", "16\"", "20\"", "24\""}},
	}
	for _, req := range wanted {
		if have[req.Name] {
			log.Printf("Attribute %q already exists, skipping", req.Name)
			continue
		}
		if _, err := client.CreateAttribute(ctx, req); err != nil {
			return fmt.Errorf("create attribute %q: %w", req.Name, err)
		}
		log.Printf("✓ Created attribute %q with %d terms", req.Name, len(req.Terms))
	}
	return nil
}

func seedCatalog(ctx context.Context, client *clients.AdminClient) error {
	categories := []models.CreateCategoryRequest{
		{Name: "Bundles"},
		{Name: "Wigs"},
		{Name: "Closures & Frontals"},
		{Name: "Hair Care"},
	}
	for _, req := range categories {
		if _, err := client.CreateCategory(ctx, req); err != nil {
			if skipDuplicate(err, "category", req.Name) {
				continue
			}
			return fmt.Errorf("create category %q: %w", req.Name, err)
		}
		log.Printf("✓ Created category %q", req.Name)
	}

	brands := []models.CreateBrandRequest{
		{Name: "Juelle Signature"},
		{Name: "Outre"},
	}
	for _, req := range brands {
		if _, err := client.CreateBrand(ctx, req); err != nil {
			if skipDuplicate(err, "brand", req.Name) {
				continue
			}
			return fmt.Errorf("create brand %q: %w", req.Name, err)
		}
		log.Printf("✓ Created brand %q", req.Name)
	}

	collections := []models.CreateCollectionRequest{
		{Name: "New Arrivals"},
		{Name: "Best Sellers"},
	}
	for _, req := range collections {
		if _, err := client.CreateCollection(ctx, req); err != nil {
			if skipDuplicate(err, "collection", req.Name) {
				continue
			}
			return fmt.Errorf("create collection %q: %w", req.Name, err)
		}
		log.Printf("✓ Created collection %q", req.Name)
	}
	return nil
}

func seedContent(ctx context.Context, client *clients.AdminClient) error {
	subtitle := "Up to 20% off selected bundles"
	if _, err := client.CreateBanner(ctx, models.CreateBannerRequest{
		Title:    "New Season, New Hair",
		Subtitle: &subtitle,
		ImageURL: "https://cdn.juellehairgh.com/banners/new-season.jpg",
	}); err != nil {
		if !skipDuplicate(err, "banner", "New Season, New Hair") {
			return fmt.Errorf("create banner: %w", err)
		}
	} else {
		log.Println("✓ Created hero banner")
	}

	author := "Juelle Team"
	if _, err := client.CreateBlogPost(ctx, models.CreateBlogPostRequest{
		Title:      "How to Care for Your Body Wave Bundles",
		Content:    "Wash with sulphate-free shampoo, air dry on a wig stand and seal the ends weekly with a light oil.",
		AuthorName: &author,
		Tags:       []string{"hair care", "guides"},
		Publish:    true,
	}); err != nil {
		if !skipDuplicate(err, "blog post", "How to Care for Your Body Wave Bundles") {
			return fmt.Errorf("create blog post: %w", err)
		}
	} else {
		log.Println("✓ Created blog post")
	}

	badges := []models.CreateBadgeTemplateRequest{
		{Label: "New In"},
		{Label: "Best Seller"},
	}
	for _, req := range badges {
		if _, err := client.CreateBadgeTemplate(ctx, req); err != nil {
			if skipDuplicate(err, "badge", req.Label) {
				continue
			}
			return fmt.Errorf("create badge %q: %w", req.Label, err)
		}
		log.Printf("✓ Created badge %q", req.Label)
	}
	return nil
}

func seedShippingZones(ctx context.Context, client *clients.AdminClient) error {
	threshold := 500.0
	accraDays := 2
	regionDays := 5

	zones := []models.CreateShippingZoneRequest{
		{
			Name:                     "Greater Accra",
			Regions:                  []string{"Accra", "Tema", "Madina", "Kasoa"},
			FeeGhs:                   30,
			FreeShippingThresholdGhs: &threshold,
			EstimatedDays:            &accraDays,
		},
		{
			Name:          "Other Regions",
			Regions:       []string{"Kumasi", "Takoradi", "Tamale", "Cape Coast"},
			FeeGhs:        50,
			EstimatedDays: &regionDays,
		},
	}
	for _, req := range zones {
		zone, err := client.CreateShippingZone(ctx, req)
		if err != nil {
			if skipDuplicate(err, "shipping zone", req.Name) {
				continue
			}
			return fmt.Errorf("create shipping zone %q: %w", req.Name, err)
		}
		log.Printf("✓ Created shipping zone %q (GHS %.2f)", zone.Name, zone.FeeGhs)
	}
	return nil
}

func seedSimpleProduct(ctx context.Context, client *clients.AdminClient) error {
	desc := "Argan oil leave-in conditioner for wigs and weaves. 250ml."
	sku := "JH-CARE-001"
	stock := 40
	simple := models.ProductTypeSimple

	product, err := client.CreateProduct(ctx, models.CreateProductRequest{
		Name:        "Argan Oil Leave-In Conditioner",
		SKU:         &sku,
		Description: &desc,
		ProductType: &simple,
		PriceGhs:    85,
		Stock:       &stock,
		Tags:        []string{"hair care", "conditioner"},
	})
	if err != nil {
		return err
	}
	log.Printf("✓ Created simple product %q (GHS %.2f)", product.Name, product.PriceGhs)
	return nil
}

func seedVariableProduct(ctx context.Context, client *clients.AdminClient) error {
	// Stage the variation grid exactly the way the product form does: pick
	// terms, fill in each combination, then flush once the product row exists.
	selection := variations.NewSelectionState()
	selection.AddColor("Natural Black")
	selection.AddColor("Chocolate Brown")
	selection.AddLength("16\"")
	selection.AddLength("20\"")

	reconciler := variations.NewDraftReconciler(selection)

	prices := map[string]float64{
		"Natural Black / 16\"":   650,
		"Natural Black / 20\"":   780,
		"Chocolate Brown / 16\"": 690,
		"Chocolate Brown / 20\"": 820,
	}
	for i, combo := range reconciler.Combinations() {
		price, ok := prices[combo.ComboKey]
		if !ok {
			continue
		}
		input := variations.VariationInput{
			RegularPrice: price,
			Stock:        10,
			SKU:          fmt.Sprintf("JH-BWW-%03d", i+1),
		}
		if err := reconciler.SaveVariation(ctx, combo, input); err != nil {
			return fmt.Errorf("stage variation %q: %w", combo.ComboKey, err)
		}
	}

	headline, _ := variations.DerivedPrice(reconciler.Variants())

	desc := "Brazilian body wave bundle, 100% human hair. Sold per bundle."
	variable := models.ProductTypeVariable
	featured := true

	product, err := client.CreateProduct(ctx, models.CreateProductRequest{
		Name:        "Brazilian Body Wave Bundle",
		Description: &desc,
		ProductType: &variable,
		PriceGhs:    headline,
		Tags:        []string{"bundles", "body wave", "human hair"},
		IsFeatured:  &featured,
	})
	if err != nil {
		return err
	}

	if err := reconciler.Flush(ctx, client, product.ID); err != nil {
		return fmt.Errorf("flush variations: %w", err)
	}

	log.Printf("✓ Created variable product %q with %d variations (from GHS %.2f)",
		product.Name, len(reconciler.Variants()), headline)
	return nil
}

// skipDuplicate reports whether err is a duplicate-conflict from the server,
// logging the skip so re-running the seeder is safe.
func skipDuplicate(err error, kind, name string) bool {
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 409 {
		log.Printf("%s %q already exists, skipping", kind, name)
		return true
	}
	return false
}
