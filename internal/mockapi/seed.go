package mockapi

import (
	"fmt"
	"time"

	"github.com/karanch577/sneakerx-admin/internal/model"
)

// Seed fills an empty store with demo data: an admin and a shopper
// account, categories with products, coupons and recent orders.
func (s *Store) Seed(adminEmail, adminPassword string) error {
	if _, err := s.AddAccount("Admin", adminEmail, adminPassword, model.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	shopper, err := s.AddAccount("Asha Rao", "asha@sneakerx.test", "shopper1", "USER")
	if err != nil {
		return fmt.Errorf("seed shopper: %w", err)
	}

	catalog := map[string][]string{
		"Running":    {"Pegasus 41", "Vomero 17", "Invincible 3"},
		"Basketball": {"LeBron XXI", "Giannis Freak 6"},
		"Lifestyle":  {"Air Force 1", "Dunk Low", "Air Max 90"},
	}
	var products []model.Product
	for _, name := range []string{"Running", "Basketball", "Lifestyle"} {
		c := s.AddCategory(name)
		for i, pname := range catalog[name] {
			price := 9000 + 1500*i
			products = append(products, s.AddProduct(model.Product{
				Name:         pname,
				Price:        price,
				SellingPrice: price - 1000,
				Description:  pname + " from the " + name + " line",
				ColourShown:  "White/Black",
				Style:        fmt.Sprintf("SX-%s-%d", name[:3], i+1),
				Collection:   model.CollectionRef{ID: c.ID, Name: c.Name},
				Sizes: []model.StockSize{
					{Size: "US 8", Quantity: 4},
					{Size: "US 9", Quantity: 6},
					{Size: "US 10", Quantity: 3},
				},
				Sold:   []model.SizeQuantity{{Size: "US 9", Quantity: 2}},
				Photos: []model.Photo{{SecureURL: fmt.Sprintf("%s/%s.jpg", photoBaseURL, newID())}},
			}))
		}
	}

	s.AddCoupon("WELCOME10", 10)
	s.AddCoupon("FESTIVE25", 25)

	now := s.now()
	buyer := &model.OrderUser{ID: shopper.ID, Name: shopper.Name}
	for i, age := range []time.Duration{2 * 24 * time.Hour, 20 * 24 * time.Hour, 120 * 24 * time.Hour, 300 * 24 * time.Hour} {
		p := products[i%len(products)]
		s.AddOrder(model.Order{
			Products:          []model.OrderedProduct{{ProductID: p.ID, Size: "US 9", Count: 1, Price: fmt.Sprint(p.SellingPrice)}},
			User:              buyer,
			PhoneNumber:       "9876543210",
			Address:           "221B MG Road, Bengaluru",
			Amount:            float64(p.SellingPrice),
			TransactionStatus: "PAID",
			TransactionID:     "pay_" + newID()[:14],
			Timestamps:        model.Timestamps{CreatedAt: now.Add(-age).UTC().Format(timeLayout)},
		})
	}
	return nil
}
