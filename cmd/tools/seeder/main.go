package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedProducts(db)
	seedMembers(db)
	seedPromotions(db)

	log.Println("Seeding completed successfully!")
}

func seedProducts(db *sql.DB) {
	products := []struct {
		Name       string
		PriceEx    float64
		PriceInc   float64
		Cost       float64
		Stock      int
		Barcode    string
		Category   string
	}{
		{"Mineral Water 600ml", 19.0, 20.0, 12.0, 240, "4710001000017", "drinks"},
		{"Black Tea 500ml", 23.8, 25.0, 15.0, 180, "4710001000024", "drinks"},
		{"Instant Noodles", 42.9, 45.0, 28.0, 96, "4710001000031", "food"},
		{"Rice Ball Salmon", 33.3, 35.0, 20.0, 40, "4710001000048", "food"},
		{"Sandwich Ham & Egg", 47.6, 50.0, 30.0, 36, "4710001000055", "food"},
		{"Potato Chips", 32.4, 34.0, 21.0, 72, "4710001000062", "snacks"},
		{"Chocolate Bar", 28.6, 30.0, 18.0, 120, "4710001000079", "snacks"},
		{"Battery AA 4pack", 71.4, 75.0, 45.0, 48, "4710001000086", "household"},
		{"Tissue Pack", 23.8, 25.0, 14.0, 90, "4710001000093", "household"},
		{"Coffee Latte 330ml", 52.4, 55.0, 33.0, 60, "4710001000109", "drinks"},
	}

	fmt.Println("Seeding Products...")
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (name, price_ex_tax, price_inc_tax, cost, stock, barcode, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (barcode) DO NOTHING;
		`, p.Name, p.PriceEx, p.PriceInc, p.Cost, p.Stock, p.Barcode, p.Category)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.Name, err)
		}
	}
}

func seedMembers(db *sql.DB) {
	members := []struct {
		Name  string
		Phone string
		Email string
	}{
		{"Lin Mei-Hua", "0912345678", "meihua@example.com"},
		{"Chen Wei-Ting", "0923456789", "weiting@example.com"},
		{"Wang Shu-Fen", "0934567890", "shufen@example.com"},
		{"Huang Chih-Ming", "0945678901", "chihming@example.com"},
		{"Lee Ya-Ting", "0956789012", "yating@example.com"},
	}

	fmt.Println("Seeding Members...")
	for _, m := range members {
		_, err := db.Exec(`
			INSERT INTO members (name, phone, email)
			VALUES ($1, $2, $3)
			ON CONFLICT (phone) DO NOTHING;
		`, m.Name, m.Phone, m.Email)
		if err != nil {
			log.Printf("Failed to seed member %s: %v", m.Name, err)
		}
	}
}

func seedPromotions(db *sql.DB) {
	fmt.Println("Seeding Promotions...")

	promos := []struct {
		Name    string
		Kind    string
		Value   float64
		Barcode string
		MinQty  int
	}{
		{"Drinks 10% Off", "percent", 10, "4710001000017", 0},
		{"Tea Buy One Get One", "bogo", 0, "4710001000024", 2},
		{"Chips Second at Half", "second_discount", 50, "4710001000062", 2},
		{"Chocolate $5 Off", "fixed", 5, "4710001000079", 0},
	}

	for _, p := range promos {
		var productID sql.NullString
		if err := db.QueryRow("SELECT id FROM products WHERE barcode = $1", p.Barcode).Scan(&productID); err != nil {
			log.Printf("Skipping promotion %s, product %s missing: %v", p.Name, p.Barcode, err)
			continue
		}
		_, err := db.Exec(`
			INSERT INTO promotions (name, kind, value, product_id, min_qty, active)
			SELECT $1, $2, $3, $4, $5, true
			WHERE NOT EXISTS (SELECT 1 FROM promotions WHERE name = $1);
		`, p.Name, p.Kind, p.Value, productID, p.MinQty)
		if err != nil {
			log.Printf("Failed to seed promotion %s: %v", p.Name, err)
		}
	}

	_, err := db.Exec(`
		INSERT INTO promotions (name, kind, value, min_amount, active)
		SELECT 'Storewide $20 Off Over $500', 'amount', 20, 500, true
		WHERE NOT EXISTS (SELECT 1 FROM promotions WHERE name = 'Storewide $20 Off Over $500');
	`)
	if err != nil {
		log.Printf("Failed to seed storewide promotion: %v", err)
	}
}
