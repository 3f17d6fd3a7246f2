// cmd/seeder/main.go
package main

import (
	"fmt"
	"log"

	"github.com/kisumu-health/sha-connect-backend/internal/config"
	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/repository"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
)

var faqs = []model.FAQ{
	{Question: "What is SHA?", Answer: "SHA stands for Social Health Authority, which provides health services and benefits.", Language: "English"},
	{Question: "How can I register for SHA?", Answer: "You can register at your nearest health center or via the SHA portal.", Language: "English"},
	{Question: "Which services are covered?", Answer: "SHA covers preventive care, maternal care, and essential treatments.", Language: "English"},
	{Question: "Is SHA free or do I need to pay?", Answer: "Some services are free, but others may require a small contribution depending on the package.", Language: "English"},
	{Question: "Who is eligible for SHA?", Answer: "All Kenyan citizens and residents are eligible to register for SHA.", Language: "English"},
	{Question: "Can I use SHA in any hospital?", Answer: "Yes, SHA can be used in all public hospitals and selected private facilities.", Language: "English"},
	{Question: "Does SHA cover emergencies?", Answer: "Yes, SHA covers emergency medical care.", Language: "English"},
	{Question: "Can I register my children under SHA?", Answer: "Yes, dependents such as children and spouses can be included.", Language: "English"},
	{Question: "How do I check if I am registered?", Answer: "You can check your registration status online or at a health center.", Language: "English"},
	{Question: "What should I do if I lose my SHA card?", Answer: "Visit your nearest health center or SHA office to request a replacement.", Language: "English"},
}

var partners = []model.Partner{
	{Name: "Akinyi Odhiambo", Role: "Community Leader", Languages: []string{"Luo", "Swahili"}, Contact: "+254700000001", Campaign: "SHA Registration Drive"},
	{Name: "Wekesa Barasa", Role: "Volunteer", Languages: []string{"Luhya", "English"}, Contact: "+254700000002", Campaign: "SHA Registration Drive"},
	{Name: "Fatuma Hassan", Role: "Influencer", Languages: []string{"Swahili"}, Contact: "+254700000003", Campaign: "Maternal Care Awareness"},
}

func main() {
	cfg := config.Load()

	var tableStore store.TableStore
	switch cfg.StoreDriver {
	case "postgres":
		pg, err := store.OpenPostgres()
		if err != nil {
			log.Fatal(err)
		}
		tableStore = pg
	default:
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatal(err)
		}
		tableStore = fs
	}

	faqRepo := &repository.FAQRepository{Store: tableStore}
	if err := faqRepo.Replace(faqs); err != nil {
		log.Fatalf("failed to seed FAQs: %v", err)
	}
	fmt.Printf("Seeded: %d FAQs\n", len(faqs))

	partnerRepo := &repository.PartnerRepository{Store: tableStore}
	for _, p := range partners {
		if err := partnerRepo.Add(p); err != nil {
			log.Fatalf("failed to seed partner %s: %v", p.Name, err)
		}
	}
	fmt.Printf("Seeded: %d partners\n", len(partners))

	fmt.Println("Seeding completed successfully!")
}
