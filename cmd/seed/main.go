package main

import (
	"log"
	"os"
	"time"

	"museum-itinerary-be/internal/entity"
	"museum-itinerary-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

// Seeds the area catalog. Idempotent: re-running updates existing rows by code.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	areas := []entity.Area{
		{Code: "sala_arqueologia", Name: "Archaeology Hall", Description: "Pre-Columbian artifacts from the Cañari and Inca cultures, including ceramics and ceremonial objects.", Category: "history", Floor: 1, MinMinutes: 20, MaxMinutes: 40, RecommendedOrder: 1},
		{Code: "sala_etnografia", Name: "Ethnography Hall", Description: "Traditional dress, crafts and rituals of Ecuador's living cultures, from the coast to the Amazon.", Category: "culture", Floor: 1, MinMinutes: 25, MaxMinutes: 45, RecommendedOrder: 2},
		{Code: "sala_numismatica", Name: "Numismatics Hall", Description: "The monetary history of Ecuador, from cacao beans and early coinage to the sucre and dollarization.", Category: "history", Floor: 2, MinMinutes: 10, MaxMinutes: 20, RecommendedOrder: 3},
		{Code: "sala_arte", Name: "Religious Art Gallery", Description: "Colonial-era sculpture and painting from the Cuenca school, with gilded altarpieces.", Category: "art", Floor: 2, MinMinutes: 15, MaxMinutes: 30, RecommendedOrder: 4},
		{Code: "parque_arqueologico", Name: "Archaeological Park", Description: "Open-air remains of the Pumapungo Inca complex, with terraces, ritual baths and the Tomebamba overlook.", Category: "history", Floor: 0, MinMinutes: 30, MaxMinutes: 60, RecommendedOrder: 5},
		{Code: "jardin_etnobotanico", Name: "Ethnobotanical Garden", Description: "Andean crops and medicinal plants cultivated as the Inca gardens once were.", Category: "nature", Floor: 0, MinMinutes: 15, MaxMinutes: 30, RecommendedOrder: 6},
		{Code: "aviario", Name: "Aviary", Description: "Rescued native birds of the southern Andes, from parrots to the curiquingue.", Category: "nature", Floor: 0, MinMinutes: 15, MaxMinutes: 25, RecommendedOrder: 7},
	}

	now := time.Now()
	for i := range areas {
		areas[i].Id = uuid.New()
		areas[i].Active = true
		areas[i].CreatedAt = now
	}

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "category", "floor",
			"min_minutes", "max_minutes", "recommended_order", "active",
		}),
	}).Create(&areas).Error
	if err != nil {
		log.Fatalf("Error: Seed failed: %v", err)
	}

	log.Printf("✅ Seeded %d areas", len(areas))
}
