// Standalone migration runner: applies the schema without starting the
// web server.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := config.InitDB(cfg); err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("migrations failed: ", err)
	}
	log.Println("migrations applied to", cfg.DBPath)
}
