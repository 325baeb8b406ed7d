package main

import (
	"fmt"

	"github.com/rnr-capital/microblog-backend/utils"
	"github.com/rnr-capital/microblog-backend/utils/dotenv"
)

// Quick connectivity check against the configured database, run it after
// changing DB_* env values.
func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		fmt.Println("Failed to connect to database:", err)
		return
	}

	// Ping the database to verify connection
	err = db.Exec("SELECT 1").Error
	if err != nil {
		fmt.Println("Failed to ping database:", err)
		return
	}

	fmt.Println("Successfully connected to database")
}
