// cmd/migrate/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/onerilhan/go-betting-api/internal/config"
	"github.com/onerilhan/go-betting-api/internal/db"
	"github.com/onerilhan/go-betting-api/internal/migration"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env dosyası bulunamadı, ortam değişkenleri kullanılacak")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	// Config yükle
	cfg := config.LoadConfig()

	// Database bağlantısı
	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		fmt.Printf("Database bağlantısı başarısız: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	runner := migration.NewRunner(database, "migrations")

	switch command {
	case "up":
		if err := runner.Up(); err != nil {
			fmt.Printf("Migration hatası: %v\n", err)
			os.Exit(1)
		}
	case "status":
		migrations, err := runner.Status()
		if err != nil {
			fmt.Printf("Durum sorgusu hatası: %v\n", err)
			os.Exit(1)
		}
		for _, m := range migrations {
			state := "pending"
			if m.AppliedAt != nil {
				state = "applied " + m.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%s  %-30s  %s\n", m.Version, m.Name, state)
		}
	default:
		fmt.Printf("Bilinmeyen komut: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`
Migration CLI

KULLANIM:
    go run cmd/migrate/main.go <komut>

KOMUTLAR:
    up        Bekleyen migration'ları uygula
    status    Migration durumlarını göster
`)
}
