package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/maiconsbotelho/sinucalabs/internal/database"
	"github.com/spf13/cobra"
)

// Roster is the lab's starting lineup.
var Roster = []string{
	"Maicão Marreta",
	"Johnny do Boteco",
	"Dief o Filosofo",
	"Osi o Sábio",
	"Henrique Sai da Frente",
	"Bryan o Estagiário",
	"Alison Parsa",
	"Cesar o Profissional",
	"Juan do Basquete",
}

var (
	numMatches int
	days       int
	seed       uint64
	reset      bool
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Seed the sinuca database with the roster, the achievement catalog and optional random matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().IntVar(&numMatches, "matches", 0, "Number of random finished matches to generate")
	rootCmd.Flags().IntVar(&days, "days", 60, "Spread generated matches over this many past days")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed, 0 picks one")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "Clear every table first")
}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken, migrationsDir string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}
	return getEnvOr("DB_NAME", "sinuca.db"),
		os.Getenv("TURSO_PRIMARY_URL"),
		os.Getenv("TURSO_AUTH_TOKEN"),
		getEnvOr("MIGRATIONS_DIR", "./migrations")
}

func run() error {
	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken, migrationsDir := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken, migrationsDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer teardown()

	s := newSeeder(db, seed)
	if reset {
		log.Warn("Clearing every table")
		s.store.Clear()
	}

	players, err := s.seedRoster(Roster)
	if err != nil {
		return err
	}
	if err := s.seedAchievements(); err != nil {
		return err
	}
	if numMatches > 0 {
		startTime := time.Now()
		if err := s.seedMatches(players, numMatches, time.Now().AddDate(0, 0, -days), time.Now()); err != nil {
			return err
		}
		log.Info("Generated matches", "count", numMatches, "duration", time.Since(startTime))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Seeder failed: %s", err)
	}
}
