// Command seed initializes a persona backend with the default catalog.
// Backends seed themselves on first start; this exists for provisioning a
// database ahead of deployment.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/meshai-labs/meshai/internal/persona"
)

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
		sqlitePath  = flag.String("sqlite", os.Getenv("PERSONA_DB"), "sqlite database path")
		dir         = flag.String("dir", "", "persona JSON directory")
	)
	flag.Parse()

	ctx := context.Background()

	var (
		repo persona.Repository
		err  error
	)
	switch {
	case *databaseURL != "":
		repo, err = persona.NewPostgresRepository(ctx, *databaseURL)
	case *sqlitePath != "":
		repo, err = persona.NewSQLiteRepository(ctx, *sqlitePath)
	case *dir != "":
		repo, err = persona.NewFileRepository(*dir)
	default:
		fmt.Fprintln(os.Stderr, "one of -database-url, -sqlite, or -dir is required")
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	count, err := repo.Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "count failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("persona catalog ready: %d personas\n", count)
}
