package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	dbfs "github.com/garnizeh/ideabridge/db"
	"github.com/garnizeh/ideabridge/internal/config"
	"github.com/garnizeh/ideabridge/internal/db"
)

// Replaces the configured database with a backup and brings its schema up to
// date. Stop the server first.
func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	from := flag.String("from", "", "Backup file (default <database_path>.bak)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	src := *from
	if src == "" {
		src = cfg.DatabasePath + ".bak"
	}

	if err := copyFile(src, cfg.DatabasePath); err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	database, err := db.New(ctx, cfg.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database restored from %s.\n", src)
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
