// Command superuser creates an account carrying the elevated staff and
// superuser flags, for operators bootstrapping a fresh deployment.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"recipebox/internal/accounts"
	"recipebox/internal/config"
	"recipebox/internal/db"
	applog "recipebox/internal/log"
)

func main() {
	email := flag.String("email", "", "email address for the new superuser")
	password := flag.String("password", "", "password for the new superuser")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: superuser -email <email> -password <password>")
		os.Exit(2)
	}

	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		applog.Debug(ctx, "no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		applog.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		os.Exit(1)
	}

	user, err := accounts.CreateSuperuser(ctx, database, *email, *password)
	if err != nil {
		applog.Error(ctx, "failed to create superuser", "error", err)
		os.Exit(1)
	}

	fmt.Printf("superuser %s created (id %d)\n", user.Email, user.ID)
}
