// Command server runs the orgvault HTTP server.
//
// Usage:
//
//	server [flags]           run the server
//	server setup [flags]     bootstrap the admin org and SystemAdmin user
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/orgvault/internal/server"
	"github.com/dmitrijs2005/orgvault/internal/server/config"
)

const adminOrgName = "system-admin"

func main() {
	ctx := context.Background()

	setup := len(os.Args) > 1 && os.Args[1] == "setup"
	if setup {
		// Drop the subcommand so config flag parsing sees only flags.
		os.Args = append(os.Args[:1], os.Args[2:]...)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	if setup {
		if err := runSetup(ctx, app); err != nil {
			log.Fatalf("setup error: %v", err)
		}
		return
	}

	app.Run(ctx)
}

func runSetup(ctx context.Context, app *server.App) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("SystemAdmin username\n> ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)

	password, err := promptPassword("Enter password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := app.Setup(ctx, adminOrgName, username, password); err != nil {
		return err
	}

	fmt.Println("setup complete")
	return nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
