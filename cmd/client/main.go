package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ben-ryder/headbase/internal/client"
	"github.com/ben-ryder/headbase/internal/config"
	"github.com/ben-ryder/headbase/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: headbase <command> [flags]

commands:
  login <username>             authenticate and store credentials
  register <username> <email>  create an account with a fresh encryption key
  logout                       revoke tokens and wipe stored credentials
  sync                         push queued changes and pull remote ones
  status                       show server reachability and session state
`

func main() {
	printBuildInfo()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	log := logger.NewClientLogger("headbase-client")
	cfg, err := config.GetClientConfig(commandFlags(command))
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()
	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}
	defer app.Close()

	if err = run(ctx, app, command); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}
}

// commandFlags returns the arguments after the subcommand and its
// positional parameters, which are the configuration flags.
func commandFlags(command string) []string {
	args := os.Args[2:]
	skip := 0
	switch command {
	case "login":
		skip = 1
	case "register":
		skip = 2
	}
	if len(args) < skip {
		return args
	}
	return args[skip:]
}

func run(ctx context.Context, app *client.App, command string) error {
	switch command {
	case "login":
		if len(os.Args) < 3 {
			return fmt.Errorf("login requires a username")
		}
		username := os.Args[2]
		password, err := promptPassword()
		if err != nil {
			return err
		}
		user, err := app.Service.Login(ctx, username, password)
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", user.Username)
		return nil

	case "register":
		if len(os.Args) < 4 {
			return fmt.Errorf("register requires a username and an email")
		}
		username, email := os.Args[2], os.Args[3]
		password, err := promptPassword()
		if err != nil {
			return err
		}
		user, err := app.Service.Register(ctx, username, email, password)
		if err != nil {
			return err
		}
		fmt.Printf("registered %s\n", user.Username)
		return nil

	case "logout":
		if err := app.Service.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "sync":
		if err := app.Document.Sync(ctx); err != nil {
			return err
		}
		snap := app.Document.Snapshot()
		fmt.Printf("synced, %d registers at clock %d\n", len(snap.Registers), snap.Clock)
		return nil

	case "status":
		info, err := app.Service.Info(ctx)
		if err != nil {
			fmt.Println("server: unreachable")
		} else {
			fmt.Printf("server: %s (registration open: %v)\n", info.Version, info.RegistrationOpen)
		}
		if user, err := app.Creds.LoadCurrentUser(ctx); err == nil {
			fmt.Printf("session: user %s (%s)\n", user.Username, user.ID)
		} else {
			fmt.Println("session: logged out")
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return "", fmt.Errorf("empty password")
	}
	return password, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
