package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/pkg/authclient"
	"github.com/Jgilbert-dev/inspectrixV4/pkg/logger"
)

// inspectorctl is a terminal client for the inspectrix API. It drives the
// same auth coordinator the app UIs use, so a session obtained here behaves
// exactly like one obtained in the field app.
func main() {
	_ = godotenv.Load(".env")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    envOr("LOG_LEVEL", "warn"),
		Encoding: "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	client := authclient.NewClient(authclient.Config{
		BaseURL: envOr("INSPECTRIX_API_URL", "http://localhost:8080"),
		Timeout: 15 * time.Second,
		Logger:  zapLogger,
	})

	coord := authclient.NewCoordinator(client, zapLogger)
	defer coord.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coord.Start(ctx)

	var result authclient.ActionResult
	switch os.Args[1] {
	case "login":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "usage: inspectorctl login <email> <password>")
			os.Exit(2)
		}
		result = coord.SignIn(ctx, domain.LoginCredentials{
			Email:    os.Args[2],
			Password: os.Args[3],
		})
		if result.Success {
			printSession(coord.Session())
		}
	case "register":
		if len(os.Args) < 6 {
			fmt.Fprintln(os.Stderr, "usage: inspectorctl register <email> <password> <first> <last>")
			os.Exit(2)
		}
		result = coord.Register(ctx, domain.RegisterData{
			Email:     os.Args[2],
			Password:  os.Args[3],
			FirstName: os.Args[4],
			LastName:  os.Args[5],
		})
		if result.Success {
			if s := coord.Session(); s != nil {
				printSession(s)
			} else {
				fmt.Println("registered; check your email to verify the account")
			}
		}
	case "whoami":
		if s := coord.Session(); s != nil {
			printSession(s)
			result.Success = true
		} else {
			result.Error = "not signed in"
		}
	case "refresh":
		result = coord.RefreshSession(ctx)
		if result.Success {
			printSession(coord.Session())
		}
	case "logout":
		result = coord.SignOut(ctx)
		if result.Success {
			fmt.Println("signed out")
		}
	case "reset-password":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: inspectorctl reset-password <email>")
			os.Exit(2)
		}
		res := client.ResetPassword(ctx, os.Args[2])
		result = authclient.ActionResult{Success: res.Success, Error: res.Err}
		if result.Success {
			fmt.Println("if the address exists, a reset link is on its way")
		}
	default:
		usage()
		os.Exit(2)
	}

	if !result.Success {
		fmt.Fprintf(os.Stderr, "error: %s\n", result.Error)
		os.Exit(1)
	}
}

func printSession(s *domain.Session) {
	if s == nil {
		fmt.Println("no active session")
		return
	}
	fmt.Printf("signed in as %s <%s> role=%s", s.User.FullName(), s.User.Email, s.User.Role)
	if s.User.OrganizationName != "" {
		fmt.Printf(" org=%s", s.User.OrganizationName)
	}
	fmt.Println()
	if s.ExpiresAt != nil {
		fmt.Printf("access token expires %s\n", s.ExpiresAt.Format(time.RFC3339))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: inspectorctl <command>

commands:
  login <email> <password>
  register <email> <password> <first> <last>
  whoami
  refresh
  logout
  reset-password <email>`)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
