// Command admintoken prints a signed admin token for a user id listed in ADMIN_USER_IDS.
// Send it as "Authorization: Bearer <token>" or in the sakecatalog_admin cookie.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/sakecatalog/backend/internal/config"
	"github.com/sakecatalog/backend/internal/logging"
	"github.com/sakecatalog/backend/pkg/auth"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "Usage: admintoken <user-id>")
		os.Exit(1)
	}
	userID := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if !slices.Contains(cfg.Auth.AdminUserIDs, userID) {
		logging.Fatal("user is not listed in ADMIN_USER_IDS", "user_id", userID)
	}
	fmt.Println(auth.CreateSessionToken(userID, auth.SessionSecretBytes(cfg.Auth.SessionSecret)))
}
