package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blockday/blockday/internal/cli"
	"github.com/blockday/blockday/internal/keyring"
)

// KeyringSetCmd stores the sync mirror connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string for the sync mirror."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !strings.HasPrefix(cmd.ConnectionString, "postgres://") &&
		!strings.HasPrefix(cmd.ConnectionString, "postgresql://") &&
		!strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  Commits will now be mirrored to the remote database")
	return nil
}

// KeyringGetCmd shows the stored connection string with the password masked.
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'blockday keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println("Connection string retrieved from keyring:")
	fmt.Println(maskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes the stored connection string, disabling sync.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}

	fmt.Println("✓ OS keyring is available")
	_, err := keyring.GetConnectionString()
	if err == nil {
		fmt.Println("✓ Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No connection string stored in keyring")
	}
	return nil
}

// maskPassword masks passwords in connection strings for display.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		var masked []string
		for _, part := range parts {
			if strings.HasPrefix(part, "password=") {
				masked = append(masked, "password=****")
			} else {
				masked = append(masked, part)
			}
		}
		return strings.Join(masked, " ")
	}

	return connStr
}
