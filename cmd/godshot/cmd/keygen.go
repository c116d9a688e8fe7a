package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/godshot/godshot/internal/core/auth"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an admin API key and its server-side secret",
	Long: `Generates a fresh admin credential pair. The secret line goes into the
server environment; the API key goes to the operator. The key is derived
from the secret, so losing the key only requires re-running keygen with
the same secret line.`,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	secretID := strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	fmt.Printf("GS_ADMIN_SECRET=%s:%s\n", secretID, base64.StdEncoding.EncodeToString(secret))
	fmt.Printf("API key: %s\n", auth.FormatAPIKey(secretID, secret))
	return nil
}
