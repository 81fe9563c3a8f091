package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aadilmughal786/one-goal-sub006/internal/app/goalstate"
	"github.com/aadilmughal786/one-goal-sub006/internal/app/transfer"
	"github.com/aadilmughal786/one-goal-sub006/internal/daemon"
	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/docstore"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/identity"
	"github.com/aadilmughal786/one-goal-sub006/internal/infra/logging"
)

// ─── Data Commands ──────────────────────────────────────────────────────────
// export/import operate on the local store directly, without going
// through the HTTP API. Useful for backups and migrations while the
// daemon is stopped.

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(tokenCmd)

	exportCmd.Flags().StringP("user", "u", "", "User id to export")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	_ = exportCmd.MarkFlagRequired("user")

	importCmd.Flags().StringP("user", "u", "", "User id to import into")
	importCmd.Flags().StringP("file", "f", "", "Export file to import")
	_ = importCmd.MarkFlagRequired("user")
	_ = importCmd.MarkFlagRequired("file")

	tokenCmd.Flags().StringP("user", "u", "", "User id the token identifies")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

// openTransfer opens the configured store and wires the transfer service.
func openTransfer(cmd *cobra.Command) (*transfer.Service, *docstore.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, err := docstore.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	log := logging.Nop()
	return transfer.New(goalstate.New(db, log), db, log), db, nil
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's goals as JSON",
	Long:  `Export all goals of a user as a JSON array with ISO-8601 timestamps.`,
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	output, _ := cmd.Flags().GetString("output")

	svc, db, err := openTransfer(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	out, err := svc.Export(context.Background(), user)
	if err != nil {
		return fmt.Errorf("%s", domain.UserMessage(err))
	}

	if output == "" {
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}
	if err := os.WriteFile(output, out, 0600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Exported goals for %s to %s\n", user, output)
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import goals from an export file",
	Long:  `Validate an export file and add its goals to a user's document under fresh ids.`,
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	file, _ := cmd.Flags().GetString("file")

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	svc, db, err := openTransfer(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	goals, err := svc.Import(context.Background(), user, raw)
	if err != nil {
		return fmt.Errorf("%s", domain.UserMessage(err))
	}
	fmt.Fprintf(os.Stdout, "Imported %d goal(s) for %s\n", len(goals), user)
	return nil
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API bearer token",
	Long:  `Mint a signed bearer token for a user. Requires auth.secret to be set in the config.`,
	RunE:  runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is empty in %s; insecure mode uses the user id as the credential", daemon.ConfigPath())
	}

	tok, err := identity.New(cfg.Auth.Secret).Token(user, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, tok)
	return nil
}
