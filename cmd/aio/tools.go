package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/layer-3/aio/adapters/crypto"
	"github.com/layer-3/aio/adapters/store"
	"github.com/layer-3/aio/adapters/tokenizer"
	"github.com/layer-3/aio/config"
	"github.com/layer-3/aio/service"
)

// tokenCmd mints an access token with the configured secret. Login itself
// lives outside this service; this is for local development.
func tokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if ttl <= 0 {
				ttl = cfg.TokenTTL
			}

			svc := service.NewAuthService(tokenizer.NewJWTTokenizer([]byte(cfg.JWTSecret)), store.NewMemoryStore(), nil, ttl)
			token, expiresAt, err := svc.IssueToken(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintln(cmd.ErrOrStderr(), "expires at", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

// keyCmd prints the Key header value for a Time header value
func keyCmd() *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Encrypt a Time header value into its Key header",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if value == "" {
				value = time.Now().Format("20060102150405")
			}

			c, err := crypto.NewAESCipher([]byte(cfg.AESKey))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Time: %s\nKey: %s\n", value, c.Encrypt(value))
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "time", "", "Time header value (defaults to now, yyyyMMddHHmmss)")

	return cmd
}
