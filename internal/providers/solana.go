package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/config"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SolanaClient wraps the Solana RPC client with retry logic. Unlike the
// key-authenticated providers, a configured RPC endpoint is the credential.
type SolanaClient struct {
	client *rpc.Client
	config *config.SolanaConfig
}

// NewSolanaClient creates a Solana RPC adapter, or nil when no endpoint is
// configured.
func NewSolanaClient(cfg *config.SolanaConfig) *SolanaClient {
	if cfg.Endpoint == "" {
		return nil
	}

	return &SolanaClient{
		client: rpc.New(cfg.Endpoint),
		config: cfg,
	}
}

// Balance fetches the SOL balance for an address, retrying transient RPC
// failures with linear backoff.
func (s *SolanaClient) Balance(ctx context.Context, address string) (float64, error) {
	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid wallet address: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
		balance, err := s.client.GetBalance(attemptCtx, pubKey, rpc.CommitmentFinalized)
		cancel()

		if err == nil {
			// 1 SOL = 1,000,000,000 lamports.
			return float64(balance.Value) / 1e9, nil
		}

		lastErr = err
		if attempt < s.config.MaxRetries {
			time.Sleep(s.config.RetryDelay * time.Duration(attempt+1))
		}
	}

	return 0, fmt.Errorf("failed to get balance from RPC after %d attempts: %w", s.config.MaxRetries+1, lastErr)
}

// Slot returns the current finalized slot, the closest analogue of block
// height on this chain.
func (s *SolanaClient) Slot(ctx context.Context) (int64, error) {
	slotCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	slot, err := s.client.GetSlot(slotCtx, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("failed to get slot from RPC: %w", err)
	}

	return int64(slot), nil
}

// IsHealthy checks if the RPC endpoint is responsive.
func (s *SolanaClient) IsHealthy(ctx context.Context) error {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.client.GetLatestBlockhash(healthCtx, rpc.CommitmentFinalized); err != nil {
		return fmt.Errorf("RPC health check failed: %w", err)
	}

	return nil
}
