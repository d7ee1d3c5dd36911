package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/ledgeranchor/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const defaultTransactionsLimit = 10

// TransactionService simulates and lists external blockchain transactions
type TransactionService struct {
	networks     ledger.NetworkRepository
	tokens       ledger.TokenRepository
	transactions ledger.ExternalTransactionRepository
	metrics      Metrics
	logger       *zap.Logger
	limit        int
	now          func() time.Time
}

// TransactionServiceConfig holds the dependencies of TransactionService
type TransactionServiceConfig struct {
	Networks     ledger.NetworkRepository
	Tokens       ledger.TokenRepository
	Transactions ledger.ExternalTransactionRepository
	Metrics      Metrics // optional
	Logger       *zap.Logger
	ListLimit    int
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(cfg TransactionServiceConfig) *TransactionService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	limit := cfg.ListLimit
	if limit <= 0 {
		limit = defaultTransactionsLimit
	}
	return &TransactionService{
		networks:     cfg.Networks,
		tokens:       cfg.Tokens,
		transactions: cfg.Transactions,
		metrics:      metrics,
		logger:       logger,
		limit:        limit,
		now:          time.Now,
	}
}

// SimulateTransaction records a confirmed simulated transfer, creating the
// network (by chain id) and token (by network and symbol) when missing.
func (s *TransactionService) SimulateTransaction(ctx context.Context, req SimulateTransactionRequest) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transaction", "simulate", telemetry.SpanAttrOrgID, req.OrgID)
	defer span.End()

	resp, err := s.simulateTransaction(ctx, req)
	telemetry.RecordError(span, err)
	return resp, err
}

func (s *TransactionService) simulateTransaction(ctx context.Context, req SimulateTransactionRequest) (*TransactionResponse, error) {
	orgID, err := parseID("org_id", req.OrgID)
	if err != nil {
		return nil, err
	}
	if req.ChainID <= 0 {
		return nil, shared.NewValidationError("chain_id is required")
	}
	if strings.TrimSpace(req.TokenSymbol) == "" {
		return nil, shared.NewValidationError("token_symbol is required")
	}

	network, err := s.ensureNetwork(ctx, req.NetworkName, req.ChainID)
	if err != nil {
		return nil, err
	}
	token, err := s.ensureToken(ctx, network, req.TokenSymbol, req.Decimals)
	if err != nil {
		return nil, err
	}

	tx, err := ledger.NewSimulatedTransaction(orgID, network, token, req.FromAddr, req.ToAddr, req.Amount, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.transactions.Save(ctx, tx); err != nil {
		return nil, shared.WrapStoreError("insert transaction", err)
	}
	s.metrics.TransactionSimulated(ctx)

	s.logger.Info("Simulated transaction recorded",
		zap.String("tx_id", tx.ID.String()),
		zap.String("org_id", orgID.String()),
		zap.String("network", network.Name),
		zap.String("token", token.Symbol),
		zap.String("amount", tx.Amount.String()))

	networkName := network.Name
	return &TransactionResponse{
		ID:          tx.ID,
		OrgID:       tx.OrgID,
		TxHash:      tx.TxHash,
		Amount:      tx.Amount,
		FromAddr:    tx.FromAddr,
		ToAddr:      tx.ToAddr,
		BlockNumber: tx.BlockNumber,
		BlockTime:   tx.BlockTime,
		Status:      tx.Status,
		TokenSymbol: token.Symbol,
		NetworkName: &networkName,
	}, nil
}

// ListTransactions returns the newest transactions first, optionally for one organization
func (s *TransactionService) ListTransactions(ctx context.Context, orgID string) ([]TransactionResponse, error) {
	org, err := parseOptionalID("org_id", orgID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.transactions.FindRecent(ctx, ledger.ListFilter{OrgID: org, Limit: s.limit})
	if err != nil {
		return nil, shared.WrapStoreError("list transactions", err)
	}

	out := make([]TransactionResponse, 0, len(summaries))
	for _, t := range summaries {
		symbol := t.TokenSymbol
		if symbol == "" {
			symbol = "N/A"
		}
		out = append(out, TransactionResponse{
			ID:          t.ID,
			Amount:      t.Amount,
			FromAddr:    t.FromAddr,
			ToAddr:      t.ToAddr,
			BlockTime:   t.BlockTime,
			Status:      t.Status,
			TokenSymbol: symbol,
			NetworkName: t.NetworkName,
		})
	}
	return out, nil
}

func (s *TransactionService) ensureNetwork(ctx context.Context, name string, chainID int64) (*ledger.Network, error) {
	network, err := s.networks.FindByChainID(ctx, chainID)
	if err == nil {
		return network, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.WrapStoreError("find network", err)
	}
	network = ledger.NewNetwork(name, chainID)
	if err := s.networks.Save(ctx, network); err != nil {
		return nil, shared.WrapStoreError("insert network", err)
	}
	return network, nil
}

func (s *TransactionService) ensureToken(ctx context.Context, network *ledger.Network, symbol string, decimals int) (*ledger.Token, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	token, err := s.tokens.FindBySymbol(ctx, network.ID, symbol)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.WrapStoreError("find token", err)
	}
	token = ledger.NewToken(network.ID, symbol, decimals)
	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, shared.WrapStoreError("insert token", err)
	}
	return token, nil
}
