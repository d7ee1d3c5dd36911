package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/ledgeranchor/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.OrganizationModel{},
		&models.JournalModel{},
		&models.AccountModel{},
		&models.EntryModel{},
		&models.EntryLineModel{},
		&models.NetworkModel{},
		&models.TokenModel{},
		&models.TransactionModel{},
		&models.TxEntryLinkModel{},
		&models.PeriodAnchorModel{},
	)
	require.NoError(t, err)
	return db
}

type ledgerFixture struct {
	orgID    uuid.UUID
	journal  models.JournalModel
	accounts map[string]models.AccountModel
}

func seedLedger(t *testing.T, db *gorm.DB) ledgerFixture {
	t.Helper()
	f := ledgerFixture{
		orgID:    uuid.New(),
		accounts: make(map[string]models.AccountModel),
	}
	f.journal = models.JournalModel{ID: uuid.New(), OrgID: f.orgID, Code: "BQ", Name: "Bank", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&f.journal).Error)

	for code, name := range map[string]string{"512": "Bank", "706": "Services", "601": "Purchases"} {
		acc := models.AccountModel{ID: uuid.New(), OrgID: f.orgID, Code: code, Name: name, CreatedAt: time.Now()}
		require.NoError(t, db.Create(&acc).Error)
		f.accounts[code] = acc
	}
	return f
}

func (f ledgerFixture) entry(date time.Time, ref string, lines ...ledger.Line) *ledger.Entry {
	e := &ledger.Entry{
		BaseEntity:  shared.NewBaseEntity(),
		OrgID:       f.orgID,
		JournalID:   f.journal.ID,
		JournalCode: f.journal.Code,
		Date:        date,
		Source:      ledger.EntrySourceAPI,
	}
	if ref != "" {
		e.Ref = &ref
	}
	for i, l := range lines {
		l.ID = uuid.New()
		l.EntryID = e.ID
		l.OrgID = f.orgID
		l.AccountID = f.accounts[l.AccountCode].ID
		l.Position = i
		if l.Currency == "" {
			l.Currency = ledger.DefaultCurrency
		}
		e.Lines = append(e.Lines, l)
	}
	return e
}

func debitLine(code, amount string) ledger.Line {
	return ledger.Line{AccountCode: code, Debit: decimal.RequireFromString(amount), Credit: decimal.Zero}
}

func creditLine(code, amount string) ledger.Line {
	return ledger.Line{AccountCode: code, Debit: decimal.Zero, Credit: decimal.RequireFromString(amount)}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestJournalAndAccountRepositories_FindByCode(t *testing.T) {
	db := setupLedgerTestDB(t)
	f := seedLedger(t, db)
	ctx := context.Background()

	journals := NewGormJournalRepository(db)
	accounts := NewGormAccountRepository(db)

	t.Run("finds journal in organization", func(t *testing.T) {
		j, err := journals.FindByCode(ctx, f.orgID, "BQ")
		require.NoError(t, err)
		assert.Equal(t, f.journal.ID, j.ID)
	})

	t.Run("journal of another organization is not found", func(t *testing.T) {
		_, err := journals.FindByCode(ctx, uuid.New(), "BQ")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds account", func(t *testing.T) {
		a, err := accounts.FindByCode(ctx, f.orgID, "706")
		require.NoError(t, err)
		assert.Equal(t, "Services", a.Name)
		assert.Equal(t, ledger.ClassRevenue, a.Class())
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := accounts.FindByCode(ctx, f.orgID, "999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestEntryRepository_CreateWithLines(t *testing.T) {
	db := setupLedgerTestDB(t)
	f := seedLedger(t, db)
	ctx := context.Background()
	repo := NewGormEntryRepository(db)

	entry := f.entry(day(2025, 1, 15), "INV-1",
		debitLine("512", "1000.00"),
		creditLine("706", "1000.00"),
	)
	require.NoError(t, repo.CreateWithLines(ctx, entry))

	var stored models.EntryModel
	require.NoError(t, db.Preload("Lines").First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, ledger.EntrySourceAPI, stored.Source)
	require.Len(t, stored.Lines, 2)

	var total decimal.Decimal
	for _, l := range stored.Lines {
		total = total.Add(l.Debit).Sub(l.Credit)
		assert.Equal(t, "EUR", l.Currency)
	}
	assert.True(t, total.IsZero())
}

func TestEntryRepository_CreateWithLines_RollsBackOnLineFailure(t *testing.T) {
	db := setupLedgerTestDB(t)
	f := seedLedger(t, db)
	ctx := context.Background()
	repo := NewGormEntryRepository(db)

	entry := f.entry(day(2025, 1, 15), "",
		debitLine("512", "10"),
		creditLine("706", "10"),
	)
	entry.Lines[1].ID = entry.Lines[0].ID

	err := repo.CreateWithLines(ctx, entry)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.EntryModel{}).Where("id = ?", entry.ID).Count(&count).Error)
	assert.Zero(t, count, "header must not survive a failed line insert")
}

func TestEntryRepository_FindHeadersInRange(t *testing.T) {
	db := setupLedgerTestDB(t)
	f := seedLedger(t, db)
	ctx := context.Background()
	repo := NewGormEntryRepository(db)

	for _, d := range []time.Time{day(2025, 1, 20), day(2025, 1, 5), day(2025, 2, 1), day(2024, 12, 31)} {
		require.NoError(t, repo.CreateWithLines(ctx, f.entry(d, "", debitLine("512", "1"), creditLine("706", "1"))))
	}

	period, err := ledger.ParsePeriod("2025-01")
	require.NoError(t, err)

	headers, err := repo.FindHeadersInRange(ctx, f.orgID, period.Start(), period.End())
	require.NoError(t, err)
	require.Len(t, headers, 2)
	assert.True(t, headers[0].Date.Equal(day(2025, 1, 5)))
	assert.True(t, headers[1].Date.Equal(day(2025, 1, 20)))
	assert.Equal(t, f.orgID, headers[0].OrgID)

	none, err := repo.FindHeadersInRange(ctx, uuid.New(), period.Start(), period.End())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEntryRepository_FindRecent(t *testing.T) {
	db := setupLedgerTestDB(t)
	f := seedLedger(t, db)
	other := seedLedger(t, db)
	ctx := context.Background()
	repo := NewGormEntryRepository(db)

	first := f.entry(day(2025, 1, 1), "A", debitLine("512", "1"), creditLine("706", "1"))
	first.CreatedAt = time.Now().Add(-time.Hour)
	second := f.entry(day(2025, 1, 2), "B", debitLine("512", "1"), creditLine("706", "1"))
	foreign := other.entry(day(2025, 1, 3), "C", debitLine("512", "1"), creditLine("706", "1"))
	for _, e := range []*ledger.Entry{first, second, foreign} {
		require.NoError(t, repo.CreateWithLines(ctx, e))
	}

	t.Run("scoped to organization, newest first", func(t *testing.T) {
		list, err := repo.FindRecent(ctx, ledger.ListFilter{OrgID: &f.orgID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, "BQ", list[0].JournalCode)
		assert.Equal(t, "B", *list[0].Ref)
	})

	t.Run("all organizations with limit", func(t *testing.T) {
		list, err := repo.FindRecent(ctx, ledger.ListFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestLineRepository_FindWithAccounts(t *testing.T) {
	db := setupLedgerTestDB(t)
	f := seedLedger(t, db)
	ctx := context.Background()
	entries := NewGormEntryRepository(db)
	lines := NewGormLineRepository(db)

	require.NoError(t, entries.CreateWithLines(ctx, f.entry(day(2025, 1, 15), "",
		debitLine("512", "1000"),
		creditLine("706", "1000"),
	)))

	orphan := models.EntryLineModel{
		ID: uuid.New(), OrgID: f.orgID, EntryID: uuid.New(), AccountID: uuid.New(),
		Debit: decimal.NewFromInt(5), Credit: decimal.Zero, Currency: "EUR", CreatedAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, db.Create(&orphan).Error)

	got, err := lines.FindWithAccounts(ctx, f.orgID, 100)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "512", got[0].AccountCode)
	assert.Equal(t, "Bank", got[0].AccountName)
	assert.True(t, got[0].Debit.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "706", got[1].AccountCode)
	assert.Empty(t, got[2].AccountCode)

	limited, err := lines.FindWithAccounts(ctx, f.orgID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestOrganizationRepository(t *testing.T) {
	db := setupLedgerTestDB(t)
	ctx := context.Background()
	repo := NewGormOrganizationRepository(db)

	t.Run("no organizations", func(t *testing.T) {
		orgs, err := repo.FindAll(ctx, 50)
		require.NoError(t, err)
		assert.Empty(t, orgs)
	})

	t.Run("distinct ids across ledger tables", func(t *testing.T) {
		f := seedLedger(t, db)
		require.NoError(t, NewGormEntryRepository(db).CreateWithLines(ctx,
			f.entry(day(2025, 3, 1), "", debitLine("512", "1"), creditLine("706", "1"))))

		txOrg := uuid.New()
		require.NoError(t, db.Create(&models.TransactionModel{
			OrgModel: models.OrgModel{BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: time.Now()}, OrgID: txOrg},
			NetworkID: uuid.New(), TokenID: uuid.New(), TxHash: "sim_x", Amount: decimal.NewFromInt(1),
			BlockTime: time.Now(), Status: ledger.TransactionStatusConfirmed,
		}).Error)

		ids, err := repo.FindDistinctOrgIDs(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{f.orgID, txOrg}, ids)
	})

	t.Run("organization rows labeled by name", func(t *testing.T) {
		named := models.OrganizationModel{ID: uuid.New(), Name: "Acme SARL", CreatedAt: time.Now()}
		unnamed := models.OrganizationModel{ID: uuid.New(), CreatedAt: time.Now().Add(time.Second)}
		require.NoError(t, db.Create(&named).Error)
		require.NoError(t, db.Create(&unnamed).Error)

		orgs, err := repo.FindAll(ctx, 50)
		require.NoError(t, err)
		require.Len(t, orgs, 2)
		assert.Equal(t, "Acme SARL", orgs[0].Label)
		assert.Equal(t, unnamed.ID.String(), orgs[1].Label)
	})
}

func TestBlockchainRepositories(t *testing.T) {
	db := setupLedgerTestDB(t)
	ctx := context.Background()
	networks := NewGormNetworkRepository(db)
	tokens := NewGormTokenRepository(db)
	txs := NewGormTransactionRepository(db)

	network := ledger.NewNetwork("sepolia", 11155111)
	require.NoError(t, networks.Save(ctx, network))

	byChain, err := networks.FindByChainID(ctx, 11155111)
	require.NoError(t, err)
	assert.Equal(t, network.ID, byChain.ID)

	byName, err := networks.FindByName(ctx, "sepolia")
	require.NoError(t, err)
	assert.Equal(t, network.ID, byName.ID)

	_, err = networks.FindByChainID(ctx, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	token := ledger.NewToken(network.ID, "usdc", 6)
	require.NoError(t, tokens.Save(ctx, token))
	found, err := tokens.FindBySymbol(ctx, network.ID, "USDC")
	require.NoError(t, err)
	assert.Equal(t, 6, found.Decimals)

	_, err = tokens.FindBySymbol(ctx, uuid.New(), "USDC")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	orgID := uuid.New()
	older, err := ledger.NewSimulatedTransaction(orgID, network, token, "0xa", "0xb", decimal.RequireFromString("1.5"), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	newer, err := ledger.NewSimulatedTransaction(orgID, network, token, "0xa", "0xc", decimal.RequireFromString("2"), time.Now())
	require.NoError(t, err)
	require.NoError(t, txs.Save(ctx, older))
	require.NoError(t, txs.Save(ctx, newer))

	list, err := txs.FindRecent(ctx, ledger.ListFilter{OrgID: &orgID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, "USDC", list[0].TokenSymbol)
	require.NotNil(t, list[0].NetworkName)
	assert.Equal(t, "sepolia", *list[0].NetworkName)
	assert.True(t, list[1].Amount.Equal(decimal.RequireFromString("1.5")))
}

func TestReconciliationRepository_AllowsDuplicates(t *testing.T) {
	db := setupLedgerTestDB(t)
	ctx := context.Background()
	repo := NewGormReconciliationRepository(db)

	orgID, txID, entryID := uuid.New(), uuid.New(), uuid.New()
	for i := 0; i < 2; i++ {
		link, err := ledger.NewReconciliationLink(orgID, txID, entryID, 90)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, link))
	}

	links, err := repo.FindByEntry(ctx, orgID, entryID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, txID, links[0].TransactionID)
	assert.Equal(t, 90, links[1].Confidence)
}

func TestPeriodAnchorRepository(t *testing.T) {
	db := setupLedgerTestDB(t)
	ctx := context.Background()
	repo := NewGormPeriodAnchorRepository(db)

	orgID := uuid.New()
	jan, _ := ledger.ParsePeriod("2025-01")
	feb, _ := ledger.ParsePeriod("2025-02")

	first := ledger.NewPeriodAnchor(orgID, jan, "aa", 2, nil)
	first.CreatedAt = time.Now().Add(-time.Minute)
	networkID := uuid.New()
	second := ledger.NewPeriodAnchor(orgID, jan, "aa", 2, &networkID)
	third := ledger.NewPeriodAnchor(orgID, feb, "bb", 0, nil)
	for _, a := range []*ledger.PeriodAnchor{first, second, third} {
		a.ExternalRef = "sim_cid_" + a.ID.String()
		require.NoError(t, repo.Save(ctx, a))
	}

	t.Run("no dedup per period, newest first", func(t *testing.T) {
		list, err := repo.FindByPeriod(ctx, orgID, "2025-01")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		require.NotNil(t, list[0].NetworkID)
		assert.Equal(t, networkID, *list[0].NetworkID)
	})

	t.Run("empty period lists all", func(t *testing.T) {
		list, err := repo.FindByPeriod(ctx, orgID, "")
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("find by id is org scoped", func(t *testing.T) {
		got, err := repo.FindByID(ctx, orgID, third.ID)
		require.NoError(t, err)
		assert.Equal(t, "bb", got.Commitment)
		assert.Equal(t, third.ExternalRef, got.ExternalRef)

		_, err = repo.FindByID(ctx, uuid.New(), third.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
