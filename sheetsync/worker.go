package sheetsync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/rengganislabs/ledger_backend/config"
	"github.com/rengganislabs/ledger_backend/models"
	"github.com/rengganislabs/ledger_backend/utils"
)

const refreshLockKey = "sheetsync:refresh"

// snapshotKeep bounds how many raw snapshots are retained per ledger.
const snapshotKeep = 30

type ledgerFetch struct {
	kind     models.LedgerKind
	rows     []models.RawRow
	checksum string
	fromSnap bool
	err      error
}

// Refresh fetches the three ledger feeds concurrently, persists the raw
// bodies, normalizes them and replaces the store's snapshot. A feed that
// cannot be fetched falls back to its latest stored snapshot; the refresh
// only fails when a ledger has neither. The redis lock is best effort: if
// another instance is already refreshing we simply skip this run.
func Refresh(ctx context.Context, store *Store, rules models.RuleSet) error {
	logger := config.GetLogger()

	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, refreshLockKey, 2*time.Minute, nil)
		if err == nil {
			defer lock.Release(context.Background())
		} else if errors.Is(err, redislock.ErrNotObtained) {
			logger.Info("sheetsync refresh already running elsewhere; skipping")
			return nil
		}
		// Any other lock error: Redis is unhealthy, proceed without the lock.
	}

	client := newSheetClient()
	sources := config.GetSheetSources()

	fetches := make([]ledgerFetch, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src config.SheetSource) {
			defer wg.Done()
			kind, err := models.ParseLedgerKind(src.Kind)
			if err != nil {
				fetches[i] = ledgerFetch{err: err}
				return
			}
			fetches[i] = fetchLedger(ctx, client, kind, src.URL)
		}(i, src)
	}
	wg.Wait()

	set := models.LedgerSet{FetchedAt: time.Now()}
	checksums := ""
	for _, fetch := range fetches {
		if fetch.err != nil {
			store.recordFailure(fetch.err)
			return fetch.err
		}
		checksums += fetch.checksum
		switch fetch.kind {
		case models.LedgerKindRevenue:
			set.Revenue = models.NormalizeRevenueRows(fetch.rows, rules)
		case models.LedgerKindExpense:
			set.Expense = models.NormalizeExpenseRows(fetch.rows, rules)
		case models.LedgerKindCapital:
			set.Capital = models.NormalizeCapitalRows(fetch.rows, rules)
		}
	}
	set.Version = shortChecksum([]byte(checksums))

	store.Replace(set)
	logger.WithField("version", set.Version).
		WithField("revenue_rows", len(set.Revenue)).
		WithField("expense_rows", len(set.Expense)).
		WithField("capital_rows", len(set.Capital)).
		Info("ledger snapshot refreshed")
	return nil
}

func fetchLedger(ctx context.Context, client *sheetClient, kind models.LedgerKind, url string) ledgerFetch {
	logger := config.GetLogger()

	if url == "" {
		return snapshotFallback(ctx, kind, fmt.Errorf("no source url configured for %s ledger", kind))
	}

	body, err := client.fetchCSV(ctx, url)
	if err != nil {
		config.LogError(logger, "worker.go", "fetchLedger", string(kind), url, err)
		return snapshotFallback(ctx, kind, err)
	}

	rows, err := DecodeRows(body)
	if err != nil {
		config.LogError(logger, "worker.go", "fetchLedger", string(kind)+" decode", url, err)
		return snapshotFallback(ctx, kind, err)
	}

	checksum := shortChecksum(body)
	snap := &models.LedgerSnapshot{
		Kind:      kind,
		SourceURL: url,
		RowCount:  len(rows),
		Checksum:  checksum,
		RawCSV:    string(body),
		FetchedAt: time.Now(),
	}
	if err := models.SaveLedgerSnapshot(ctx, snap); err != nil {
		config.LogError(logger, "worker.go", "fetchLedger", "SaveLedgerSnapshot", string(kind), err)
	} else if err := models.PruneLedgerSnapshots(ctx, kind, snapshotKeep); err != nil {
		config.LogError(logger, "worker.go", "fetchLedger", "PruneLedgerSnapshots", string(kind), err)
	}

	return ledgerFetch{kind: kind, rows: rows, checksum: checksum}
}

// snapshotFallback serves the last stored raw body when the upstream feed
// is unavailable.
func snapshotFallback(ctx context.Context, kind models.LedgerKind, cause error) ledgerFetch {
	snap, err := models.LatestLedgerSnapshot(ctx, kind)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return ledgerFetch{err: fmt.Errorf("%s ledger unavailable and no snapshot stored: %w", kind, cause)}
		}
		return ledgerFetch{err: err}
	}
	rows, err := DecodeRows([]byte(snap.RawCSV))
	if err != nil {
		return ledgerFetch{err: fmt.Errorf("decode stored %s snapshot: %w", kind, err)}
	}
	config.GetLogger().WithField("kind", kind).
		WithField("snapshot_fetched_at", snap.FetchedAt).
		Warn("serving ledger from stored snapshot")
	return ledgerFetch{kind: kind, rows: rows, checksum: snap.Checksum, fromSnap: true}
}

func shortChecksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:16]
}
