package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tivins/php-solid/internal/report"
	"github.com/tivins/php-solid/internal/rules"
)

func newStore(t *testing.T) *BaselineStore {
	t.Helper()
	store, err := NewBaselineStore(filepath.Join(t.TempDir(), "baseline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport() *report.Report {
	return &report.Report{
		Lsp: []rules.LspViolation{
			{Class: "App\\Kennel", Method: "adopt", Contract: "App\\Shelter", Reason: "throws RuntimeException which contract does not declare"},
		},
		Isp: []rules.IspViolation{
			{Class: "App\\NullStorage", Interface: "App\\Storage", Reason: "method write only throws a not-supported exception"},
		},
		ClassesChecked: 2,
	}
}

func TestBaselineStore_SaveAndKnown(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveReport(ctx, sampleReport()))

	known, err := store.Known(ctx)
	require.NoError(t, err)
	assert.Len(t, known, 2)
	assert.True(t, known[lspFingerprint(sampleReport().Lsp[0])])
	assert.True(t, known[ispFingerprint(sampleReport().Isp[0])])
}

func TestBaselineStore_FilterSuppressesKnown(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveReport(ctx, sampleReport()))

	next := sampleReport()
	next.Lsp = append(next.Lsp, rules.LspViolation{
		Class: "App\\Salon", Method: "groom", Contract: "App\\Groomer",
		Reason: "parameter type is narrower than the contract",
	})

	filtered, err := store.Filter(ctx, next)
	require.NoError(t, err)
	require.Len(t, filtered.Lsp, 1, "only the new violation survives")
	assert.Equal(t, "App\\Salon", filtered.Lsp[0].Class)
	assert.Empty(t, filtered.Isp)
	assert.Equal(t, 2, filtered.ClassesChecked, "counters pass through untouched")
}

func TestBaselineStore_SaveReplacesSnapshot(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveReport(ctx, sampleReport()))

	// Second run fixed the ISP stub, keeps the LSP throw.
	second := sampleReport()
	second.Isp = nil
	require.NoError(t, store.SaveReport(ctx, second))

	known, err := store.Known(ctx)
	require.NoError(t, err)
	assert.Len(t, known, 1)
	assert.True(t, known[lspFingerprint(second.Lsp[0])])
}

func TestFingerprint_CaseInsensitiveOnNames(t *testing.T) {
	a := Fingerprint("LSP", "App\\Kennel", "adopt", "App\\Shelter", "reason")
	b := Fingerprint("LSP", "app\\kennel", "ADOPT", "app\\shelter", "reason")
	c := Fingerprint("LSP", "App\\Kennel", "adopt", "App\\Shelter", "other reason")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
