package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/memory"
)

// harness runs splitctl invocations against one shared in-memory store.
type harness struct {
	store *memory.Store
	opens int
}

func (h *harness) open(ctx context.Context) (*ledger.Ledger, error) {
	h.opens++
	return ledger.Open(ctx, h.store, ledger.WithClock(func() time.Time {
		return time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	}))
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), h.open, args, &stdout, &stderr)
	return stdout.String(), err
}

func newHarness() *harness {
	return &harness{store: memory.New()}
}

func TestEndToEnd(t *testing.T) {
	h := newHarness()

	out, err := h.run(t, "person", "add", "Alice", "Bob", "Carol")
	require.NoError(t, err)
	assert.Equal(t, "Added Alice\nAdded Bob\nAdded Carol\n", out)

	out, err = h.run(t, "add", "--name", "Dinner", "--payer", "Alice", "--amount", "90", "--for", "Alice,Bob,Carol")
	require.NoError(t, err)
	assert.Equal(t, "15/10/26 | Dinner: Alice paid 90 for Alice, Bob and Carol\n", out)

	out, err = h.run(t, "balances")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Alice", "60"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Bob", "-30"}, strings.Fields(lines[1]))

	out, err = h.run(t, "settle")
	require.NoError(t, err)
	assert.Equal(t, "Bob pays Alice 30\nCarol pays Alice 30\n", out)

	out, err = h.run(t, "settle", "Bob", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "15/10/26 | Debt Settlement: Bob paid 30 for Alice\n", out)

	_, err = h.run(t, "settle", "Carol", "Alice")
	require.NoError(t, err)

	out, err = h.run(t, "settle")
	require.NoError(t, err)
	assert.Equal(t, "All settled up\n", out)

	out, err = h.run(t, "history")
	require.NoError(t, err)
	history := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, history, 3)
	assert.Contains(t, history[0], "Carol paid 30 for Alice")
	assert.Contains(t, history[2], "Dinner")
}

func TestAddSplitModes(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "person", "add", "Alice", "Bob", "Carol")
	require.NoError(t, err)

	out, err := h.run(t, "add", "--name", "Taxi", "--payer", "Alice", "--amount", "100",
		"--for", "Bob,Carol", "--split", "shares", "--share", "Bob=1,Carol=3")
	require.NoError(t, err)
	assert.Equal(t, "15/10/26 | Taxi: Alice paid 100 for Bob (25, 1 share) and Carol (75, 3 shares)\n", out)

	out, err = h.run(t, "add", "--name", "Tickets", "--payer", "Alice",
		"--for", "Bob,Carol", "--split", "exact", "--exact", "Bob=30.50", "--exact", "Carol=69.5")
	require.NoError(t, err)
	assert.Equal(t, "15/10/26 | Tickets: Alice paid 100 for Bob (30.5) and Carol (69.5)\n", out)
}

func TestErrors(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "person", "add", "Alice", "Bob")
	require.NoError(t, err)

	_, err = h.run(t, "person", "add", "Alice")
	assert.ErrorIs(t, err, ledger.ErrDuplicateName)

	_, err = h.run(t, "add", "--payer", "Zed", "--amount", "5", "--for", "Alice")
	assert.ErrorIs(t, err, ledger.ErrUnknownPerson)

	_, err = h.run(t, "add", "--payer", "Alice", "--amount", "ten", "--for", "Bob")
	assert.ErrorContains(t, err, "--amount")

	_, err = h.run(t, "add", "--payer", "Alice", "--amount", "10", "--for", "Bob", "--split", "shares")
	assert.ErrorIs(t, err, ledger.ErrInvalidSplit)

	_, err = h.run(t, "add", "--payer", "Alice", "--amount", "10")
	assert.ErrorContains(t, err, "for", "missing required flag")

	_, err = h.run(t, "settle", "Bob")
	assert.ErrorContains(t, err, "accepts 0 or 2 arg(s)")

	_, err = h.run(t, "settle", "Bob", "Alice")
	assert.ErrorIs(t, err, ledger.ErrNoSettlement)
}

func TestReadOnlyCommandsDoNotWrite(t *testing.T) {
	h := newHarness()
	for _, args := range [][]string{{"balances"}, {"history"}, {"settle"}} {
		_, err := h.run(t, args...)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, h.opens)
	assert.Zero(t, h.store.Saves())
}

// cancelAfterSave cancels the command context once a save has gone through,
// the way an interrupt arriving mid-command would.
type cancelAfterSave struct {
	*memory.Store
	cancel context.CancelFunc
}

func (s cancelAfterSave) Save(ctx context.Context, snap *models.Snapshot) error {
	err := s.Store.Save(ctx, snap)
	s.cancel()
	return err
}

func TestFlushSurvivesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := cancelAfterSave{Store: memory.New(), cancel: cancel}

	var stdout, stderr bytes.Buffer
	err := Execute(ctx, func(ctx context.Context) (*ledger.Ledger, error) {
		return ledger.Open(ctx, store)
	}, []string{"person", "add", "Alice"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Saves(), "closing flush ran despite the cancelled context")

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.People, 1)
	assert.Equal(t, "Alice", snap.People[0].Name)
}

func TestOpenFailure(t *testing.T) {
	boom := errors.New("no disk")
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), func(context.Context) (*ledger.Ledger, error) {
		return nil, boom
	}, []string{"balances"}, &stdout, &stderr)
	assert.ErrorIs(t, err, boom)
}

func TestParseAmount(t *testing.T) {
	v, err := parseAmount(" 12.50 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	_, err = parseAmount("1,5")
	assert.Error(t, err)
}
