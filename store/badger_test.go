package store

import (
	"bytes"
	"errors"
	"testing"

	"github.com/akatsarakis/galene/galene"
)

func openTestStore(t *testing.T) *Badger {
	t.Helper()
	s, err := OpenBadger(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStagePublishCurrent(t *testing.T) {
	s := openTestStore(t)
	ts := galene.Timestamp{Version: 1, TieBreaker: "n1"}

	if _, _, err := s.Current(); !errors.Is(err, ErrNoValue) {
		t.Fatalf("expected ErrNoValue before any publish, got %v", err)
	}

	if err := s.PutStaged(ts, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	s.Stage(ts) // idempotent: must not clobber the staged bytes
	s.Publish(ts)

	got, val, err := s.Current()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ts) || !bytes.Equal(val, []byte("hello")) {
		t.Fatalf("current = %s %q, want %s %q", got, val, ts, "hello")
	}
}

func TestStageWithoutValue(t *testing.T) {
	s := openTestStore(t)
	ts := galene.Timestamp{Version: 2, TieBreaker: "n2"}

	// a follower stages the slot before the value arrives
	s.Stage(ts)
	s.Publish(ts)

	got, val, err := s.Current()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ts) || len(val) != 0 {
		t.Fatalf("current = %s %q, want %s with no value yet", got, val, ts)
	}
}

func TestStagedScan(t *testing.T) {
	s := openTestStore(t)
	a := galene.Timestamp{Version: 1, TieBreaker: "n2"}
	b := galene.Timestamp{Version: 2, TieBreaker: "n1"}

	if err := s.PutStaged(b, []byte("later")); err != nil {
		t.Fatal(err)
	}
	if err := s.PutStaged(a, []byte("earlier")); err != nil {
		t.Fatal(err)
	}

	staged, err := s.Staged()
	if err != nil {
		t.Fatal(err)
	}
	if len(staged) != 2 {
		t.Fatalf("staged %d entries, want 2", len(staged))
	}
	// keys are version-padded, so the scan comes back in version order
	if !staged[0].TS.Equal(a) || !staged[1].TS.Equal(b) {
		t.Fatalf("scan order %s, %s; want %s, %s", staged[0].TS, staged[1].TS, a, b)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	ts := galene.Timestamp{Version: 7, TieBreaker: "n3"}
	data, err := packEntry(ts, []byte("payload"))
	if err != nil {
		t.Fatal(err)
	}
	got, val, err := unpackEntry(data)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ts) || string(val) != "payload" {
		t.Fatalf("round trip gave %s %q", got, val)
	}
}
