package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"swapScope/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "swaps.jsonl")
	store := NewJsonlStorage(path)

	first := model.SwapRecord{ID: "swap_1", Attempt: 1, TokenIn: "ETH", TokenOut: "USDC", Outcome: "overflow_retry"}
	second := model.SwapRecord{ID: "swap_1", Attempt: 2, TokenIn: "ETH", TokenOut: "USDC", Outcome: "success", TxHash: "0xabc"}

	if err := store.PutSwapRecords([]model.SwapRecord{first}); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := store.PutSwapRecords([]model.SwapRecord{second}); err != nil {
		t.Fatalf("put second: %v", err)
	}
	if err := store.PutSwapRecords(nil); err != nil {
		t.Fatalf("put empty: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}

	records, err := ReadSwapRecords(path)
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Attempt != 2 || records[1].TxHash != "0xabc" {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestReadSwapRecordsRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swaps.jsonl")
	if err := os.WriteFile(path, []byte("{\"id\":\"a\"}\nnot-json\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadSwapRecords(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
