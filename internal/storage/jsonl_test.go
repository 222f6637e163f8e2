package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"poolGuard/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "verdicts.jsonl")
	sink := NewJsonlStorage(path)
	ctx := context.Background()

	first := []model.VerdictRecord{
		{Seq: 1, Script: "0xfeed", ActionKind: "swap", Accepted: true, EvaluatedAt: "2024-01-01T00:00:00Z"},
		{Seq: 2, Script: "0xfeed", ActionKind: "swap", Accepted: false, Reason: "invariant_violation", EvaluatedAt: "2024-01-01T00:00:01Z"},
	}
	if err := sink.PutVerdictBatch(ctx, first); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}
	if err := sink.PutVerdictBatch(ctx, nil); err != nil {
		t.Fatalf("empty batch failed: %v", err)
	}
	if err := sink.PutVerdictBatch(ctx, first[:1]); err != nil {
		t.Fatalf("second batch failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var lines []model.VerdictRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec model.VerdictRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("parse line: %v", err)
		}
		lines = append(lines, rec)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan output: %v", err)
	}

	if len(lines) != 3 {
		t.Fatalf("line count mismatch: %d", len(lines))
	}
	if lines[1].Reason != "invariant_violation" || lines[2].Seq != 1 {
		t.Fatalf("unexpected content: %+v", lines)
	}
}
