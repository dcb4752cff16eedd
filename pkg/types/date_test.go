package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 14, 17, 45, 0, 0, time.UTC))

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2025-03-14"` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var parsed Date
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", parsed, d)
	}
}

func TestNewDateDropsTimeOfDay(t *testing.T) {
	d := NewDate(time.Date(2025, 6, 1, 23, 59, 59, 0, time.FixedZone("EST", -5*3600)))
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", d.Time)
	}
	// 23:59 EST on June 1 is already June 2 in UTC
	if d.Day() != 2 {
		t.Fatalf("expected UTC date, got %v", d.Time)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2024-12-25" {
		t.Fatalf("unexpected date %s", d)
	}

	if err := d.Scan("2024-01-02"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2024-01-02" {
		t.Fatalf("unexpected date %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("expected zero date after nil scan")
	}

	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("03/14/2025"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}
