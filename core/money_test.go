package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12", 1200, false},
		{".5", 50, false},
		{"12.345", 1234, false},
		{"12.346", 1235, false},
		{"0", 0, true},
		{"0.00", 0, true},
		{"-5", 0, true},
		{"+5", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error: %v", tt.in, err)
			}
			if got.Paise != tt.want {
				t.Errorf("ParseAmount(%q) = %d paise, want %d", tt.in, got.Paise, tt.want)
			}
		})
	}
}

func TestMoneyHalf(t *testing.T) {
	tests := []struct {
		paise int64
		want  int64
	}{
		{20000, 10000},
		{101, 51}, // half-up on the odd paisa
		{1, 1},
		{0, 0},
	}
	for _, tt := range tests {
		got := Money{Paise: tt.paise}.Half()
		if got.Paise != tt.want {
			t.Errorf("Half(%d) = %d, want %d", tt.paise, got.Paise, tt.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	for _, paise := range []int64{0, 1, 50, 100, 12345, 1000000} {
		m := Money{Paise: paise}
		data, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("marshal %d: %v", paise, err)
		}
		var back Money
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back.Paise != paise {
			t.Errorf("round trip %d -> %s -> %d", paise, data, back.Paise)
		}
	}

	// Plain numbers written by the original frontend still parse.
	var m Money
	if err := json.Unmarshal([]byte("300"), &m); err != nil {
		t.Fatalf("unmarshal 300: %v", err)
	}
	if m.Paise != 30000 {
		t.Errorf("unmarshal 300 = %d paise, want 30000", m.Paise)
	}
}

func TestMoneyString(t *testing.T) {
	if got := RupeesOf(120).String(); got != "120.00" {
		t.Errorf("String() = %q, want %q", got, "120.00")
	}
	if got := (Money{Paise: -4550}).String(); got != "-45.50" {
		t.Errorf("String() = %q, want %q", got, "-45.50")
	}
}
