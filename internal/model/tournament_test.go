package model

import (
	"fmt"
	"strings"
	"testing"
)

func validData() *TournamentData {
	d := &TournamentData{}
	for i := 0; i < 48; i++ {
		d.Teams = append(d.Teams, Team{
			ID:            i,
			Name:          fmt.Sprintf("Nation %02d", i),
			Code:          fmt.Sprintf("A%c%c", rune('A'+i/26), rune('A'+i%26)),
			Confederation: UEFA,
			EloRating:     1600,
			FIFARanking:   i + 1,
		})
	}
	for g := 0; g < 12; g++ {
		d.Groups = append(d.Groups, Group{
			ID:    string(rune('A' + g)),
			Teams: []int{g * 4, g*4 + 1, g*4 + 2, g*4 + 3},
		})
	}
	return d
}

func TestValidateAccepts(t *testing.T) {
	if err := validData().Validate(); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TournamentData)
		want   string
	}{
		{"team count", func(d *TournamentData) { d.Teams = d.Teams[:47] }, "expected 48 teams"},
		{"group count", func(d *TournamentData) { d.Groups = d.Groups[:11] }, "expected 12 groups"},
		{"duplicate id", func(d *TournamentData) { d.Teams[1].ID = 0 }, "duplicate team id"},
		{"id out of range", func(d *TournamentData) { d.Teams[47].ID = 48 }, "out of range"},
		{"unsorted", func(d *TournamentData) { d.Teams[0], d.Teams[1] = d.Teams[1], d.Teams[0] }, "not sorted"},
		{"wrong letter", func(d *TournamentData) { d.Groups[0].ID = "B" }, "expected letter A"},
		{"group size", func(d *TournamentData) { d.Groups[2].Teams = d.Groups[2].Teams[:3] }, "expected 4 teams"},
		{"dangling reference", func(d *TournamentData) { d.Groups[11].Teams[3] = 99 }, "unknown team id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validData()
			tt.mutate(d)
			err := d.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	raw, err := validData().Encode()
	if err != nil {
		t.Fatal(err)
	}
	if raw[len(raw)-1] != '\n' {
		t.Error("encoded document must end with a newline")
	}
	decoded, err := DecodeStrict(raw)
	if err != nil {
		t.Fatal(err)
	}
	if err := decoded.Validate(); err != nil {
		t.Errorf("round-tripped document invalid: %v", err)
	}
}

func TestDecodeStrictRejectsUnknownFields(t *testing.T) {
	raw := []byte(`{"teams": [], "groups": [], "extra": true}`)
	if _, err := DecodeStrict(raw); err == nil {
		t.Fatal("unknown top-level field must be rejected")
	}
	raw = []byte(`{"teams": [{"id": 0, "nickname": "x"}], "groups": []}`)
	if _, err := DecodeStrict(raw); err == nil {
		t.Fatal("unknown team field must be rejected")
	}
}

func TestDecodeStrictRejectsTypeMismatch(t *testing.T) {
	raw := []byte(`{"teams": [{"id": "zero"}], "groups": []}`)
	if _, err := DecodeStrict(raw); err == nil {
		t.Fatal("string id must be rejected")
	}
}

func TestConfederationValid(t *testing.T) {
	for _, c := range Confederations() {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	for _, c := range []Confederation{"TBD", "", "uefa", "FIFA"} {
		if c.Valid() {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestValidCode(t *testing.T) {
	for code, want := range map[string]bool{
		"BRA": true, "GER": true,
		"TBD": true, // well-formed even though it is a sentinel
		"br":  false, "BRAZ": false, "B1A": false, "": false, "bra": false,
	} {
		if got := ValidCode(code); got != want {
			t.Errorf("ValidCode(%q) = %v, want %v", code, got, want)
		}
	}
}
