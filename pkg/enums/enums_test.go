package enums

import "testing"

func TestParseRFQStatus(t *testing.T) {
	status, err := ParseRFQStatus("quote_received")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != RFQStatusQuoteReceived {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParseRFQStatus("quoted"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestRFQStatusIsTerminal(t *testing.T) {
	if !RFQStatusCompleted.IsTerminal() {
		t.Fatal("completed should be terminal")
	}
	if !RFQStatusCancelled.IsTerminal() {
		t.Fatal("cancelled should be terminal")
	}
	if RFQStatusNew.IsTerminal() {
		t.Fatal("new should not be terminal")
	}
}

func TestParseRFQStage(t *testing.T) {
	if got := len(AllRFQStages()); got != 8 {
		t.Fatalf("expected 8 stages, got %d", got)
	}
	stage, err := ParseRFQStage("waiting_for_po")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != RFQStageWaitingForPO {
		t.Fatalf("unexpected stage %s", stage)
	}
}

func TestBandForConfidence(t *testing.T) {
	cases := []struct {
		score int
		want  ConfidenceBand
	}{
		{0, ConfidenceBandLow},
		{29, ConfidenceBandLow},
		{30, ConfidenceBandMedium},
		{69, ConfidenceBandMedium},
		{70, ConfidenceBandHigh},
		{100, ConfidenceBandHigh},
	}
	for _, tc := range cases {
		if got := BandForConfidence(tc.score); got != tc.want {
			t.Fatalf("score %d: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestMemberRoleCanViewAggregates(t *testing.T) {
	if MemberRoleSales.CanViewAggregates() {
		t.Fatal("sales should not view aggregates")
	}
	if !MemberRoleManager.CanViewAggregates() {
		t.Fatal("manager should view aggregates")
	}
	if !MemberRoleAdmin.CanViewAggregates() {
		t.Fatal("admin should view aggregates")
	}
}

func TestParseNoteKind(t *testing.T) {
	for _, raw := range []string{"internal", "customer", "supplier"} {
		if _, err := ParseNoteKind(raw); err != nil {
			t.Fatalf("expected %q to parse: %v", raw, err)
		}
	}
	if _, err := ParseNoteKind("private"); err == nil {
		t.Fatal("expected error for unknown note kind")
	}
}
