package report

import (
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

var at = time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)

func result(vs ...domain.HostVerdict) domain.CycleResult {
	return domain.CycleResult{Verdicts: vs, StartedAt: at, FinishedAt: at.Add(5 * time.Second)}
}

func downV(addr, label string, attempts int) domain.HostVerdict {
	return domain.HostVerdict{
		Host:          domain.Host{Address: addr, Label: label},
		Status:        domain.StatusDown,
		AttemptsMade:  attempts,
		LastAttemptAt: at,
		Reason:        "timeout",
	}
}

func upV(addr, label string) domain.HostVerdict {
	return domain.HostVerdict{
		Host:          domain.Host{Address: addr, Label: label},
		Status:        domain.StatusUp,
		AttemptsMade:  1,
		LastAttemptAt: at,
	}
}

func TestBuild_NoDownNoPayload(t *testing.T) {
	p := Build(result(upV("10.0.0.1", "A"), upV("10.0.0.2", "B")), Params{Recipients: []string{"ops@example.com"}})
	if p != nil {
		t.Fatalf("want nil payload, got %+v", p)
	}
}

func TestBuild_EmptyCycleNoPayload(t *testing.T) {
	if p := Build(domain.CycleResult{}, Params{}); p != nil {
		t.Fatalf("want nil payload for empty cycle, got %+v", p)
	}
}

func TestBuild_OneLinePerDownHost(t *testing.T) {
	res := result(
		downV("10.0.0.1", "A", 3),
		upV("10.0.0.2", "B"),
		downV("10.0.0.3", "C", 3),
	)
	p := Build(res, Params{
		Recipients: []string{"ops@example.com", "oncall@example.com"},
		Delay:      time.Second,
	})
	if p == nil {
		t.Fatal("want payload")
	}
	if len(p.BodyLines) != 2 {
		t.Fatalf("want 2 body lines, got %d: %v", len(p.BodyLines), p.BodyLines)
	}
	if !strings.Contains(p.BodyLines[0], "A (10.0.0.1)") || !strings.Contains(p.BodyLines[1], "C (10.0.0.3)") {
		t.Fatalf("lines wrong or out of order: %v", p.BodyLines)
	}
	if !strings.Contains(p.BodyLines[0], "after 3 attempts") {
		t.Fatalf("missing attempt context: %q", p.BodyLines[0])
	}
	if len(p.Recipients) != 2 {
		t.Fatalf("recipients wrong: %v", p.Recipients)
	}
	if p.Subject != DefaultSubject {
		t.Fatalf("want default subject, got %q", p.Subject)
	}
	if p.Timestamp != res.FinishedAt.Format(time.RFC3339) {
		t.Fatalf("timestamp wrong: %q", p.Timestamp)
	}
}

func TestBuild_MixedScenario(t *testing.T) {
	// A always fails (3 attempts), B answers immediately.
	res := result(downV("10.0.0.1", "A", 3), upV("10.0.0.2", "B"))
	p := Build(res, Params{Recipients: []string{"ops@example.com"}, Delay: time.Second})
	if p == nil || len(p.BodyLines) != 1 {
		t.Fatalf("want exactly one body line for A, got %+v", p)
	}
	if !strings.Contains(p.BodyLines[0], "10.0.0.1") {
		t.Fatalf("line should name A's address: %q", p.BodyLines[0])
	}
}

func TestBuild_DedupesRecipients(t *testing.T) {
	p := Build(result(downV("10.0.0.1", "", 1)), Params{
		Recipients: []string{"ops@example.com", "ops@example.com", "oncall@example.com"},
	})
	if p == nil {
		t.Fatal("want payload")
	}
	if len(p.Recipients) != 2 || p.Recipients[0] != "ops@example.com" || p.Recipients[1] != "oncall@example.com" {
		t.Fatalf("dedupe wrong: %v", p.Recipients)
	}
}

func TestBuild_CustomSubject(t *testing.T) {
	p := Build(result(downV("10.0.0.1", "", 1)), Params{Subject: "core network alert"})
	if p == nil || p.Subject != "core network alert" {
		t.Fatalf("subject not honored: %+v", p)
	}
}
