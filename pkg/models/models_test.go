package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/garnizeh/ideabridge/pkg/models"
)

func TestTimestamp_DecodeVariants(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

	cases := map[string]time.Time{
		`"2025-03-14T09:26:53.589Z"`:      want,
		`"2025-03-14T18:26:53.589+09:00"`: want,
		`1741944413589`:                   want,
		`null`:                            {},
		`""`:                              {},
		`"not a date"`:                    {},
		`{}`:                              {},
	}

	for raw, exp := range cases {
		var ts models.Timestamp
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("unmarshal %s: unexpected error %v", raw, err)
		}
		if !ts.Equal(exp) {
			t.Fatalf("unmarshal %s: got %v want %v", raw, ts.Time, exp)
		}
	}
}

func TestTimestamp_EncodesISO(t *testing.T) {
	ts := models.NewTimestamp(time.Date(2025, 3, 14, 18, 26, 53, 589_123_000, time.FixedZone("KST", 9*3600)))
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-03-14T09:26:53.589Z"` {
		t.Fatalf("unexpected encoding: %s", b)
	}

	b, err = json.Marshal(models.Timestamp{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("expected null for zero timestamp, got %s", b)
	}
}

func TestProblem_DecodesWebClientPayload(t *testing.T) {
	raw := `{"title":"Fix login bug","description":"500 on submit","category":"webDev","urgency":"high","budget":"","timeline":"1 week","ownerId":"1","status":"open","createdAt":"2025-03-14T09:26:53.589Z","updatedAt":"2025-03-14T09:26:53.589Z","id":"1741944413590"}`

	var p models.Problem
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "1741944413590" || p.OwnerID != "1" || p.Status != models.ProblemOpen {
		t.Fatalf("unexpected problem: %#v", p)
	}
	if p.Timeline == nil || *p.Timeline != "1 week" {
		t.Fatalf("expected timeline to be set, got %v", p.Timeline)
	}
	if p.Attachments != nil {
		t.Fatalf("expected absent attachments, got %v", p.Attachments)
	}
}

func TestUser_OmitsAbsentOptionals(t *testing.T) {
	u := models.User{ID: "1", Email: "owner@example.com", Name: "Owner", Role: models.RoleProblemOwner}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"phone", "company", "skills", "bio"} {
		if _, ok := m[k]; ok {
			t.Fatalf("expected %q to be omitted, got %s", k, b)
		}
	}
}

func TestEnumsValid(t *testing.T) {
	if !models.RoleITProfessional.Valid() || models.Role("admin").Valid() {
		t.Fatalf("role validation wrong")
	}
	if !models.UrgencyHigh.Valid() || models.Urgency("").Valid() {
		t.Fatalf("urgency validation wrong")
	}
	if !models.ProblemInProgress.Valid() || models.ProblemStatus("done").Valid() {
		t.Fatalf("problem status validation wrong")
	}
	if !models.SolutionRejected.Valid() || models.SolutionStatus("open").Valid() {
		t.Fatalf("solution status validation wrong")
	}
	if !models.ConnectionCompleted.Valid() || models.ConnectionStatus("pending").Valid() {
		t.Fatalf("connection status validation wrong")
	}
}

func TestOptional(t *testing.T) {
	if models.Optional("") != nil {
		t.Fatalf("expected nil for blank")
	}
	if v := models.Optional("acme"); v == nil || models.Value(v) != "acme" {
		t.Fatalf("expected acme, got %v", v)
	}
	if models.Value(nil) != "" {
		t.Fatalf("expected empty value for nil")
	}
}
