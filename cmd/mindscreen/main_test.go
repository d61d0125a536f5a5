package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseResponses(t *testing.T) {
	got, err := parseResponses(" 1, 2,0 ,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 0, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestParseResponses_Empty(t *testing.T) {
	got, err := parseResponses("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no responses, got %v", got)
	}
}

func TestParseResponses_Invalid(t *testing.T) {
	if _, err := parseResponses("1,two,3"); err == nil {
		t.Fatal("expected error for non-integer response")
	}
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreCmd_GAD7(t *testing.T) {
	out, err := runCmd(t, "score", "--id", "GAD-7", "--responses", "1,2,1,0,3,2,1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res struct {
		AssessmentID string `json:"assessment_id"`
		TotalScore   int    `json:"total_score"`
		Severity     string `json:"severity"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	if res.AssessmentID != "GAD-7" || res.TotalScore != 10 || res.Severity != "Moderate" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestScoreCmd_WrongLength(t *testing.T) {
	_, err := runCmd(t, "score", "--id", "PHQ-9", "--responses", "0,0,0")
	if err == nil || !strings.Contains(err.Error(), "requires exactly 9 responses, got 3") {
		t.Fatalf("expected response count error, got %v", err)
	}
}

func TestScoreCmd_OutOfRangeLenient(t *testing.T) {
	if _, err := runCmd(t, "score", "--id", "GAD-7", "--responses", "9,0,0,0,0,0,0"); err == nil {
		t.Fatal("expected strict range error")
	}
	if _, err := runCmd(t, "score", "--id", "GAD-7", "--responses", "9,0,0,0,0,0,0", "--lenient"); err != nil {
		t.Fatalf("unexpected error in lenient mode: %v", err)
	}
}

func TestScoreCmd_UnknownInstrument(t *testing.T) {
	_, err := runCmd(t, "score", "--id", "XYZ", "--responses", "1")
	if err == nil || !strings.Contains(err.Error(), "assessment not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestInstrumentsCmd(t *testing.T) {
	out, err := runCmd(t, "instruments")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var list []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	want := []string{"DASS-21", "GAD-7", "PHQ-9", "PCL-5"}
	if len(list) != len(want) {
		t.Fatalf("expected %d instruments, got %d", len(want), len(list))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, list[i].ID)
		}
	}
}
