package assessment

import (
	"reflect"
	"strings"
	"testing"
)

func TestRecommendations_DASS21(t *testing.T) {
	res := mustScore(t, NewDefaultRegistry(), DASS21, fill(21, 0))
	recs := Recommendations(res)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	wantScales := []string{ScaleDepression, ScaleAnxiety, ScaleStress}
	for i, r := range recs {
		if r.Scale != wantScales[i] || r.Severity != "Normal" || r.Text == "" {
			t.Errorf("unexpected recommendation %+v", r)
		}
	}
}

func TestRecommendations_PCL5(t *testing.T) {
	res := mustScore(t, NewDefaultRegistry(), PCL5, fill(20, 4))
	recs := Recommendations(res)
	if len(recs) != 1 || recs[0].Scale != "ptsd" {
		t.Fatalf("expected one ptsd recommendation, got %+v", recs)
	}
	if !strings.Contains(recs[0].Text, "trauma") {
		t.Errorf("unexpected text %q", recs[0].Text)
	}
}

func TestRecommendations_None(t *testing.T) {
	if recs := Recommendations(nil); recs != nil {
		t.Errorf("expected nil for nil result, got %v", recs)
	}
	res := mustScore(t, NewDefaultRegistry(), GAD7, fill(7, 3))
	if recs := Recommendations(res); recs != nil {
		t.Errorf("expected no guidance for GAD-7, got %v", recs)
	}
	unknown := &ScoreResult{AssessmentID: DASS21, Depression: &SubscaleScore{Score: 99, Severity: UnknownSeverity}}
	if recs := Recommendations(unknown); len(recs) != 0 {
		t.Errorf("expected no guidance for unbanded subscale, got %v", recs)
	}
}

func TestSuggestInstruments(t *testing.T) {
	tests := []struct {
		name      string
		diagnoses []string
		want      []string
	}{
		{"depression", []string{"Major Depressive Disorder"}, []string{DASS21}},
		{"ptsd before stress", []string{"Post-Traumatic Stress Disorder"}, []string{PCL5}},
		{"dedupe", []string{"Generalized Anxiety Disorder", "Panic Disorder", "PTSD"}, []string{DASS21, PCL5}},
		{"order of first mention", []string{"ptsd", "depression"}, []string{PCL5, DASS21}},
		{"no match", []string{"Insomnia"}, nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestInstruments(tt.diagnoses)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRenderQuestion(t *testing.T) {
	inst := newPCL5()
	q := RenderQuestion(inst, 0)
	if !strings.HasPrefix(q.Question, "Question 1/20: ") {
		t.Errorf("unexpected question %q", q.Question)
	}
	if len(q.Options) != 5 || q.Options[0].ID != "0" || q.Options[4].ID != "4" {
		t.Errorf("unexpected options %+v", q.Options)
	}

	last := RenderQuestion(inst, 19)
	if !strings.HasPrefix(last.Question, "Question 20/20: ") {
		t.Errorf("unexpected last question %q", last.Question)
	}
}

func TestRenderQuestion_Completed(t *testing.T) {
	q := RenderQuestion(newGAD7(), 7)
	if q.Question != "Assessment completed" {
		t.Errorf("expected completion marker, got %q", q.Question)
	}
	if q.Options == nil || len(q.Options) != 0 {
		t.Errorf("expected empty non-nil options, got %v", q.Options)
	}
}
