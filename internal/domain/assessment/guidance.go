package assessment

import (
	"fmt"
	"strconv"
	"strings"
)

// Recommendation is patient-facing guidance for one scored scale.
type Recommendation struct {
	Scale    string `json:"scale"`
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

var dassGuidance = map[string]map[string]string{
	ScaleDepression: {
		"Normal":           "Your depression symptoms appear to be within normal range. Continue practicing self-care and maintaining healthy habits. If you notice any changes in your mood or symptoms, consider speaking with a healthcare provider.",
		"Mild":             "You're experiencing mild depression symptoms. Consider implementing self-care strategies and monitoring your symptoms. If they persist or worsen, it may be helpful to speak with a healthcare provider.",
		"Moderate":         "Your responses suggest moderate depression symptoms. It's recommended that you speak with a healthcare provider to discuss your symptoms and explore appropriate support options.",
		"Severe":           "Your responses indicate severe depression symptoms. It's strongly recommended that you speak with a healthcare provider as soon as possible to discuss your symptoms and treatment options.",
		"Extremely Severe": "Your responses suggest extremely severe depression symptoms. Please seek immediate support from a healthcare provider or mental health professional. If you're having thoughts of self-harm, please contact emergency services or a crisis helpline immediately.",
	},
	ScaleAnxiety: {
		"Normal":           "Your anxiety symptoms appear to be within normal range. Continue practicing stress management techniques and maintaining healthy habits. If you notice any changes in your symptoms, consider speaking with a healthcare provider.",
		"Mild":             "You're experiencing mild anxiety symptoms. Consider implementing stress management techniques and monitoring your symptoms. If they persist or worsen, it may be helpful to speak with a healthcare provider.",
		"Moderate":         "Your responses suggest moderate anxiety symptoms. It's recommended that you speak with a healthcare provider to discuss your symptoms and explore appropriate support options.",
		"Severe":           "Your responses indicate severe anxiety symptoms. It's strongly recommended that you speak with a healthcare provider as soon as possible to discuss your symptoms and treatment options.",
		"Extremely Severe": "Your responses suggest extremely severe anxiety symptoms. Please seek immediate support from a healthcare provider or mental health professional. If you're experiencing a panic attack or severe distress, please contact emergency services or a crisis helpline immediately.",
	},
	ScaleStress: {
		"Normal":           "Your stress levels appear to be within normal range. Continue practicing stress management techniques and maintaining healthy habits. If you notice any changes in your stress levels, consider speaking with a healthcare provider.",
		"Mild":             "You're experiencing mild stress. Consider implementing stress management techniques and monitoring your stress levels. If they persist or worsen, it may be helpful to speak with a healthcare provider.",
		"Moderate":         "Your responses suggest moderate stress levels. It's recommended that you speak with a healthcare provider to discuss your stress management strategies and explore appropriate support options.",
		"Severe":           "Your responses indicate severe stress levels. It's strongly recommended that you speak with a healthcare provider as soon as possible to discuss your symptoms and treatment options.",
		"Extremely Severe": "Your responses suggest extremely severe stress levels. Please seek immediate support from a healthcare provider or mental health professional. If you're experiencing severe distress, please contact emergency services or a crisis helpline immediately.",
	},
}

var pcl5Guidance = map[string]string{
	PCL5BelowThreshold: "Your responses suggest that you are below the threshold for PTSD. However, if you're experiencing distress related to a traumatic event, speaking with a mental health professional can still be beneficial.",
	PCL5ProbablePTSD:   "Your responses suggest you may be experiencing significant PTSD symptoms. It's strongly recommended that you speak with a mental health professional specializing in trauma for proper evaluation and support.",
}

// Recommendations returns guidance for a scored result. Instruments without
// curated guidance yield nil.
func Recommendations(res *ScoreResult) []Recommendation {
	if res == nil {
		return nil
	}
	switch res.AssessmentID {
	case DASS21:
		var out []Recommendation
		for _, s := range []struct {
			key   string
			score *SubscaleScore
		}{
			{ScaleDepression, res.Depression},
			{ScaleAnxiety, res.Anxiety},
			{ScaleStress, res.Stress},
		} {
			if s.score == nil {
				continue
			}
			if text, ok := dassGuidance[s.key][s.score.Severity]; ok {
				out = append(out, Recommendation{Scale: s.key, Severity: s.score.Severity, Text: text})
			}
		}
		return out
	case PCL5:
		if text, ok := pcl5Guidance[res.Severity]; ok {
			return []Recommendation{{Scale: "ptsd", Severity: res.Severity, Text: text}}
		}
	}
	return nil
}

// suggestionRules maps diagnosis keywords to the instrument that confirms them.
// Rules are checked in order.
var suggestionRules = []struct {
	keyword    string
	instrument string
}{
	{"major depressive disorder", DASS21},
	{"persistent depressive disorder", DASS21},
	{"generalized anxiety disorder", DASS21},
	{"panic disorder", DASS21},
	{"depression", DASS21},
	{"anxiety", DASS21},
	{"stress", DASS21},
	{"posttraumatic stress disorder", PCL5},
	{"post-traumatic stress disorder", PCL5},
	{"ptsd", PCL5},
}

// SuggestInstruments returns the instruments that should follow the given
// preliminary diagnoses, de-duplicated and in first-suggested order.
func SuggestInstruments(diagnoses []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, d := range diagnoses {
		name := strings.ToLower(d)
		// PTSD names contain "stress", so trauma keywords take precedence.
		id := ""
		for _, rule := range suggestionRules {
			if rule.instrument == PCL5 && strings.Contains(name, rule.keyword) {
				id = PCL5
				break
			}
		}
		if id == "" {
			for _, rule := range suggestionRules {
				if strings.Contains(name, rule.keyword) {
					id = rule.instrument
					break
				}
			}
		}
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Option is a selectable answer.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// RenderedQuestion is one question prepared for display.
type RenderedQuestion struct {
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// RenderQuestion formats question index of inst as "Question i/N: text". An
// index past the end yields the completion marker and no options.
func RenderQuestion(inst *Instrument, index int) RenderedQuestion {
	if index < 0 || index >= len(inst.Questions) {
		return RenderedQuestion{Question: "Assessment completed", Options: []Option{}}
	}
	opts := make([]Option, len(inst.Options))
	for i, text := range inst.Options {
		opts[i] = Option{ID: strconv.Itoa(inst.MinResponse + i), Text: text}
	}
	return RenderedQuestion{
		Question: fmt.Sprintf("Question %d/%d: %s", index+1, len(inst.Questions), inst.Questions[index]),
		Options:  opts,
	}
}
