package assessment

var dass21Questions = []string{
	"I found it hard to wind down",
	"I was aware of dryness of my mouth",
	"I couldn't seem to experience any positive feeling at all",
	"I experienced breathing difficulty",
	"I found it difficult to work up the initiative to do things",
	"I tended to over-react to situations",
	"I experienced trembling (e.g., in the hands)",
	"I felt that I was using a lot of nervous energy",
	"I was worried about situations in which I might panic and make a fool of myself",
	"I felt that I had nothing to look forward to",
	"I found myself getting agitated",
	"I found it difficult to relax",
	"I felt down-hearted and blue",
	"I was intolerant of anything that kept me from getting on with what I was doing",
	"I felt I was close to panic",
	"I was unable to become enthusiastic about anything",
	"I felt I wasn't worth much as a person",
	"I felt that I was rather touchy",
	"I was aware of the action of my heart in the absence of physical exertion",
	"I felt scared without any good reason",
	"I felt that life was meaningless",
}

var dass21Options = []string{
	"Did not apply to me at all",
	"Applied to me to some degree, or some of the time",
	"Applied to me to a considerable degree, or a good part of time",
	"Applied to me very much, or most of the time",
}

var gad7Questions = []string{
	"Feeling nervous, anxious, or on edge",
	"Not being able to stop or control worrying",
	"Worrying too much about different things",
	"Trouble relaxing",
	"Being so restless that it's hard to sit still",
	"Becoming easily annoyed or irritable",
	"Feeling afraid as if something awful might happen",
}

var phq9Questions = []string{
	"Little interest or pleasure in doing things",
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself - or that you are a failure or have let yourself or your family down",
	"Trouble concentrating on things, such as reading the newspaper or watching television",
	"Moving or speaking so slowly that other people could have noticed. Or the opposite - being so fidgety or restless that you have been moving around a lot more than usual",
	"Thoughts that you would be better off dead or of hurting yourself in some way",
}

// frequencyOptions is shared by GAD-7 and PHQ-9.
var frequencyOptions = []string{
	"Not at all",
	"Several days",
	"More than half the days",
	"Nearly every day",
}

var pcl5Questions = []string{
	"Repeated, disturbing, and unwanted memories of the stressful experience?",
	"Repeated, disturbing dreams of the stressful experience?",
	"Suddenly feeling or acting as if the stressful experience were actually happening again (as if you were actually back there reliving it)?",
	"Feeling very upset when something reminded you of the stressful experience?",
	"Having strong physical reactions when something reminded you of the stressful experience (for example, heart pounding, trouble breathing, sweating)?",
	"Avoiding memories, thoughts, or feelings related to the stressful experience?",
	"Avoiding external reminders of the stressful experience (for example, people, places, conversations, activities, objects, or situations)?",
	"Trouble remembering important parts of the stressful experience?",
	"Having strong negative beliefs about yourself, other people, or the world (for example, having thoughts such as: I am bad, there is something seriously wrong with me, no one can be trusted, the world is completely dangerous)?",
	"Blaming yourself or someone else for the stressful experience or what happened after it?",
	"Having strong negative feelings such as fear, horror, anger, guilt, or shame?",
	"Loss of interest in activities that you used to enjoy?",
	"Feeling distant or cut off from other people?",
	"Trouble experiencing positive feelings (for example, being unable to feel happiness or have loving feelings for people close to you)?",
	"Irritable behavior, angry outbursts, or acting aggressively?",
	"Taking too many risks or doing things that could cause you harm?",
	"Being \"superalert\" or watchful or on guard?",
	"Feeling jumpy or easily startled?",
	"Having difficulty concentrating?",
	"Trouble falling or staying asleep?",
}

var pcl5Options = []string{
	"Not at all",
	"A little bit",
	"Moderately",
	"Quite a bit",
	"Extremely",
}

// DASS-21 subscale keys.
const (
	ScaleDepression = "depression"
	ScaleAnxiety    = "anxiety"
	ScaleStress     = "stress"
)

// PCL-5 subscale keys.
const (
	ScaleIntrusion         = "intrusion"
	ScaleAvoidance         = "avoidance"
	ScaleCognitionMood     = "cognition_mood"
	ScaleArousalReactivity = "arousal_reactivity"
)

// PCL-5 band labels.
const (
	PCL5BelowThreshold = "Below threshold for PTSD"
	PCL5ProbablePTSD   = "Probable PTSD - clinical assessment recommended"
)

func dassBands(normal, mild, moderate, severe int) SeverityTable {
	return SeverityTable{
		{Label: "Normal", Lower: 0, Upper: normal},
		{Label: "Mild", Lower: normal + 1, Upper: mild},
		{Label: "Moderate", Lower: mild + 1, Upper: moderate},
		{Label: "Severe", Lower: moderate + 1, Upper: severe},
		{Label: "Extremely Severe", Lower: severe + 1, Upper: 42},
	}
}

// DefaultInstruments builds fresh copies of the four built-in instruments in
// catalog order.
func DefaultInstruments() []*Instrument {
	return []*Instrument{
		newDASS21(),
		newGAD7(),
		newPHQ9(),
		newPCL5(),
	}
}

func newDASS21() *Instrument {
	inst := &Instrument{
		ID:          DASS21,
		Name:        "Depression Anxiety Stress Scales",
		Questions:   append([]string(nil), dass21Questions...),
		Options:     append([]string(nil), dass21Options...),
		Description: "The DASS-21 is a set of three self-report scales designed to measure the emotional states of depression, anxiety and stress.",
		MinResponse: 0,
		MaxResponse: 3,
		Subscales: []Subscale{
			{
				Key:        ScaleDepression,
				Name:       "Depression",
				Items:      []int{2, 4, 9, 12, 15, 16, 20},
				Multiplier: 2,
				Severity:   dassBands(9, 13, 20, 27),
			},
			{
				Key:        ScaleAnxiety,
				Name:       "Anxiety",
				Items:      []int{1, 3, 6, 8, 14, 18, 19},
				Multiplier: 2,
				Severity:   dassBands(7, 9, 14, 19),
			},
			{
				Key:        ScaleStress,
				Name:       "Stress",
				Items:      []int{0, 5, 7, 10, 11, 13, 17},
				Multiplier: 2,
				Severity:   dassBands(14, 18, 25, 33),
			},
		},
	}
	inst.scorer = func(responses []int) (*ScoreResult, error) {
		return scoreDASS21(inst, responses)
	}
	return inst
}

func newGAD7() *Instrument {
	inst := &Instrument{
		ID:          GAD7,
		Name:        "Generalized Anxiety Disorder Assessment",
		Questions:   append([]string(nil), gad7Questions...),
		Options:     append([]string(nil), frequencyOptions...),
		Description: "The GAD-7 is a self-reported questionnaire for screening and severity measuring of generalized anxiety disorder.",
		MinResponse: 0,
		MaxResponse: 3,
		Severity: SeverityTable{
			{Label: "Minimal", Lower: 0, Upper: 4},
			{Label: "Mild", Lower: 5, Upper: 9},
			{Label: "Moderate", Lower: 10, Upper: 14},
			{Label: "Severe", Lower: 15, Upper: 21},
		},
	}
	inst.scorer = func(responses []int) (*ScoreResult, error) {
		return scoreGAD7(inst, responses)
	}
	return inst
}

func newPHQ9() *Instrument {
	inst := &Instrument{
		ID:          PHQ9,
		Name:        "Patient Health Questionnaire",
		Questions:   append([]string(nil), phq9Questions...),
		Options:     append([]string(nil), frequencyOptions...),
		Description: "The PHQ-9 is a multipurpose instrument for screening, diagnosing, monitoring and measuring the severity of depression.",
		MinResponse: 0,
		MaxResponse: 3,
		Severity: SeverityTable{
			{Label: "None-Minimal", Lower: 0, Upper: 4},
			{Label: "Mild", Lower: 5, Upper: 9},
			{Label: "Moderate", Lower: 10, Upper: 14},
			{Label: "Moderately Severe", Lower: 15, Upper: 19},
			{Label: "Severe", Lower: 20, Upper: 27},
		},
	}
	inst.scorer = func(responses []int) (*ScoreResult, error) {
		return scorePHQ9(inst, responses)
	}
	return inst
}

func newPCL5() *Instrument {
	inst := &Instrument{
		ID:          PCL5,
		Name:        "PTSD Checklist for DSM-5",
		Questions:   append([]string(nil), pcl5Questions...),
		Options:     append([]string(nil), pcl5Options...),
		Description: "The PCL-5 is a 20-item self-report measure that screens for the DSM-5 symptoms of posttraumatic stress disorder.",
		MinResponse: 0,
		MaxResponse: 4,
		Severity: SeverityTable{
			{Label: PCL5BelowThreshold, Lower: 0, Upper: 31},
			{Label: PCL5ProbablePTSD, Lower: 32, Upper: 80},
		},
		Subscales: []Subscale{
			{Key: ScaleIntrusion, Name: "Intrusion", Items: itemRange(0, 4), Multiplier: 1},
			{Key: ScaleAvoidance, Name: "Avoidance", Items: itemRange(5, 6), Multiplier: 1},
			{Key: ScaleCognitionMood, Name: "Cognition & Mood", Items: itemRange(7, 13), Multiplier: 1},
			{Key: ScaleArousalReactivity, Name: "Arousal & Reactivity", Items: itemRange(14, 19), Multiplier: 1},
		},
	}
	inst.scorer = func(responses []int) (*ScoreResult, error) {
		return scorePCL5(inst, responses)
	}
	return inst
}

// itemRange returns the inclusive index range [from, to].
func itemRange(from, to int) []int {
	items := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		items = append(items, i)
	}
	return items
}
