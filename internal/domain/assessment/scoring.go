package assessment

// All scorers are pure: they read the instrument's static tables and the
// response vector and allocate a fresh result.

func scoreDASS21(inst *Instrument, responses []int) (*ScoreResult, error) {
	if err := checkLength(inst.ID, len(inst.Questions), responses); err != nil {
		return nil, err
	}

	res := &ScoreResult{AssessmentID: inst.ID}
	worst, worstRank := "", -1
	for _, sc := range inst.Subscales {
		raw := sumAt(responses, sc.Items)
		scaled := raw * multiplier(sc)
		score := &SubscaleScore{
			Score:    scaled,
			Severity: sc.Severity.Lookup(scaled),
		}
		switch sc.Key {
		case ScaleDepression:
			res.Depression = score
		case ScaleAnxiety:
			res.Anxiety = score
		case ScaleStress:
			res.Stress = score
		}
		// The total is the unscaled raw sum, not the sum of scaled subscales.
		res.TotalScore += raw

		if r := sc.Severity.Rank(score.Severity); r > worstRank {
			worst, worstRank = score.Severity, r
		}
	}
	if worstRank < 0 {
		worst = UnknownSeverity
	}
	res.Severity = worst
	return res, nil
}

func scoreGAD7(inst *Instrument, responses []int) (*ScoreResult, error) {
	if err := checkLength(inst.ID, len(inst.Questions), responses); err != nil {
		return nil, err
	}
	total := sum(responses)
	return &ScoreResult{
		AssessmentID: inst.ID,
		TotalScore:   total,
		Severity:     inst.Severity.Lookup(total),
	}, nil
}

// phq9SelfHarmItem is the suicidal-ideation question.
const phq9SelfHarmItem = 8

func scorePHQ9(inst *Instrument, responses []int) (*ScoreResult, error) {
	if err := checkLength(inst.ID, len(inst.Questions), responses); err != nil {
		return nil, err
	}
	total := sum(responses)
	risk := responses[phq9SelfHarmItem] > 0
	return &ScoreResult{
		AssessmentID: inst.ID,
		TotalScore:   total,
		Severity:     inst.Severity.Lookup(total),
		SuicideRisk:  &risk,
	}, nil
}

func scorePCL5(inst *Instrument, responses []int) (*ScoreResult, error) {
	if err := checkLength(inst.ID, len(inst.Questions), responses); err != nil {
		return nil, err
	}
	total := sum(responses)
	subscales := make(map[string]int, len(inst.Subscales))
	for _, sc := range inst.Subscales {
		subscales[sc.Key] = sumAt(responses, sc.Items) * multiplier(sc)
	}
	return &ScoreResult{
		AssessmentID: inst.ID,
		TotalScore:   total,
		Severity:     inst.Severity.Lookup(total),
		Subscales:    subscales,
	}, nil
}

func multiplier(sc Subscale) int {
	if sc.Multiplier == 0 {
		return 1
	}
	return sc.Multiplier
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func sumAt(values []int, indices []int) int {
	total := 0
	for _, i := range indices {
		total += values[i]
	}
	return total
}
