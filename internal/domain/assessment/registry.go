package assessment

import (
	"fmt"
)

// Registry dispatches scoring requests to registered instruments. It is
// read-only after construction and safe for concurrent use.
type Registry struct {
	byID   map[string]*Instrument
	order  []string
	strict bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStrictResponses makes Score reject responses outside the instrument's
// [MinResponse, MaxResponse] scale in addition to the length check.
func WithStrictResponses() RegistryOption {
	return func(r *Registry) { r.strict = true }
}

// NewRegistry validates and registers instruments in the given order.
func NewRegistry(instruments []*Instrument, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Instrument, len(instruments))}
	for _, opt := range opts {
		opt(r)
	}
	for _, inst := range instruments {
		if err := validateInstrument(inst); err != nil {
			return nil, err
		}
		if _, dup := r.byID[inst.ID]; dup {
			return nil, fmt.Errorf("duplicate instrument %q", inst.ID)
		}
		r.byID[inst.ID] = inst
		r.order = append(r.order, inst.ID)
	}
	return r, nil
}

// NewDefaultRegistry registers DASS-21, GAD-7, PHQ-9 and PCL-5.
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	r, err := NewRegistry(DefaultInstruments(), opts...)
	if err != nil {
		panic(fmt.Sprintf("built-in instrument catalog is invalid: %v", err))
	}
	return r
}

// Get returns the instrument registered under id.
func (r *Registry) Get(id string) (*Instrument, error) {
	inst, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInstrumentNotFound, id)
	}
	return inst, nil
}

// List returns the metadata of every instrument in registration order.
func (r *Registry) List() []InstrumentMetadata {
	out := make([]InstrumentMetadata, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Metadata())
	}
	return out
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Score looks up the instrument and runs its scorer. Both the not-found and
// the response-count errors are returned unchanged.
func (r *Registry) Score(id string, responses []int) (*ScoreResult, error) {
	inst, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if r.strict {
		if err := checkLength(inst.ID, len(inst.Questions), responses); err != nil {
			return nil, err
		}
		for i, v := range responses {
			if v < inst.MinResponse || v > inst.MaxResponse {
				return nil, &ResponseValueError{
					AssessmentID: inst.ID,
					Index:        i,
					Value:        v,
					Min:          inst.MinResponse,
					Max:          inst.MaxResponse,
				}
			}
		}
	}
	return inst.Score(responses)
}

func validateInstrument(inst *Instrument) error {
	if inst == nil {
		return fmt.Errorf("nil instrument")
	}
	if inst.ID == "" {
		return fmt.Errorf("instrument id is required")
	}
	if len(inst.Questions) == 0 {
		return fmt.Errorf("%s: questions are required", inst.ID)
	}
	if len(inst.Options) == 0 {
		return fmt.Errorf("%s: options are required", inst.ID)
	}
	if inst.scorer == nil {
		return fmt.Errorf("%s: scorer is required", inst.ID)
	}
	if inst.MaxResponse < inst.MinResponse {
		return fmt.Errorf("%s: max response %d below min response %d", inst.ID, inst.MaxResponse, inst.MinResponse)
	}

	if len(inst.Severity) > 0 {
		if err := inst.Severity.Covers(len(inst.Questions)*inst.MinResponse, inst.MaxTotal()); err != nil {
			return fmt.Errorf("%s: %w", inst.ID, err)
		}
	}

	seen := make(map[int]string)
	for _, sc := range inst.Subscales {
		for _, item := range sc.Items {
			if item < 0 || item >= len(inst.Questions) {
				return fmt.Errorf("%s: subscale %s item %d out of range", inst.ID, sc.Key, item)
			}
			if other, ok := seen[item]; ok {
				return fmt.Errorf("%s: item %d is in both %s and %s", inst.ID, item, other, sc.Key)
			}
			seen[item] = sc.Key
		}
		if len(sc.Severity) > 0 {
			m := multiplier(sc)
			lo := len(sc.Items) * inst.MinResponse * m
			hi := len(sc.Items) * inst.MaxResponse * m
			if err := sc.Severity.Covers(lo, hi); err != nil {
				return fmt.Errorf("%s: subscale %s: %w", inst.ID, sc.Key, err)
			}
		}
	}
	return nil
}

// Covers reports whether every score in [lo, hi] is matched by exactly one
// band.
func (t SeverityTable) Covers(lo, hi int) error {
	for score := lo; score <= hi; score++ {
		matches := 0
		for _, b := range t {
			if b.Lower <= score && score <= b.Upper {
				matches++
			}
		}
		switch {
		case matches == 0:
			return fmt.Errorf("severity table has a gap at score %d", score)
		case matches > 1:
			return fmt.Errorf("severity table overlaps at score %d", score)
		}
	}
	return nil
}
