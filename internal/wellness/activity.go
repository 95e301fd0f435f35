package wellness

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownActivity = errors.New("unknown activity type")

// Activity is the per-type completion contract. Each catalog type has one
// variant; the server dispatches on the variant instead of string-matching
// the type everywhere.
type Activity interface {
	Kind() ActivityType
	// Timed activities run under the session's timer controller; the rest
	// complete directly from a submitted form.
	Timed() bool
	// ValidatePayload rejects payloads missing the fields this kind needs.
	ValidatePayload(p Payload) error
}

// ActivityFor resolves the variant for a catalog type.
func ActivityFor(t ActivityType) (Activity, error) {
	switch t {
	case ActivityBreathing:
		return breathingActivity{}, nil
	case ActivityGratitude:
		return gratitudeActivity{}, nil
	case ActivityReframe:
		return reframeActivity{}, nil
	case ActivityMindfulWalk:
		return mindfulWalkActivity{}, nil
	case ActivityKindAct:
		return kindActActivity{}, nil
	case ActivityMiniMindful:
		return miniMindfulActivity{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivity, t)
	}
}

// TimedPayload is what the timer controller records on natural expiry.
func TimedPayload() Payload {
	return Payload{Completed: true}
}

type breathingActivity struct{}

func (breathingActivity) Kind() ActivityType { return ActivityBreathing }
func (breathingActivity) Timed() bool        { return true }
func (breathingActivity) ValidatePayload(p Payload) error {
	if !p.Completed {
		return errors.New("breathing session was not completed")
	}
	return nil
}

type miniMindfulActivity struct{}

func (miniMindfulActivity) Kind() ActivityType { return ActivityMiniMindful }
func (miniMindfulActivity) Timed() bool        { return true }
func (miniMindfulActivity) ValidatePayload(p Payload) error {
	if !p.Completed {
		return errors.New("mindfulness session was not completed")
	}
	return nil
}

type gratitudeActivity struct{}

func (gratitudeActivity) Kind() ActivityType { return ActivityGratitude }
func (gratitudeActivity) Timed() bool        { return false }
func (gratitudeActivity) ValidatePayload(p Payload) error {
	filled := 0
	for _, entry := range p.Gratitude {
		if strings.TrimSpace(entry) != "" {
			filled++
		}
	}
	if filled < 3 {
		return errors.New("three gratitude entries are required")
	}
	return nil
}

type reframeActivity struct{}

func (reframeActivity) Kind() ActivityType { return ActivityReframe }
func (reframeActivity) Timed() bool        { return false }
func (reframeActivity) ValidatePayload(p Payload) error {
	if strings.TrimSpace(p.Negative) == "" || strings.TrimSpace(p.Balanced) == "" {
		return errors.New("at least the negative thought and its balanced version are required")
	}
	return nil
}

type mindfulWalkActivity struct{}

func (mindfulWalkActivity) Kind() ActivityType { return ActivityMindfulWalk }
func (mindfulWalkActivity) Timed() bool        { return false }
func (mindfulWalkActivity) ValidatePayload(p Payload) error {
	if !p.Completed {
		return errors.New("walk was not confirmed as completed")
	}
	return nil
}

type kindActActivity struct{}

func (kindActActivity) Kind() ActivityType { return ActivityKindAct }
func (kindActActivity) Timed() bool        { return false }
func (kindActActivity) ValidatePayload(p Payload) error {
	if strings.TrimSpace(p.Act) == "" {
		return errors.New("a short description of the kind act is required")
	}
	return nil
}
