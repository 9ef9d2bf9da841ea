package reveal

import "github.com/dmitrijs2005/giftbox/internal/gift"

// Step is one content stage of a reveal.
type Step string

const (
	StepPhoto      Step = "photo"
	StepLetter     Step = "letter"
	StepVoice      Step = "voice"
	StepCompletion Step = "completion"
)

// BuildStepPlan returns [photo?] letter [voice?] completion.
func BuildStepPlan(g *gift.Gift) []Step {
	plan := make([]Step, 0, 4)
	if g.HasPhotos() {
		plan = append(plan, StepPhoto)
	}
	plan = append(plan, StepLetter)
	if g.HasVoice() {
		plan = append(plan, StepVoice)
	}
	return append(plan, StepCompletion)
}

// Label is the indicator title of a step.
func (s Step) Label() string {
	switch s {
	case StepPhoto:
		return "Photo"
	case StepLetter:
		return "Letter"
	case StepVoice:
		return "Voice"
	case StepCompletion:
		return "Done"
	default:
		return string(s)
	}
}

// Phase is the session position.
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseNotFound  Phase = "not_found"
	PhaseClosed    Phase = "closed"
	PhaseOpened    Phase = "opened"
	PhaseCompleted Phase = "completed"
)
