package challengeview

import "wagerhub/models"

// View is the derived, viewer-relative projection of a challenge that list
// endpoints attach to each row.
type View struct {
	Status      string   `json:"status"`
	StatusLabel string   `json:"statusLabel"`
	Outcome     string   `json:"outcome"`
	Actions     []Action `json:"actions"`
	CreatedAgo  string   `json:"createdAgo"`
	Remaining   string   `json:"remaining"`
}

// BuildView derives the full view model for one challenge row. Pass the same
// now to every row of a listing so elapsed and remaining labels are
// consistent within one response.
func BuildView(ch *models.Challenge, viewer Viewer, now Instant) View {
	v := View{
		Outcome: ResolveOutcome(ch, viewer).String(),
		Actions: PermittedActions(ch, viewer).List(),
	}
	if ch == nil {
		return v
	}
	v.Status = ch.Status
	v.StatusLabel = StatusLabel(ch.Status)

	if created, ok := NormalizeTimestamp(ch.CreatedAt); ok {
		v.CreatedAgo = FormatElapsed(created, now)
	} else {
		v.CreatedAgo = InvalidDateLabel
	}

	if ch.Deadline == nil {
		v.Remaining = NoDeadlineLabel
	} else if deadline, ok := NormalizeTimestamp(ch.Deadline); ok {
		v.Remaining = FormatRemaining(deadline, now)
	} else {
		v.Remaining = InvalidDeadlineLabel
	}
	return v
}
