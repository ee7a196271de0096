package extract

import "strings"

// Banner is the literal prefix the runner stamps on every step-by-step
// lifecycle line in its print output.
const Banner = "<Waldiez step-by-step>"

// Workflow end reasons derived from free-text markers.
const (
	ReasonCompleted   = "completed"
	ReasonUserStopped = "user_stopped"
	ReasonError       = "error"
	ReasonUnknown     = "unknown"
)

// Lifecycle marker phrases embedded in the runner's print output.
const (
	startMarker       = "Starting workflow"
	finishedMarker    = "Workflow finished"
	userStoppedMarker = "Workflow stopped by user"
	failedMarker      = "Workflow execution failed"
)

// endMarkers in priority order: when several markers appear in one
// line, the first match wins.
var endMarkers = []struct {
	marker string
	reason string
}{
	{finishedMarker, ReasonCompleted},
	{userStoppedMarker, ReasonUserStopped},
	{failedMarker, ReasonError},
}

// IsWorkflowStart reports whether content carries the banner-prefixed
// start marker. The match is case-sensitive: the runner emits the
// marker verbatim and lowercase look-alikes must not trigger lifecycle
// transitions. Partial matches inside longer lines count.
func IsWorkflowStart(content string) bool {
	return strings.Contains(content, Banner+" - "+startMarker)
}

// IsWorkflowEnd reports whether content carries any banner-prefixed end
// marker. Case-sensitive, same as IsWorkflowStart.
func IsWorkflowEnd(content string) bool {
	for _, m := range endMarkers {
		if strings.Contains(content, Banner+" - "+m.marker) {
			return true
		}
	}
	return false
}

// EndReason derives the workflow end reason from free text. Unlike end
// detection, reason matching is case-insensitive and does not require
// the banner: it classifies text already known (or suspected) to
// describe a termination. Returns ReasonUnknown when no marker matches.
func EndReason(content string) string {
	lower := strings.ToLower(content)
	for _, m := range endMarkers {
		if strings.Contains(lower, strings.ToLower(m.marker)) {
			return m.reason
		}
	}
	return ReasonUnknown
}
