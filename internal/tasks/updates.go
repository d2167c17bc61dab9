package tasks

import "fmt"

// ProgressUpdate represents a progress event during a pipeline run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Pipeline phase
	Step    int    // Current step number
	Total   int    // Total steps
	Message string // Human-readable message for display
}

// Pipeline phase enumeration
type Phase int

const (
	Validate Phase = iota
	ExtractNames
	Reconcile
	GenerateCSV
	Persist
)

func (p Phase) String() string {
	switch p {
	case Validate:
		return "validate"
	case ExtractNames:
		return "extract_names"
	case Reconcile:
		return "reconcile"
	case GenerateCSV:
		return "generate_csv"
	case Persist:
		return "persist"
	default:
		return ""
	}
}

func validateUpdate(step, total int, filename string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Validate,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Validating upload (%s)...", filename),
	}
}

func extractUpdate(step, total int, provider string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExtractNames,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Reading lineup with %s vision...", provider),
	}
}

func reconcileUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reconcile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Checking %d artists against the registry...", count),
	}
}

func generateUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GenerateCSV,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Generating CSV (%d rows)...", count),
	}
}

func persistUpdate(step, total int, filename string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Persist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Saving %s...", filename),
	}
}
