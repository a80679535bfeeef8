package watcher

// ChangeAnalysis describes how the server should react to a debounced change.
type ChangeAnalysis struct {
	NeedReload   bool
	KeepCurrent  bool // the file is gone; keep serving the last good document
	ChangedFiles []string
}

// AnalyzeChanges decides whether a change calls for a reload.
func AnalyzeChanges(event ChangeEvent) *ChangeAnalysis {
	analysis := &ChangeAnalysis{
		ChangedFiles: event.Paths,
	}

	switch event.Type {
	case ChangeTypeModified:
		analysis.NeedReload = true
	case ChangeTypeRemoved:
		analysis.KeepCurrent = true
	}

	return analysis
}
