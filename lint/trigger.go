package lint

import "fmt"

// Trigger selects when a document is linted.
type Trigger int

const (
	// TriggerOnType lints after edits settle for DebounceDelay.
	TriggerOnType Trigger = iota
	// TriggerOnSave lints when the editor saves the document.
	TriggerOnSave
	// TriggerNever disables linting.
	TriggerNever
)

var triggerNames = map[Trigger]string{
	TriggerOnType: "onType",
	TriggerOnSave: "onSave",
	TriggerNever:  "never",
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Trigger(%d)", int(t))
}

func ParseTrigger(s string) (Trigger, error) {
	for t, name := range triggerNames {
		if name == s {
			return t, nil
		}
	}
	return TriggerOnType, fmt.Errorf("unknown lint trigger %q", s)
}
