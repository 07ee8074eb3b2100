package models

// AutomationAction is a catalog entry an AutomatedStep node may reference.
// Params lists the parameter names the step's actionParameters are keyed by.
type AutomationAction struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Params      []string `json:"params"`
	Description string   `json:"description,omitempty"`
}
