package registry

import "github.com/flowhr/flowhr/pkg/models"

// registerDefaultActions registers the built-in automation catalog. The
// editing UI constrains AutomatedStep.action to these ids; the structural
// validator does not.
func (r *Registry) registerDefaultActions() {
	r.actions = []models.AutomationAction{
		{
			ID:          "send_email",
			Label:       "Send Email",
			Params:      []string{"to", "subject", "body"},
			Description: "Send an email notification to specified recipients",
		},
		{
			ID:          "generate_doc",
			Label:       "Generate Document",
			Params:      []string{"template", "recipient", "format"},
			Description: "Generate a document from a template",
		},
		{
			ID:          "create_ticket",
			Label:       "Create Support Ticket",
			Params:      []string{"title", "description", "priority"},
			Description: "Create a support ticket in the system",
		},
		{
			ID:          "update_database",
			Label:       "Update Database",
			Params:      []string{"table", "field", "value"},
			Description: "Update a database record",
		},
		{
			ID:          "send_notification",
			Label:       "Send Notification",
			Params:      []string{"recipient", "message", "channel"},
			Description: "Send a notification via specified channel",
		},
		{
			ID:          "webhook_call",
			Label:       "Call Webhook",
			Params:      []string{"url", "method", "payload"},
			Description: "Make an HTTP request to an external webhook",
		},
	}
}

// Actions returns a copy of the automation catalog.
func (r *Registry) Actions() []models.AutomationAction {
	actions := make([]models.AutomationAction, len(r.actions))
	copy(actions, r.actions)

	return actions
}

// ActionByID resolves a catalog entry, or nil when the id is unknown.
func (r *Registry) ActionByID(id string) *models.AutomationAction {
	for i := range r.actions {
		if r.actions[i].ID == id {
			return &r.actions[i]
		}
	}

	return nil
}
