package flows

// SupportFlow handles internal support requests: bug reports, task requests
// and questions filed against the support project.
type SupportFlow struct {
	baseFlow
}

// NewSupportFlow builds the support domain flow for the given tracker project.
func NewSupportFlow(projectKey string) *SupportFlow {
	return &SupportFlow{baseFlow{
		title: "Support Request",
		spec: flowSpec{
			domain:      "support",
			staticLabel: "support",
			projectKey:  projectKey,
			commands:    []string{"/support"},
			issueTypes: map[string]string{
				"bug":      "Bug",
				"task":     "Task",
				"question": "Question",
			},
			fields: []formField{
				{id: "sl_title", label: "Title"},
				{id: "ml_description", label: "Description"},
				{id: "ml_currently", label: "What happens currently", optional: true},
				{id: "ml_expected", label: "What you expected", optional: true},
				{id: "ss_urgency", label: "Urgency", optional: true,
					options: []string{"Low", "Medium", "High", "Critical"}},
				{id: "ms_components", label: "Components", optional: true,
					options: []string{"API", "Dashboard", "Billing", "Docs"}},
			},
			template: []templateField{
				{key: "description", heading: "Description"},
				{key: "currently", heading: "Currently"},
				{key: "expected", heading: "Expected"},
			},
		},
	}}
}
