package flows

// ProductFlow handles product feedback: ideas, improvements and bugs filed
// against the product project.
type ProductFlow struct {
	baseFlow
}

// NewProductFlow builds the product domain flow for the given tracker project.
func NewProductFlow(projectKey string) *ProductFlow {
	return &ProductFlow{baseFlow{
		title: "Product Feedback",
		spec: flowSpec{
			domain:      "product",
			staticLabel: "product",
			projectKey:  projectKey,
			commands:    []string{"/product"},
			issueTypes: map[string]string{
				"idea":        "Story",
				"improvement": "Improvement",
				"bug":         "Bug",
			},
			fields: []formField{
				{id: "sl_title", label: "Title"},
				{id: "ml_description", label: "Description"},
				{id: "ml_reason", label: "Why it matters", optional: true},
				{id: "ss_area", label: "Product Area", optional: true,
					options: []string{"Onboarding", "Search", "Reporting", "Integrations"}},
				{id: "ms_components", label: "Components", optional: true,
					options: []string{"Web", "Mobile", "API", "Backoffice"}},
			},
			template: []templateField{
				{key: "description", heading: "Description"},
				{key: "reason", heading: "Reason"},
			},
		},
	}}
}
