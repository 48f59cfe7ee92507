package flows

import (
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-bridge/internal/domain"
)

func option(text string) slack.OptionBlockObject {
	return slack.OptionBlockObject{
		Text: slack.NewTextBlockObject(slack.PlainTextType, text, false, false),
	}
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sl_title", "title"},
		{"ml_description", "description"},
		{"ms_components", "components"},
		{"ss_urgency", "urgency"},
		{"noprefix", "noprefix"},
		{"ml_with_underscores", "with_underscores"},
	}
	for _, tt := range tests {
		if got := FieldName(tt.in); got != tt.want {
			t.Errorf("FieldName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestViewStateToSubmission(t *testing.T) {
	state := &slack.ViewState{
		Values: map[string]map[string]slack.BlockAction{
			"sl_title": {
				"sl_title": {Type: "plain_text_input", Value: "Login broken"},
			},
			"ml_description": {
				"ml_description": {Type: "plain_text_input", Value: "cannot sign in"},
			},
			"ss_urgency": {
				"ss_urgency": {Type: "static_select", SelectedOption: option("High")},
			},
			"ms_components": {
				"ms_components": {
					Type:            "multi_static_select",
					SelectedOptions: []slack.OptionBlockObject{option("API"), option("Docs")},
				},
			},
		},
	}

	sub, err := ViewStateToSubmission(state)
	require.NoError(t, err)

	assert.Equal(t, "Login broken", sub.Text("title"))
	assert.Equal(t, "cannot sign in", sub.Text("description"))
	assert.Equal(t, "High", sub.Text("urgency"))
	assert.Equal(t, []string{"API", "Docs"}, sub["components"].Items)
}

func TestViewStateToSubmissionUnselectedSingleSelect(t *testing.T) {
	state := &slack.ViewState{
		Values: map[string]map[string]slack.BlockAction{
			"ss_urgency": {
				"ss_urgency": {Type: "static_select"},
			},
		},
	}

	sub, err := ViewStateToSubmission(state)
	require.NoError(t, err)

	// The key must exist even though the value is unset.
	v, ok := sub["urgency"]
	require.True(t, ok)
	assert.False(t, v.IsSet())
	assert.False(t, sub.Has("urgency"))
}

func TestViewStateToSubmissionEmptyMultiSelect(t *testing.T) {
	state := &slack.ViewState{
		Values: map[string]map[string]slack.BlockAction{
			"ms_components": {
				"ms_components": {Type: "multi_static_select"},
			},
		},
	}

	sub, err := ViewStateToSubmission(state)
	require.NoError(t, err)

	v, ok := sub["components"]
	require.True(t, ok)
	assert.True(t, v.IsSet(), "empty multi-select must be a value, not unset")
	assert.Equal(t, domain.FieldList, v.Kind)
	assert.Empty(t, v.Items)
}

func TestViewStateToSubmissionUnknownTypeIsFatal(t *testing.T) {
	state := &slack.ViewState{
		Values: map[string]map[string]slack.BlockAction{
			"sl_title": {
				"sl_title": {Type: "plain_text_input", Value: "ok"},
			},
			"dp_due": {
				"dp_due": {Type: "datepicker", Value: "2026-01-01"},
			},
		},
	}

	_, err := ViewStateToSubmission(state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datepicker")
}

func TestViewStateToSubmissionNilState(t *testing.T) {
	sub, err := ViewStateToSubmission(nil)
	require.NoError(t, err)
	assert.Empty(t, sub)
}
