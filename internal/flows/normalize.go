package flows

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/spec-kit/issue-bridge/internal/domain"
	apperrors "github.com/spec-kit/issue-bridge/pkg/util/errorutil"
)

// Input element types the normalizer understands. Anything else is fatal for
// the whole submission, never recoverable per field.
const (
	elementPlainText   = "plain_text_input"
	elementSelect      = "static_select"
	elementMultiSelect = "multi_static_select"
)

// FieldName strips the type prefix and its underscore from an input id:
// "sl_title" → "title", "ms_components" → "components". Ids without a prefix
// pass through unchanged.
func FieldName(inputID string) string {
	if idx := strings.Index(inputID, "_"); idx >= 0 {
		return inputID[idx+1:]
	}
	return inputID
}

// ViewStateToSubmission flattens modal view state into a Submission record.
// Single-selects with no selection normalize to an unset value whose key is
// still present; multi-selects with no selection normalize to an empty list.
func ViewStateToSubmission(state *slack.ViewState) (domain.Submission, error) {
	sub := domain.Submission{}
	if state == nil {
		return sub, nil
	}
	for blockID, inputs := range state.Values {
		for inputID, action := range inputs {
			name := FieldName(inputID)
			switch string(action.Type) {
			case elementPlainText:
				sub[name] = domain.TextValue(action.Value)
			case elementSelect:
				if action.SelectedOption.Text == nil {
					sub[name] = domain.UnsetValue()
				} else {
					sub[name] = domain.TextValue(action.SelectedOption.Text.Text)
				}
			case elementMultiSelect:
				items := make([]string, 0, len(action.SelectedOptions))
				for _, opt := range action.SelectedOptions {
					if opt.Text != nil {
						items = append(items, opt.Text.Text)
					}
				}
				sub[name] = domain.ListValue(items)
			default:
				return nil, apperrors.NewNormalizationError(blockID, inputID, string(action.Type))
			}
		}
	}
	return sub, nil
}
