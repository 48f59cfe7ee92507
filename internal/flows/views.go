package flows

import (
	"github.com/slack-go/slack"

	apperrors "github.com/spec-kit/issue-bridge/pkg/util/errorutil"
)

// buildView assembles the modal for one request subtype from the flow's field
// table. Block ids and action ids share the prefixed "{prefix}_{name}" form
// the normalizer strips on the way back in.
func buildView(spec flowSpec, title, requestType string) (slack.ModalViewRequest, error) {
	if _, ok := spec.issueTypes[requestType]; !ok {
		return slack.ModalViewRequest{}, apperrors.NewUnknownVariant(spec.domain + "_" + requestType)
	}

	blocks := make([]slack.Block, 0, len(spec.fields))
	for _, field := range spec.fields {
		label := slack.NewTextBlockObject(slack.PlainTextType, field.label, false, false)
		block := slack.NewInputBlock(field.id, label, nil, buildElement(field))
		block.Optional = field.optional
		blocks = append(blocks, block)
	}

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: spec.domain + "_" + requestType,
		Title:      slack.NewTextBlockObject(slack.PlainTextType, title, false, false),
		Submit:     slack.NewTextBlockObject(slack.PlainTextType, "Submit", false, false),
		Close:      slack.NewTextBlockObject(slack.PlainTextType, "Cancel", false, false),
		Blocks:     slack.Blocks{BlockSet: blocks},
	}, nil
}

func buildElement(field formField) slack.BlockElement {
	placeholder := slack.NewTextBlockObject(slack.PlainTextType, field.label, false, false)
	switch field.prefix() {
	case "ml":
		element := slack.NewPlainTextInputBlockElement(placeholder, field.id)
		element.Multiline = true
		return element
	case "ss":
		return slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, placeholder, field.id, buildOptions(field.options)...)
	case "ms":
		return slack.NewOptionsMultiSelectBlockElement(slack.MultiOptTypeStatic, placeholder, field.id, buildOptions(field.options)...)
	default:
		return slack.NewPlainTextInputBlockElement(placeholder, field.id)
	}
}

func buildOptions(values []string) []*slack.OptionBlockObject {
	options := make([]*slack.OptionBlockObject, 0, len(values))
	for _, value := range values {
		text := slack.NewTextBlockObject(slack.PlainTextType, value, false, false)
		options = append(options, slack.NewOptionBlockObject(value, text, nil))
	}
	return options
}
