package uischema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-formfield/pkg/model"
)

// metaOrder mirrors the ordering key read from x-formgen extensions.
const metaOrder = "order"

// Decorator applies UI schema overlays to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by store. A nil or empty store makes
// the decorator a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate applies the overlay registered for form.OperationID. Forms without
// an overlay are left untouched.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}
	op, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}
	applyFormConfig(form, op.Form)
	return applyFieldConfig(form, op)
}

func applyFormConfig(form *model.FormModel, cfg FormConfig) {
	form.Metadata = mergeStringMap(form.Metadata, cfg.Metadata)
	form.UIHints = mergeStringMap(form.UIHints, cfg.UIHints)

	if cfg.Title != "" {
		form.Summary = cfg.Title
	}
	form.UIHints = setHint(form.UIHints, model.HintLayout, cfg.Layout)
	form.UIHints = setHint(form.UIHints, model.HintSubmitLabel, cfg.SubmitLabel)
	form.UIHints = setHint(form.UIHints, model.HintLayoutLabel, cfg.Horizontal.Label)
	form.UIHints = setHint(form.UIHints, model.HintLayoutWrapper, cfg.Horizontal.Wrapper)
	form.UIHints = setHint(form.UIHints, model.HintLayoutOffset, cfg.Horizontal.Offset)
}

func applyFieldConfig(form *model.FormModel, op Operation) error {
	refs := make(map[string]*model.Field)
	collectFieldRefs(form.Fields, "", refs)

	orders := make(map[string]int)
	for path, cfg := range op.Fields {
		field, ok := refs[path]
		if !ok {
			return fmt.Errorf("%w: operation %q (file %s) references %q", ErrUnknownField, op.ID, op.Source, cfg.OriginalPath)
		}
		if err := applyField(field, cfg); err != nil {
			return fmt.Errorf("uischema: operation %q field %q: %w", op.ID, cfg.OriginalPath, err)
		}
		if cfg.Order != nil {
			orders[path] = *cfg.Order
		}
	}
	if len(orders) > 0 {
		reorder(form.Fields, "", orders)
	}
	return nil
}

func applyField(field *model.Field, cfg FieldConfig) error {
	field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
	field.UIHints = mergeStringMap(field.UIHints, cfg.UIHints)

	field.UIHints = setHint(field.UIHints, model.HintLabel, cfg.Label)
	field.UIHints = setHint(field.UIHints, model.HintHint, cfg.Hint)
	field.UIHints = setHint(field.UIHints, model.HintPlaceholder, cfg.Placeholder)
	field.UIHints = setHint(field.UIHints, model.HintWidget, cfg.Widget)
	field.UIHints = setHint(field.UIHints, model.HintCSSClass, cfg.CSSClass)
	field.UIHints = setHint(field.UIHints, model.HintPrompt, cfg.Prompt)
	field.UIHints = setHint(field.UIHints, model.HintTemplate, cfg.Template)
	field.UIHints = setHint(field.UIHints, model.HintInputTemplate, cfg.InputTemplate)
	if cfg.Inline != nil {
		field.UIHints = setHint(field.UIHints, model.HintInline, strconv.FormatBool(*cfg.Inline))
	}
	if cfg.HideLabel != nil {
		field.UIHints = setHint(field.UIHints, model.HintHideLabel, strconv.FormatBool(*cfg.HideLabel))
	}
	if cfg.Addon != nil {
		field.UIHints = setHint(field.UIHints, model.HintAddonPrepend, cfg.Addon.Prepend)
		field.UIHints = setHint(field.UIHints, model.HintAddonAppend, cfg.Addon.Append)
		field.UIHints = setHint(field.UIHints, model.HintAddonButton, cfg.Addon.Button)
	}
	if len(cfg.EnumLabels) > 0 {
		payload, err := json.Marshal(cfg.EnumLabels)
		if err != nil {
			return err
		}
		field.UIHints = setHint(field.UIHints, model.HintEnumLabels, string(payload))
	}
	if cfg.Order != nil {
		field.Metadata = setHint(field.Metadata, metaOrder, strconv.Itoa(*cfg.Order))
	}
	return nil
}

// collectFieldRefs indexes fields by dotted path. Array item schemas are
// addressed as "<path>.items".
func collectFieldRefs(fields []model.Field, prefix string, refs map[string]*model.Field) {
	for idx := range fields {
		field := &fields[idx]
		path := joinPath(prefix, field.Name)
		refs[path] = field
		collectFieldRefs(field.Nested, path, refs)
		if field.Items != nil {
			itemPath := path + ".items"
			refs[itemPath] = field.Items
			collectFieldRefs(field.Items.Nested, itemPath, refs)
		}
	}
}

// reorder moves fields with an explicit order ahead of their siblings,
// keeping the relative order of everything else.
func reorder(fields []model.Field, prefix string, orders map[string]int) {
	sort.SliceStable(fields, func(i, j int) bool {
		oi, okI := orders[joinPath(prefix, fields[i].Name)]
		oj, okJ := orders[joinPath(prefix, fields[j].Name)]
		switch {
		case okI && okJ:
			return oi < oj
		default:
			return okI && !okJ
		}
	})
	for idx := range fields {
		if len(fields[idx].Nested) > 0 {
			reorder(fields[idx].Nested, joinPath(prefix, fields[idx].Name), orders)
		}
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func setHint(target map[string]string, key, value string) map[string]string {
	if value == "" {
		return target
	}
	if target == nil {
		target = make(map[string]string)
	}
	target[key] = value
	return target
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
