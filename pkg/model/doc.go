// Package model defines the field and form descriptions the Bootstrap field
// renderer binds to. A Field carries everything a rendered control needs that
// does not come from the layout: its attribute name, type, label, hint,
// default value, enum choices and validation constraints. Schema extensions
// under the `x-formgen` namespace land in Metadata, while the curated UIHints
// map surfaces field-level directives such as `placeholder`, `hint`, `widget`,
// `addon.prepend`, `inputTemplate` and `hideLabel`.
package model
