// Package bootstrap renders form fields with Bootstrap 3 markup. A Form
// resolves a layout preset (default, horizontal or inline) once; every Field
// it hands out starts from that preset, is configured through chained calls
// (TextInput, Checkbox, Label, Hint, Addon, ...) and is rendered by filling a
// template's {placeholders} with the computed fragments.
//
//	form, _ := bootstrap.New(bootstrap.WithLayout(layout.ModeHorizontal), bootstrap.WithName("Signup"))
//	html := form.Field("email").Input("email", nil).Render()
package bootstrap
