package bootstrap

const (
	LogMsgFormCreated   = "bootstrap form created"
	LogMsgFieldRendered = "bootstrap field rendered"

	LogFieldLayout    = "layout"
	LogFieldForm      = "form"
	LogFieldAttribute = "attribute"
	LogFieldInputID   = "inputId"
	LogFieldTemplate  = "template"
	LogFieldHasError  = "hasError"
)
