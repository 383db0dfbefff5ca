package bootstrap

const (
	LogMsgFormRendered = "bootstrap renderer form rendered"
	LogMsgWidget       = "bootstrap renderer widget resolved"

	LogFieldOperation = "operationId"
	LogFieldLayout    = "layout"
	LogFieldFields    = "fields"
	LogFieldAttribute = "attribute"
	LogFieldWidget    = "widget"
)
