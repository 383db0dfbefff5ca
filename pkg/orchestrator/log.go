package orchestrator

const (
	LogMsgDocumentLoaded = "orchestrator document loaded"
	LogMsgFormBuilt      = "orchestrator form built"
	LogMsgThemeSelected  = "orchestrator theme selected"
	LogMsgRendered       = "orchestrator form rendered"

	LogFieldSource    = "source"
	LogFieldOperation = "operationId"
	LogFieldFields    = "fields"
	LogFieldTheme     = "theme"
	LogFieldVariant   = "variant"
	LogFieldRenderer  = "renderer"
	LogFieldBytes     = "bytes"
)
