package bootstrap

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// FormTemplate is the page template rendered for every form.
const FormTemplate = "templates/form.tpl"

// StylesheetAsset is the theme asset key resolved through
// RendererConfig.AssetURL for the form stylesheet.
const StylesheetAsset = "bootstrap.stylesheet"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
