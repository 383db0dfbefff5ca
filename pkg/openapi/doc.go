// Package openapi loads OpenAPI 3 documents and turns an operation's request
// body into a form model. kin-openapi does the parsing; callers only see
// Document, Operation and model.FormModel.
package openapi
