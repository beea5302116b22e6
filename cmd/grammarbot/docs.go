package main

// General API documentation for swaggo. Regenerate the docs package with
// `swag init -g cmd/grammarbot/docs.go -o docs` after changing annotations.
//
// @title           grammarbot API
// @version         1.0
// @description     Grammar correction for student writing: corrected text, labeled error spans, per-student error history and feedback.
//
// @contact.name   grammarbot maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
