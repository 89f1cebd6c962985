package web

import "embed"

// TemplatesFS embeds the dashboard page and the chart partial.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the chart script and the stylesheet.
//
//go:embed static/*
var StaticFS embed.FS
