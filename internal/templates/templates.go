// Package templates zawiera szablony HTML i pliki statyczne wbudowane w binarkę.
package templates

import "embed"

// FS zawiera szablony stron
//
//go:embed *.html catalog/*.html auth/*.html
var FS embed.FS

// Static zawiera pliki CSS
//
//go:embed static
var Static embed.FS
