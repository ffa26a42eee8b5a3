package web

import "embed"

// FS 模板与静态资源
//
//go:embed templates static
var FS embed.FS
