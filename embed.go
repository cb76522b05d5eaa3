package blog

import "embed"

// EmbeddedAssets contains the assets served under /static/: style.css and
// app.js (category tabs, theme toggle, danmaku overlay).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
