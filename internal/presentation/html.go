package presentation

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Every user-originated value passes through esc or link; the template itself
// performs no escaping.
var boardTemplate = template.Must(template.New("board").Funcs(template.FuncMap{
	"esc":  EscapeForDisplay,
	"link": safeLink,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Dedication Wall</title>
</head>
<body>
<main class="wall">
{{- if .Empty}}
<p class="empty-state">{{esc .EmptyText}}</p>
{{- else}}
{{- range .Cards}}
<article class="dedication-card" data-position="{{.Position}}" data-id="{{esc .ID}}">
<header><span class="to">To: {{esc .RecipientName}} ({{esc .RecipientClass}})</span></header>
<p class="message">{{esc .Message}}</p>
{{- with .Song}}
<a class="song" href="{{link .URL}}" rel="noopener noreferrer" target="_blank"><span class="song-title">{{esc .Title}}</span> <span class="song-artist">{{esc .Artist}}</span></a>
{{- end}}
<footer><span class="from">From: {{esc .SenderName}} ({{esc .SenderClass}})</span> <time datetime="{{.Timestamp.Format "2006-01-02T15:04:05Z07:00"}}">{{esc .Age}}</time></footer>
</article>
{{- end}}
{{- end}}
</main>
</body>
</html>
`))

// RenderHTML writes board as a standalone HTML page.
func RenderHTML(w io.Writer, board Board) error {
	if err := boardTemplate.Execute(w, board); err != nil {
		return fmt.Errorf("rendering board: %w", err)
	}

	return nil
}

// safeLink keeps only http(s) links so a stored value cannot become a script URL.
func safeLink(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(lower, "https://") && !strings.HasPrefix(lower, "http://") {
		return "#"
	}

	return EscapeForDisplay(strings.TrimSpace(raw))
}
