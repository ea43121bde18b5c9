// Package report renders analysis results.
//
// Three formats implement Writer:
//   - SimpleWriter: the terminal report, coloured with lipgloss when the
//     output is a TTY
//   - JSONWriter: one JSON object per result, or one document per batch
//   - MarkdownWriter: tables, alerts and a mermaid chart of the strength
//     distribution for batch audits
//
// Writers only see model types, which never contain the password.
package report
