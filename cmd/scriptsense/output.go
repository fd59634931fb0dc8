package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"scriptsense/internal/complete"
)

type itemJSON struct {
	Text    string `json:"text"`
	Display string `json:"display"`
	Kind    string `json:"kind"`
	Detail  string `json:"detail,omitempty"`
	Summary string `json:"summary,omitempty"`
	Score   int    `json:"score,omitempty"`
}

var (
	kindColor   = color.New(color.FgCyan)
	detailColor = color.New(color.Faint)
)

func (a *app) printItems(out io.Writer, items []complete.Item) error {
	if a.format == "json" {
		payload := make([]itemJSON, 0, len(items))
		for _, it := range items {
			payload = append(payload, itemJSON{
				Text:    it.Text,
				Display: it.Display,
				Kind:    it.Kind.String(),
				Detail:  it.Detail,
				Summary: it.Summary,
				Score:   it.Score,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, it := range items {
		detail := it.Detail
		if it.Summary != "" {
			detail = fmt.Sprintf("%s  [%s]", detail, it.Summary)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", kindColor.Sprint(it.Kind), it.Display, detailColor.Sprint(detail)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
