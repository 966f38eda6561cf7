package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Varun5711/cinerate/internal/library"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// emit prints v as JSON with --json, otherwise whatever render returns.
func (c *cli) emit(v any, render func() string) error {
	if c.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(c.out, render())
	return err
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

func vote(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func titlesTable(titles []models.Title) string {
	if len(titles) == 0 {
		return "No titles."
	}
	rows := make([][]string, 0, len(titles))
	for _, t := range titles {
		rows = append(rows, []string{t.IDString(), t.Name, t.Year, vote(t.VoteAverage)})
	}
	return renderTable([]string{"ID", "TITLE", "YEAR", "SCORE"}, rows)
}

func entriesTable(entries []library.Entry, withVotes bool) string {
	if len(entries) == 0 {
		return "Nothing here yet."
	}
	headers := []string{"KIND", "ID", "TITLE", "YEAR"}
	if withVotes {
		headers = append(headers, "MY VOTE", "COMMENT")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{string(e.Kind), e.SubjectID, e.Title, e.Year}
		if withVotes {
			row = append(row, vote(e.Vote), e.Comment)
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows)
}
