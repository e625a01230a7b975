package utils

import (
	"fmt"
	"sort"
	"time"

	"symphony/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetPullRequests = "Pull Requests"
	SheetCommits      = "Commits"
	SheetSlack        = "Slack"
	SheetInfo         = "Info"

	timeLayout = "2006-01-02 15:04:05"
)

// CreateDashboardWorkbook renders a project's cached dashboard as an xlsx document.
func CreateDashboardWorkbook(project *models.Project, bundle *models.DashboardBundle) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetPullRequests); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	var (
		pulls    []models.PullRequest
		commits  []models.Commit
		messages []models.SlackMessage
	)
	if bundle.PullRequests != nil {
		pulls = bundle.PullRequests.Data
	}
	if bundle.Commits != nil {
		commits = bundle.Commits.Data
	}
	if bundle.SlackMessages != nil {
		messages = bundle.SlackMessages.Data
	}

	if err := writePullRequests(f, pulls); err != nil {
		return nil, err
	}
	if err := writeCommits(f, commits); err != nil {
		return nil, err
	}
	if err := writeMessages(f, messages); err != nil {
		return nil, err
	}
	if err := writeInfo(f, project, bundle, commits); err != nil {
		return nil, err
	}

	index, err := f.GetSheetIndex(SheetPullRequests)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePullRequests(f *excelize.File, pulls []models.PullRequest) error {
	headers := []string{"Number", "Title", "State", "Author", "Created At", "Updated At", "URL"}
	if err := writeHeader(f, SheetPullRequests, headers); err != nil {
		return err
	}

	for i, pr := range pulls {
		row := []any{pr.Number, pr.Title, pr.State, pr.User.Login, formatTime(pr.CreatedAt), formatTime(pr.UpdatedAt), pr.URL}
		if err := writeRow(f, SheetPullRequests, i+2, row); err != nil {
			return err
		}
	}

	if len(pulls) == 0 {
		return nil
	}
	// open pull requests are highlighted
	openRule := []excelize.ConditionalFormatOptions{
		{
			Type:     "cell",
			Criteria: "==",
			Value:    `"open"`,
			Format:   fillStyle(f, "#D9F2D9"),
		},
	}
	return f.SetConditionalFormat(SheetPullRequests, fmt.Sprintf("C2:C%d", len(pulls)+1), openRule)
}

func writeCommits(f *excelize.File, commits []models.Commit) error {
	if _, err := f.NewSheet(SheetCommits); err != nil {
		return err
	}
	headers := []string{"SHA", "Message", "Author", "Date", "URL"}
	if err := writeHeader(f, SheetCommits, headers); err != nil {
		return err
	}

	for i, c := range commits {
		row := []any{c.SHA, c.Message, c.Author.Name, formatTime(c.Date), c.URL}
		if err := writeRow(f, SheetCommits, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeMessages(f *excelize.File, messages []models.SlackMessage) error {
	if _, err := f.NewSheet(SheetSlack); err != nil {
		return err
	}
	headers := []string{"Date", "Author", "Text"}
	if err := writeHeader(f, SheetSlack, headers); err != nil {
		return err
	}

	for i, m := range messages {
		row := []any{formatTime(m.Date), m.User.Name, m.Text}
		if err := writeRow(f, SheetSlack, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetSlack, "C", "C", 80)
}

func writeInfo(f *excelize.File, project *models.Project, bundle *models.DashboardBundle, commits []models.Commit) error {
	if _, err := f.NewSheet(SheetInfo); err != nil {
		return err
	}

	rows := [][]any{
		{"Project", project.Name},
		{"GitHub Repository", project.GithubRepo},
		{"Slack Channel", project.SlackChannel},
		{"Report Generated", time.Now().UTC().Format(timeLayout)},
		{"Pull Requests Updated", snapshotTime(bundle.PullRequests)},
		{"Commits Updated", snapshotTime(bundle.Commits)},
		{"Slack Updated", snapshotTime(bundle.SlackMessages)},
	}
	for i, row := range rows {
		if err := writeRow(f, SheetInfo, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetInfo, "A", "B", 28); err != nil {
		return err
	}

	authors := commitsByAuthor(commits)
	if len(authors) == 0 {
		return nil
	}

	start := len(rows) + 2
	if err := writeRow(f, SheetInfo, start, []any{"Author", "Commits"}); err != nil {
		return err
	}
	for i, a := range authors {
		if err := writeRow(f, SheetInfo, start+1+i, []any{a.name, a.count}); err != nil {
			return err
		}
	}

	first, last := start+1, start+len(authors)
	return f.AddChart(SheetInfo, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       "Commits",
				Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", SheetInfo, first, last),
				Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", SheetInfo, first, last),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Recent Commits by Author"}},
		Dimension: excelize.ChartDimension{
			Width:  480,
			Height: 300,
		},
	})
}

type authorCount struct {
	name  string
	count int
}

func commitsByAuthor(commits []models.Commit) []authorCount {
	counts := make(map[string]int)
	for _, c := range commits {
		counts[c.Author.Name]++
	}
	out := make([]authorCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, authorCount{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := writeRow(f, sheet, 1, row); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 20)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func fillStyle(f *excelize.File, color string) *int {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func snapshotTime[T any](s *models.Snapshot[T]) string {
	if s == nil || s.LastUpdated == nil {
		return "never"
	}
	return formatTime(*s.LastUpdated)
}
