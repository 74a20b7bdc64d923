// Package rows implements the fixed tabular schema shared by the spreadsheet
// import and export paths. The mappings are inverse to each other so a full
// export re-imports cleanly.
package rows

import (
	"fmt"
	"strings"
	"time"

	"airdrop-tracker-backend/internal/features/airdrop/models"
)

// DateLayout is the date format of the StartDate and Deadline columns.
const DateLayout = "2006-01-02"

// TaskDelimiter joins task texts in the Tasks column.
const TaskDelimiter = ";"

// Header is the mandatory first row. Import rejects the whole batch unless it
// matches exactly.
var Header = []string{
	"Name",
	"Description",
	"StartDate (YYYY-MM-DD)",
	"Deadline (YYYY-MM-DD)",
	"Tasks (text;text;...)",
	"Status",
}

// ValidateHeader checks the header row cell by cell against Header. Trailing
// empty cells are ignored since the Sheets API pads ranges inconsistently, but
// any named extra column fails the match.
func ValidateHeader(row []interface{}) error {
	if len(row) < len(Header) {
		return fmt.Errorf("header row has %d columns, want %d", len(row), len(Header))
	}
	for i, want := range Header {
		got := cellString(row[i])
		if got != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, got, want)
		}
	}
	for i := len(Header); i < len(row); i++ {
		if got := strings.TrimSpace(cellString(row[i])); got != "" {
			return fmt.Errorf("unexpected header column %d: %q", i+1, got)
		}
	}
	return nil
}

// ParseRow converts one data row to a create payload. A row without a name is
// not ingestable; the returned warning says why and the payload is nil. Bad
// dates degrade to absent values, never to a row failure.
func ParseRow(index int, row []interface{}) (*models.AirdropCreate, string) {
	name := strings.TrimSpace(cell(row, 0))
	if name == "" {
		return nil, fmt.Sprintf("row %d: skipped, Name is empty", index)
	}

	input := &models.AirdropCreate{
		Name:        name,
		Description: strings.TrimSpace(cell(row, 1)),
		StartDate:   parseDate(cell(row, 2)),
		Deadline:    parseDate(cell(row, 3)),
		Tasks:       splitTasks(cell(row, 4)),
	}

	if status, ok := models.ParseStatus(cell(row, 5)); ok {
		// Raw import: the sheet's status is trusted as-is.
		input.Status = &status
	}

	return input, ""
}

// FormatRow is the inverse of ParseRow. Task completion flags are not carried
// through the column schema; a re-imported sheet starts its checklists over.
func FormatRow(a *models.Airdrop) []interface{} {
	return []interface{}{
		a.Name,
		a.Description,
		formatDate(a.StartDate),
		formatDate(a.Deadline),
		joinTasks(a.Tasks),
		string(a.Status),
	}
}

// HeaderRow returns the header as a sheet row.
func HeaderRow() []interface{} {
	row := make([]interface{}, len(Header))
	for i, h := range Header {
		row[i] = h
	}
	return row
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return cellString(row[i])
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func splitTasks(s string) []models.TaskInput {
	var tasks []models.TaskInput
	for _, segment := range strings.Split(s, TaskDelimiter) {
		text := strings.TrimSpace(segment)
		if text == "" {
			continue
		}
		tasks = append(tasks, models.TaskInput{Text: text, Completed: false})
	}
	return tasks
}

func joinTasks(tasks []models.Task) string {
	texts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		texts = append(texts, t.Text)
	}
	return strings.Join(texts, TaskDelimiter)
}
