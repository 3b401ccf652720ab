// Package report renders task list summaries to an Excel workbook.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/taskforge/apiserver/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Exporter writes the task list overview sheet using the configured layout.
type Exporter struct {
	cfg Config
}

func NewExporter(cfg Config) *Exporter {
	return &Exporter{cfg: cfg}
}

// WriteTo streams an .xlsx of the given list details to w. Rows are written
// through the stream writer so large exports stay flat in memory.
func (e *Exporter) WriteTo(w io.Writer, lists []domain.TaskListDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.cfg.Sheet
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to start stream writer: %w", err)
	}

	for i, col := range e.cfg.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := sw.SetColWidth(i+1, i+1, col.Width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", []interface{}{
		excelize.Cell{Value: e.cfg.Title, StyleID: titleStyle},
	}); err != nil {
		return err
	}

	header := make([]interface{}, len(e.cfg.Columns))
	for i, col := range e.cfg.Columns {
		header[i] = excelize.Cell{Value: col.Header, StyleID: headerStyle}
	}
	if err := sw.SetRow("A2", header); err != nil {
		return err
	}

	for i, list := range lists {
		row := make([]interface{}, len(e.cfg.Columns))
		for j, col := range e.cfg.Columns {
			row[j] = fieldValue(col.Field, list)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+3, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func fieldValue(field string, list domain.TaskListDetail) interface{} {
	switch field {
	case FieldTitle:
		return list.Title
	case FieldDescription:
		return list.Description
	case FieldCount:
		return list.Count
	case FieldProgress:
		return list.Progress
	case FieldCreated:
		return list.Created.Format(time.RFC3339)
	case FieldUpdated:
		return list.Updated.Format(time.RFC3339)
	}
	return ""
}
