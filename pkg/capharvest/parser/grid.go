// Package parser recovers a relational table from the loosely
// structured grid of a monthly capacity report sheet.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

// ErrCorruptWorkbook indicates the file could not be decoded as a
// workbook in either supported format.
var ErrCorruptWorkbook = errors.New("corrupt workbook")

// ErrNoTable indicates the sheet holds too little content to be a
// capacity table.
var ErrNoTable = errors.New("no table-like region in sheet")

// Magic bytes of an OLE compound file (legacy BIFF .xls).
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// LoadGrid reads the first sheet of a report file into a raw grid.
// Published files carry a .xls name but drift between true BIFF and
// ZIP workbook content across vintages, so the format is sniffed
// from magic bytes rather than the extension.
func LoadGrid(path string) (grid models.Grid, err error) {
	// The BIFF decoder panics on some corrupt OLE streams; map that
	// to a structural failure instead of taking down the run.
	defer func() {
		if r := recover(); r != nil {
			grid = nil
			err = fmt.Errorf("%w: %v", ErrCorruptWorkbook, r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if bytes.HasPrefix(data, oleMagic) {
		rows, err = readBIFF(data)
	} else {
		rows, err = readZip(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptWorkbook, err)
	}

	grid = models.NewGrid(rows)
	if !hasTable(grid, defaultDensityParams()) {
		return nil, ErrNoTable
	}
	return grid, nil
}

func readBIFF(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cols := make([]string, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cols[j] = row.Col(j)
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

func readZip(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
