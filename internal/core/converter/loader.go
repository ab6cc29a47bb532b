package converter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/vcollos/camara/internal/domain"
)

// ErrUnsupportedFormat is returned for files that are not .csv, .xls or .xlsx.
var ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")

// ErrRowTooWide is returned when a data row has filled cells past the header width.
var ErrRowTooWide = errors.New("linha com mais colunas que o cabeçalho")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SupportedExtension reports whether the file name has an extension the loader accepts.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xls", ".xlsx":
		return true
	}
	return false
}

// LoadTable lê um arquivo da câmara (.csv, .xls ou .xlsx) e devolve a tabela com cabeçalho.
func LoadTable(file io.Reader, filename string) (*domain.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".csv":
		rows, err = loadCSV(file)
	case ".xls", ".xlsx":
		rows, err = loadGenericExcel(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", filename, err)
	}
	return buildTable(rows)
}

// ---------------------- CSV ----------------------

func loadCSV(file io.Reader) ([][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffSeparator(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

// decodeText aceita UTF-8 (com ou sem BOM) e cai para Windows-1252 quando os bytes não são UTF-8 válido.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("erro ao decodificar windows-1252: %w", err)
	}
	return string(decoded), nil
}

// sniffSeparator escolhe entre ';' e ',' contando ocorrências na primeira linha.
func sniffSeparator(text string) rune {
	header, _, _ := strings.Cut(text, "\n")
	if strings.Count(header, ",") > strings.Count(header, ";") {
		return ','
	}
	return ';'
}

// ---------------------- Excel ----------------------

func loadGenericExcel(file io.Reader) ([][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	reader := bytes.NewReader(data)

	// tenta xlsx
	f, err := excelize.OpenReader(reader)
	if err == nil {
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("o arquivo .xlsx não contém planilhas")
		}
		return f.GetRows(sheets[0])
	}

	// tenta xls
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	workbook, err := xls.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("unsupported workbook file format")
	}
	if len(workbook.GetSheets()) == 0 {
		return nil, fmt.Errorf("o arquivo .xls não contém planilhas")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
	}
	var allRows [][]string
	for _, row := range sheet.GetRows() {
		var csvRow []string
		for _, cell := range row.GetCols() {
			csvRow = append(csvRow, cell.GetString())
		}
		allRows = append(allRows, csvRow)
	}
	return allRows, nil
}

// ---------------------- tabela ----------------------

// buildTable usa a primeira linha não vazia como cabeçalho, apara as células e completa linhas curtas.
// Células vazias além do cabeçalho são descartadas; preenchidas são erro.
func buildTable(rows [][]string) (*domain.Table, error) {
	t := &domain.Table{}
	for line, row := range rows {
		if isBlankRow(row) {
			continue
		}
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.TrimSpace(c)
		}
		if t.Columns == nil {
			t.Columns = cells
			continue
		}
		for len(cells) < len(t.Columns) {
			cells = append(cells, "")
		}
		if extra := cells[len(t.Columns):]; !isBlankRow(extra) {
			return nil, fmt.Errorf("%w: linha %d tem %d colunas, o cabeçalho tem %d",
				ErrRowTooWide, line+1, len(cells), len(t.Columns))
		}
		t.Rows = append(t.Rows, cells[:len(t.Columns)])
	}
	if t.Columns == nil {
		return nil, errors.New("arquivo vazio: nenhum cabeçalho encontrado")
	}
	return t, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
