package converter

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/vcollos/camara/internal/core/ledger"
	"github.com/vcollos/camara/internal/domain"
)

// Supported export encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// exportDateHeader replaces DATA in the written header.
const exportDateHeader = "data"

// sanitizeForCSV remove/controla caracteres de controle e retorna string "limpa"
// - remove tabs, newlines embutidos, converte controles para espaço e trim
func sanitizeForCSV(s string) string {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if r < 32 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WriteTableCSV serializa t com o separador e a codificação informados.
func WriteTableCSV(t *domain.Table, sep rune, enc string) ([]byte, error) {
	var buffer bytes.Buffer
	var out io.Writer = &buffer
	var closer io.Closer
	if strings.EqualFold(enc, EncodingWindows1252) {
		// caracteres fora do cp1252 viram '?' em vez de abortar a exportação
		tw := transform.NewWriter(&buffer, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		out, closer = tw, tw
	}

	writer := csv.NewWriter(out)
	writer.Comma = sep

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if c == domain.ColData {
			c = exportDateHeader
		}
		header[i] = sanitizeForCSV(c)
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = sanitizeForCSV(cell)
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return nil, err
		}
	}
	return buffer.Bytes(), nil
}

// WriteCSV serializa t com o separador e a codificação configurados no serviço.
func (svc *service) WriteCSV(t *domain.Table) ([]byte, error) {
	return WriteTableCSV(t, svc.opts.Separator, svc.opts.Encoding)
}

// ExportCSV renders ledger entries in the import layout.
func (svc *service) ExportCSV(entries []domain.LedgerEntry, extended bool) ([]byte, error) {
	return svc.WriteCSV(ledger.ExportTable(entries, extended))
}

// Charset returns the MIME charset of the CSV output.
func (svc *service) Charset() string {
	if strings.EqualFold(svc.opts.Encoding, EncodingWindows1252) {
		return EncodingWindows1252
	}
	return EncodingUTF8
}
