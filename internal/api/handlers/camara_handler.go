package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vcollos/camara/internal/api/responses"
	"github.com/vcollos/camara/internal/core/converter"
	"github.com/vcollos/camara/internal/core/ledger"
	"github.com/vcollos/camara/internal/core/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CamaraHandler lida com as requisições da API relacionadas à câmara de compensação.
type CamaraHandler struct {
	service converter.Service
}

// NewCamaraHandler cria um novo handler da câmara de compensação.
func NewCamaraHandler(service converter.Service) *CamaraHandler {
	return &CamaraHandler{
		service: service,
	}
}

// Register monta as rotas do handler no grupo informado.
func (h *CamaraHandler) Register(g *gin.RouterGroup) {
	g.POST("/convert/camara", h.HandleCamaraConversion)
	g.POST("/convert/camara/lote", h.HandleCamaraBatch)
	g.POST("/convert/camara/preview", h.HandleCamaraPreview)
	g.POST("/reports/camara", h.HandleCamaraReports)
}

// fileSummary é a visão JSON de um arquivo convertido.
type fileSummary struct {
	Filename    string             `json:"filename"`
	RunID       string             `json:"run_id"`
	Format      string             `json:"format"`
	Message     string             `json:"message"`
	Records     int                `json:"records"`
	Entries     int                `json:"entries"`
	IRRF        int                `json:"irrf"`
	Warnings    int                `json:"warnings"`
	Critical    int                `json:"critical"`
	Diagnostics ledger.Diagnostics `json:"diagnostics"`
	CSV         []byte             `json:"csv,omitempty"`
}

func summarize(fr *converter.FileResult, withCSV bool) fileSummary {
	res := fr.Result
	s := fileSummary{
		Filename:    fr.Filename,
		RunID:       fr.RunID,
		Format:      string(res.Detection.Format),
		Message:     res.Detection.Message,
		Records:     len(res.Records),
		Entries:     len(res.Entries),
		IRRF:        len(res.Withholding()),
		Warnings:    res.Diagnostics.Count(ledger.SeverityWarning),
		Critical:    res.Diagnostics.Count(ledger.SeverityCritical),
		Diagnostics: res.Diagnostics,
	}
	if withCSV {
		s.CSV = fr.CSV
	}
	return s
}

// openCamaraFile lê o arquivo "camaraFile" do formulário e valida a extensão.
func (h *CamaraHandler) openCamaraFile(c *gin.Context) (*converter.FileResult, bool) {
	fileHeader, err := c.FormFile("camaraFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo da câmara (.csv, .xls, .xlsx) não encontrado ou inválido")
		return nil, false
	}
	if !converter.SupportedExtension(fileHeader.Filename) {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Extensão de arquivo não suportada: %s", ext))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo da câmara")
		return nil, false
	}
	defer file.Close()

	result, err := h.service.ProcessCamaraFile(file, fileHeader.Filename)
	if err != nil {
		h.processingError(c, err)
		return nil, false
	}
	return result, true
}

func (h *CamaraHandler) processingError(c *gin.Context, err error) {
	var schemaErr *ledger.SchemaError
	if errors.As(err, &schemaErr) {
		details := []string{"colunas ausentes: " + strings.Join(schemaErr.Missing, ", ")}
		keys := make([]string, 0, len(schemaErr.Suggestions))
		for k := range schemaErr.Suggestions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, missing := range keys {
			details = append(details, fmt.Sprintf("%s: você quis dizer %q?", missing, schemaErr.Suggestions[missing]))
		}
		responses.Error(c, http.StatusUnprocessableEntity, "Formato de arquivo não reconhecido", details...)
		return
	}
	responses.Error(c, http.StatusInternalServerError, "Erro ao processar o arquivo", err.Error())
}

func (h *CamaraHandler) csvContentType() string {
	return "text/csv; charset=" + h.service.Charset()
}

// HandleCamaraConversion converte um arquivo e devolve o CSV de lançamentos.
func (h *CamaraHandler) HandleCamaraConversion(c *gin.Context) {
	result, ok := h.openCamaraFile(c)
	if !ok {
		return
	}

	fileName := fmt.Sprintf("LancamentosCamara_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Header("X-Run-Id", result.RunID)
	c.Header("X-Diagnostics-Warnings", fmt.Sprint(result.Result.Diagnostics.Count(ledger.SeverityWarning)))
	c.Header("X-Diagnostics-Critical", fmt.Sprint(result.Result.Diagnostics.Count(ledger.SeverityCritical)))
	c.Data(http.StatusOK, h.csvContentType(), result.CSV)
}

// HandleCamaraPreview converte um arquivo e devolve lançamentos e diagnósticos em JSON.
func (h *CamaraHandler) HandleCamaraPreview(c *gin.Context) {
	result, ok := h.openCamaraFile(c)
	if !ok {
		return
	}
	tbl := result.Result.Table(true)
	responses.Success(c, gin.H{
		"summary": summarize(result, false),
		"columns": tbl.Columns,
		"rows":    tbl.Rows,
	}, "Pré-visualização gerada")
}

// HandleCamaraBatch converte vários arquivos ("files") em paralelo.
func (h *CamaraHandler) HandleCamaraBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		responses.Error(c, http.StatusBadRequest, "Nenhum arquivo enviado no campo 'files'")
		return
	}

	var files []converter.File
	for _, fh := range form.File["files"] {
		data, err := readMultipart(fh)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Não foi possível ler o arquivo "+fh.Filename)
			return
		}
		files = append(files, converter.File{Name: fh.Filename, Data: data})
	}

	batch, err := h.service.ProcessBatch(c.Request.Context(), files)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar o lote", err.Error())
		return
	}

	processed := make([]fileSummary, 0, len(batch.Processed))
	for _, fr := range batch.Processed {
		processed = append(processed, summarize(fr, true))
	}
	responses.Success(c, gin.H{
		"run_id":    batch.RunID,
		"processed": processed,
		"errored":   batch.Errored,
	}, fmt.Sprintf("%d arquivo(s) processado(s), %d com erro", len(batch.Processed), len(batch.Errored)))
}

// HandleCamaraReports gera os relatórios contábeis. Sem parâmetros devolve a planilha XLSX;
// format=json devolve os totais; format=csv&report=<nome> devolve um relatório em CSV.
func (h *CamaraHandler) HandleCamaraReports(c *gin.Context) {
	result, ok := h.openCamaraFile(c)
	if !ok {
		return
	}
	reports := report.Build(result.Result.Entries)
	summary := report.Summarize(result.Result.Entries)

	switch strings.ToLower(c.DefaultQuery("format", "xlsx")) {
	case "json":
		responses.Success(c, gin.H{"reports": reports, "irrf": summary}, "Relatórios gerados")
	case "csv":
		r, found := report.Lookup(reports, c.Query("report"))
		if !found {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Relatório desconhecido: %q", c.Query("report")))
			return
		}
		out, err := h.service.WriteCSV(r.Table())
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Erro ao gerar CSV do relatório", err.Error())
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+r.Name+".csv")
		c.Data(http.StatusOK, h.csvContentType(), out)
	case "xlsx":
		var buf bytes.Buffer
		if err := report.WriteWorkbook(&buf, reports, summary); err != nil {
			responses.Error(c, http.StatusInternalServerError, "Erro ao gerar planilha de relatórios", err.Error())
			return
		}
		fileName := fmt.Sprintf("RelatoriosCamara_%s.xlsx", time.Now().Format("20060102_150405"))
		c.Header("Content-Disposition", "attachment; filename="+fileName)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	default:
		responses.Error(c, http.StatusBadRequest, "Formato de relatório não suportado (use xlsx, json ou csv)")
	}
}

func readMultipart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
