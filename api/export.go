package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportRow 导出用统一行结构，营收和支出共用
type exportRow struct {
	ID          uint
	Date        time.Time
	Amount      float64
	Party       string // 营收为客户，支出为供应商
	Description string
	CreatedAt   time.Time
}

// parseExportParams 解析导出类型与时间范围
func parseExportParams(c *gin.Context) (string, time.Time, time.Time, bool) {
	exportType := c.DefaultQuery("type", "revenue")
	if exportType != "revenue" && exportType != "expense" {
		BadRequest(c, "type 必须为 revenue 或 expense")
		return "", time.Time{}, time.Time{}, false
	}

	startTimeStr := c.Query("start_time")
	endTimeStr := c.Query("end_time")
	if startTimeStr == "" || endTimeStr == "" {
		BadRequest(c, "请提供开始时间和结束时间")
		return "", time.Time{}, time.Time{}, false
	}

	start, end, err := parseDateRange(startTimeStr, endTimeStr)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02")
		return "", time.Time{}, time.Time{}, false
	}
	return exportType, start, end, true
}

// loadExportRows 按类型查询时间范围内的记录
func loadExportRows(exportType string, start, end time.Time) ([]exportRow, error) {
	rows := []exportRow{}
	if exportType == "revenue" {
		var revenues []models.Revenue
		if err := database.DB.Where("date >= ? AND date <= ?", start, end).
			Order("date DESC").Find(&revenues).Error; err != nil {
			return nil, err
		}
		for _, r := range revenues {
			rows = append(rows, exportRow{
				ID: r.ID, Date: r.Date, Amount: r.Amount,
				Party: r.Customer, Description: r.Description, CreatedAt: r.CreatedAt,
			})
		}
		return rows, nil
	}

	var expenses []models.Expense
	if err := database.DB.Where("date >= ? AND date <= ?", start, end).
		Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	for _, e := range expenses {
		rows = append(rows, exportRow{
			ID: e.ID, Date: e.Date, Amount: e.Amount,
			Party: e.Vendor, Description: e.Description, CreatedAt: e.CreatedAt,
		})
	}
	return rows, nil
}

// partyHeader 对应类型的对方名称列表头
func partyHeader(exportType string) string {
	if exportType == "revenue" {
		return "客户"
	}
	return "供应商"
}

// ExportCSV 导出记录为 CSV
// @Summary 导出记录为 CSV
// @Description 根据时间范围导出营收或支出记录为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Param type query string false "记录类型 (revenue/expense)" default(revenue)
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	exportType, start, end, ok := parseExportParams(c)
	if !ok {
		return
	}

	rows, err := loadExportRows(exportType, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"ID", "日期", "金额", partyHeader(exportType), "描述", "创建时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.ID),
			row.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", row.Amount),
			row.Party,
			row.Description,
			row.CreatedAt.Format(dateTimeLayout),
		}
		if err := writer.Write(record); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.csv", exportType, c.Query("start_time"), c.Query("end_time"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出记录为 JSON
// @Summary 导出记录为 JSON
// @Description 根据时间范围导出营收或支出记录为 JSON 格式，包含汇总信息
// @Tags 导出
// @Produce json
// @Param type query string false "记录类型 (revenue/expense)" default(revenue)
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {object} Response "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	exportType, start, end, ok := parseExportParams(c)
	if !ok {
		return
	}

	if exportType == "revenue" {
		var revenues []models.Revenue
		if err := database.DB.Where("date >= ? AND date <= ?", start, end).
			Order("date DESC").Find(&revenues).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询数据失败"))
			return
		}
		var totalAmount float64
		for _, r := range revenues {
			totalAmount += r.Amount
		}
		Success(c, gin.H{
			"type":         exportType,
			"start_time":   c.Query("start_time"),
			"end_time":     c.Query("end_time"),
			"total_count":  len(revenues),
			"total_amount": totalAmount,
			"records":      revenues,
		})
		return
	}

	var expenses []models.Expense
	if err := database.DB.Where("date >= ? AND date <= ?", start, end).
		Order("date DESC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}
	var totalAmount float64
	for _, e := range expenses {
		totalAmount += e.Amount
	}
	Success(c, gin.H{
		"type":         exportType,
		"start_time":   c.Query("start_time"),
		"end_time":     c.Query("end_time"),
		"total_count":  len(expenses),
		"total_amount": totalAmount,
		"records":      expenses,
	})
}

// ExportExcel 导出记录为 Excel
// @Summary 导出记录为 Excel
// @Description 根据时间范围导出营收或支出记录为带样式的 Excel 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param type query string false "记录类型 (revenue/expense)" default(revenue)
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	exportType, start, end, ok := parseExportParams(c)
	if !ok {
		return
	}

	rows, err := loadExportRows(exportType, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "营收记录"
	if exportType == "expense" {
		sheetName = "支出记录"
	}
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 20)
	f.SetColWidth(sheetName, "E", "E", 30)
	f.SetColWidth(sheetName, "F", "F", 20)

	headers := []string{"ID", "日期", "金额", partyHeader(exportType), "描述", "创建时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var totalAmount float64
	for i, row := range rows {
		excelRow := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", excelRow), row.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", excelRow), row.Date.Format(dateLayout))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", excelRow), row.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", excelRow), row.Party)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", excelRow), row.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", excelRow), row.CreatedAt.Format(dateTimeLayout))

		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", excelRow), fmt.Sprintf("F%d", excelRow), dataStyle)
		totalAmount += row.Amount
	}

	// 汇总行
	summaryRow := len(rows) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), totalAmount)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(rows)))
	f.MergeCell(sheetName, fmt.Sprintf("D%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("%s_%s_%s.xlsx", sheetName, c.Query("start_time"), c.Query("end_time"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}
