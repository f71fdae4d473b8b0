package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	"github.com/awieserg/Notes-Ibacy/internal/report"
	"github.com/awieserg/Notes-Ibacy/internal/store"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 成绩单：一个 Sheet，依次为抬头、学生信息、两个学期的明细、学年结果
//   - 班级成绩：一个 Sheet，每名学生一行，列出两个学期与年度平均分
type ExportService interface {
	// ExportBulletin 导出单个学生的成绩单
	ExportBulletin(ctx context.Context, studentID string) (*bytes.Buffer, string, error)
	// ExportClassResults 导出某年级全部学生的平均分
	ExportClassResults(ctx context.Context, class model.ClassLevel) (*bytes.Buffer, string, error)
}

type exportService struct {
	store  *store.Store
	header report.Header
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(st *store.Store, header report.Header, logger *zap.Logger) ExportService {
	return &exportService{store: st, header: header, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportBulletin：导出成绩单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1-2 行：机构名称、学年
//   - 学生信息：姓名、年级、出生日期
//   - 每个学期：| 课程 | 科目 | 教师 | 系数 | 成绩 | 评语 |，末行为学期平均分
//   - 学年结果：第一学期、第二学期、年度平均分
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportBulletin(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	b, ok := report.Assemble(s.store.Snapshot(), studentID, s.header)
	if !ok {
		return nil, "", ErrStudentNotFound
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bulletin"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "C", 20)
	f.SetColWidth(sheetName, "D", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 30)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	// 抬头
	f.SetCellValue(sheetName, "A1", b.Header.Institution)
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)
	f.SetCellValue(sheetName, "A2", "Année académique "+b.Header.AcademicYear)
	f.MergeCell(sheetName, "A2", "F2")

	// 学生信息
	row := 4
	identity := [][2]string{
		{"Nom", b.Student.LastName},
		{"Prénom", b.Student.FirstName},
		{"Classe", string(b.Student.Class)},
		{"Date de naissance", b.Student.BirthDate},
	}
	for _, kv := range identity {
		f.SetCellValue(sheetName, cell("A", row), kv[0])
		f.SetCellValue(sheetName, cell("B", row), kv[1])
		f.SetCellStyle(sheetName, cell("A", row), cell("A", row), boldStyle)
		row++
	}

	// 学期明细
	columns := []string{"Cours", "Matière", "Enseignant", "Coefficient", "Note", "Appréciation"}
	for _, sec := range b.Semesters {
		row++
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("Semestre %d", sec.Semester))
		f.SetCellStyle(sheetName, cell("A", row), cell("A", row), boldStyle)
		row++
		for i, title := range columns {
			f.SetCellValue(sheetName, cell(colName(i), row), title)
		}
		f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(columns)-1), row), headerStyle)
		row++

		for _, line := range sec.Lines {
			f.SetCellValue(sheetName, cell("A", row), line.CourseName)
			f.SetCellValue(sheetName, cell("B", row), line.SubjectName)
			f.SetCellValue(sheetName, cell("C", row), line.TeacherName)
			f.SetCellValue(sheetName, cell("D", row), line.Coefficient)
			f.SetCellValue(sheetName, cell("E", row), line.Value)
			f.SetCellValue(sheetName, cell("F", row), line.Appreciation)
			row++
		}

		f.SetCellValue(sheetName, cell("D", row), "Moyenne")
		f.SetCellValue(sheetName, cell("E", row), sec.Average)
		f.SetCellStyle(sheetName, cell("D", row), cell("E", row), boldStyle)
		row++
	}

	// 学年结果
	row++
	results := []struct {
		label string
		value float64
	}{
		{"Moyenne semestre 1", b.Results.Semester1Average},
		{"Moyenne semestre 2", b.Results.Semester2Average},
		{"Moyenne annuelle", b.Results.AnnualAverage},
	}
	for _, r := range results {
		f.SetCellValue(sheetName, cell("A", row), r.label)
		f.SetCellValue(sheetName, cell("B", row), r.value)
		f.SetCellStyle(sheetName, cell("A", row), cell("B", row), boldStyle)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("Bulletin_%s_%s.xlsx", b.Student.LastName, b.Student.FirstName)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportClassResults：导出班级平均分
// ═══════════════════════════════════════════════════════════
//
// 表头: | Nom | Prénom | Moyenne S1 | Moyenne S2 | Moyenne annuelle |
// 行顺序与学生插入顺序一致；年级内无学生时仍输出表头

func (s *exportService) ExportClassResults(ctx context.Context, class model.ClassLevel) (*bytes.Buffer, string, error) {
	if !class.Valid() {
		return nil, "", fmt.Errorf("%w: 年级 %q", ErrInvalidRecord, class)
	}

	summaries := report.Summaries(s.store.Snapshot(), report.Filter{Class: class})

	f := excelize.NewFile()
	defer f.Close()

	sheetName := fmt.Sprintf("Classe %s", class)
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "B", 22)
	f.SetColWidth(sheetName, "C", "E", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Classe %s - %s", s.header.Institution, class, s.header.AcademicYear))
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	columns := []string{"Nom", "Prénom", "Moyenne S1", "Moyenne S2", "Moyenne annuelle"}
	for i, title := range columns {
		f.SetCellValue(sheetName, cell(colName(i), 2), title)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(columns)-1), 2), headerStyle)

	// 数据行
	row := 3
	for _, sm := range summaries {
		f.SetCellValue(sheetName, cell("A", row), sm.Student.LastName)
		f.SetCellValue(sheetName, cell("B", row), sm.Student.FirstName)
		f.SetCellValue(sheetName, cell("C", row), sm.Results.Semester1Average)
		f.SetCellValue(sheetName, cell("D", row), sm.Results.Semester2Average)
		f.SetCellValue(sheetName, cell("E", row), sm.Results.AnnualAverage)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("class", string(class)), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("Resultats_Classe_%s.xlsx", class)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
