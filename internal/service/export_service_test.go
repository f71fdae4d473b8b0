package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// ── ExportBulletin 测试 ──

func TestExportService_ExportBulletin_NotFound(t *testing.T) {
	svc := NewExportService(newTestStore(), testHeader, nop)

	_, _, err := svc.ExportBulletin(context.Background(), "nonexistent")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestExportService_ExportBulletin_Success(t *testing.T) {
	st := newTestStore()
	a := seedStudent(t, st, "Koffi", "Awa", model.ClassLevel2)
	x := seedCourse(t, st, "Exégèse", "Bible", 3, "")
	seedGrade(t, st, a, x, 12, model.Semester1)
	svc := NewExportService(st, testHeader, nop)

	buf, filename, err := svc.ExportBulletin(context.Background(), a)
	if err != nil {
		t.Fatalf("ExportBulletin 应成功: %v", err)
	}
	if filename != "Bulletin_Koffi_Awa.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}
	// Excel .xlsx 文件以 PK (0x504B) 开头
	if buf.Len() < 2 || buf.Bytes()[0] != 0x50 || buf.Bytes()[1] != 0x4B {
		t.Fatal("输出内容不是有效的 xlsx 文件格式（应以 PK 开头）")
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 xlsx: %v", err)
	}
	defer f.Close()

	title, _ := f.GetCellValue("Bulletin", "A1")
	if title != testHeader.Institution {
		t.Errorf("期望标题=%s，实际=%s", testHeader.Institution, title)
	}

	rows, err := f.GetRows("Bulletin")
	if err != nil {
		t.Fatalf("读取行失败: %v", err)
	}
	var foundCourse, foundAnnual bool
	for _, r := range rows {
		if len(r) >= 3 && r[0] == "Exégèse" && r[2] == "Non assigné" {
			foundCourse = true
		}
		if len(r) >= 2 && r[0] == "Moyenne annuelle" && r[1] == "6" {
			foundAnnual = true
		}
	}
	if !foundCourse {
		t.Error("未找到课程明细行")
	}
	if !foundAnnual {
		t.Error("未找到年度平均分行")
	}
}

// ── ExportClassResults 测试 ──

func TestExportService_ExportClassResults(t *testing.T) {
	st := newTestStore()
	a := seedStudent(t, st, "Koffi", "Awa", model.ClassLevel1)
	seedStudent(t, st, "Yao", "Paul", model.ClassLevel1)
	seedStudent(t, st, "Konan", "Marc", model.ClassLevel3)
	c := seedCourse(t, st, "Grec", "Langues", 2, "")
	seedGrade(t, st, a, c, 14, model.Semester1)
	seedGrade(t, st, a, c, 16, model.Semester2)
	svc := NewExportService(st, testHeader, nop)

	buf, filename, err := svc.ExportClassResults(context.Background(), model.ClassLevel1)
	if err != nil {
		t.Fatalf("ExportClassResults 应成功: %v", err)
	}
	if filename != "Resultats_Classe_1.xlsx" {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析导出的 xlsx: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("Classe 1")
	// 标题 + 表头 + 2 名学生
	if len(rows) != 4 {
		t.Fatalf("期望4行，实际=%d", len(rows))
	}
	if rows[2][0] != "Koffi" || rows[2][4] != "15" {
		t.Errorf("第一名学生行不符: %v", rows[2])
	}
	if rows[3][0] != "Yao" || rows[3][4] != "0" {
		t.Errorf("第二名学生行不符: %v", rows[3])
	}
}

func TestExportService_ExportClassResults_InvalidClass(t *testing.T) {
	svc := NewExportService(newTestStore(), testHeader, nop)

	_, _, err := svc.ExportClassResults(context.Background(), model.ClassLevel("9"))
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("期望 ErrInvalidRecord，实际: %v", err)
	}
}
