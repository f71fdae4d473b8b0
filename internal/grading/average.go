// Package grading 计算按系数加权的学期平均分与年度平均分。
//
// 舍入规则：保留两位小数，第三位小数四舍五入（远离零方向）。
// 学期内没有任何有效成绩时平均分定义为 0，而不是错误或未定义。
// 年度平均分由两个已舍入的学期平均分再求平均并舍入，不从原始成绩重新推导。
package grading

import (
	"github.com/shopspring/decimal"

	"github.com/awieserg/Notes-Ibacy/internal/model"
)

const precision = 2

// Averages 某学生的三项平均分
type Averages struct {
	Semester1 float64 `json:"semester1"`
	Semester2 float64 `json:"semester2"`
	Annual    float64 `json:"annual"`
}

// Of 返回指定学期的平均分
func (a Averages) Of(sem model.Semester) float64 {
	if sem == model.Semester2 {
		return a.Semester2
	}
	return a.Semester1
}

// SemesterAverage 计算学生在某学期的加权平均分。
// 课程已不存在的成绩不计入（正常情况下不会出现）。
func SemesterAverage(studentID string, sem model.Semester, grades []model.Grade, courses []model.Course) float64 {
	return semesterAverage(studentID, sem, grades, coefficients(courses))
}

// AnnualAverage 由两个已舍入的学期平均分计算年度平均分
func AnnualAverage(semester1, semester2 float64) float64 {
	sum := decimal.NewFromFloat(semester1).Add(decimal.NewFromFloat(semester2))
	return toFloat(sum.Div(decimal.NewFromInt(2)).Round(precision))
}

// Compute 一次性计算两个学期及年度平均分
func Compute(studentID string, grades []model.Grade, courses []model.Course) Averages {
	coefs := coefficients(courses)
	s1 := semesterAverage(studentID, model.Semester1, grades, coefs)
	s2 := semesterAverage(studentID, model.Semester2, grades, coefs)
	return Averages{
		Semester1: s1,
		Semester2: s2,
		Annual:    AnnualAverage(s1, s2),
	}
}

// Round2 保留两位小数，远离零方向舍入
func Round2(x float64) float64 {
	return toFloat(decimal.NewFromFloat(x).Round(precision))
}

// ── 内部辅助方法 ──

func coefficients(courses []model.Course) map[string]int {
	coefs := make(map[string]int, len(courses))
	for _, c := range courses {
		coefs[c.ID] = c.Coefficient
	}
	return coefs
}

func semesterAverage(studentID string, sem model.Semester, grades []model.Grade, coefs map[string]int) float64 {
	points := decimal.Zero
	weight := decimal.Zero

	for _, g := range grades {
		if g.StudentID != studentID || g.Semester != sem {
			continue
		}
		coef, ok := coefs[g.CourseID]
		if !ok {
			continue
		}
		c := decimal.NewFromInt(int64(coef))
		points = points.Add(decimal.NewFromFloat(g.Value).Mul(c))
		weight = weight.Add(c)
	}

	if weight.IsZero() {
		return 0
	}
	return toFloat(points.Div(weight).Round(precision))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
