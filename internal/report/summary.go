package report

import (
	"strings"

	"github.com/awieserg/Notes-Ibacy/internal/grading"
	"github.com/awieserg/Notes-Ibacy/internal/model"
)

// Filter 学生筛选条件：年级 + 姓名模糊搜索（不区分大小写）
type Filter struct {
	Class  model.ClassLevel
	Search string
}

// Match 判断学生是否满足筛选条件
func (f Filter) Match(s model.Student) bool {
	if f.Class != "" && s.Class != f.Class {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.LastName), term) ||
		strings.Contains(strings.ToLower(s.FirstName), term)
}

// Summary 成绩单列表中的一行
type Summary struct {
	Student Identity `json:"student"`
	Results Results  `json:"results"`
}

// Summaries 按学生插入顺序返回满足条件的成绩单摘要
func Summaries(snap model.Snapshot, f Filter) []Summary {
	out := make([]Summary, 0, len(snap.Students))
	for _, s := range snap.Students {
		if !f.Match(s) {
			continue
		}
		avg := grading.Compute(s.ID, snap.Grades, snap.Courses)
		out = append(out, Summary{
			Student: identityOf(s),
			Results: Results{
				Semester1Average: avg.Semester1,
				Semester2Average: avg.Semester2,
				AnnualAverage:    avg.Annual,
			},
		})
	}
	return out
}
