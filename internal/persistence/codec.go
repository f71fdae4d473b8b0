// Package persistence 负责快照的编码、落盘与启动加载。
//
// 持久化格式只有一种：四个集合组成的 JSON 对象
//
//	{"etudiants":[…],"enseignants":[…],"cours":[…],"notes":[…]}
//
// 文件、Redis、SQL 三种目标写入的都是同一份快照。
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	pkgerrors "github.com/awieserg/Notes-Ibacy/pkg/errors"
)

// Encode 将快照编码为 JSON，空集合输出为 [] 而不是 null
func Encode(snap model.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(normalize(snap), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("编码快照失败: %w", err)
	}
	return data, nil
}

// Decode 解析快照 JSON；缺失的集合视为空集合，未知字段忽略
func Decode(data []byte) (model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", pkgerrors.ErrCorruptSnapshot, err)
	}
	return normalize(snap), nil
}

func normalize(snap model.Snapshot) model.Snapshot {
	if snap.Students == nil {
		snap.Students = []model.Student{}
	}
	if snap.Teachers == nil {
		snap.Teachers = []model.Teacher{}
	}
	// 快照可能被多个写入协程共享，补齐空科目时复制一份
	for i, t := range snap.Teachers {
		if t.Subjects != nil {
			continue
		}
		teachers := make([]model.Teacher, len(snap.Teachers))
		copy(teachers, snap.Teachers)
		for j := i; j < len(teachers); j++ {
			if teachers[j].Subjects == nil {
				teachers[j].Subjects = model.StringList{}
			}
		}
		snap.Teachers = teachers
		break
	}
	if snap.Courses == nil {
		snap.Courses = []model.Course{}
	}
	if snap.Grades == nil {
		snap.Grades = []model.Grade{}
	}
	return snap
}
