package errors

import "errors"

// ErrRecordNotFound 记录不存在：更新/删除的 ID 不在对应集合中
var ErrRecordNotFound = errors.New("记录不存在")

// ErrDanglingReference 引用的学生或课程不存在（成绩的强引用约束）
var ErrDanglingReference = errors.New("引用的记录不存在")

// ErrDuplicateID 快照中存在重复 ID
var ErrDuplicateID = errors.New("记录 ID 重复")

// ErrInvalidRecord 记录字段不合法（年级、系数、学时、学期取值越界）
var ErrInvalidRecord = errors.New("记录字段不合法")

// ErrCorruptSnapshot 持久化快照无法解析
var ErrCorruptSnapshot = errors.New("快照数据损坏")
