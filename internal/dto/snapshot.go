package dto

// ── 快照模块 DTO ──

// SnapshotStatsResponse 各集合记录数
type SnapshotStatsResponse struct {
	Students int `json:"students"`
	Teachers int `json:"teachers"`
	Courses  int `json:"courses"`
	Grades   int `json:"grades"`
}
