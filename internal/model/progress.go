package model

// StateKind 本地持久化状态的种类，与 courseId 组成存储键 {kind}_{courseId}
type StateKind string

const (
	KindProgress  StateKind = "progress"
	KindStudied   StateKind = "studied"
	KindDifficult StateKind = "difficult"
)

// ProgressRecord module number -> 完成百分比（当前只有 0 或 100）
type ProgressRecord struct {
	CourseID         string      `json:"courseId"`
	Modules          map[int]int `json:"modules"`
	CompletedModules int         `json:"completedModules"`
	TotalModules     int         `json:"totalModules"`
	PercentComplete  int         `json:"percentComplete"`
}

// ProgressReport 提交到 /analytics/progress 的负载
type ProgressReport struct {
	CourseID     string `json:"course_id"`
	ModuleNumber int    `json:"module_number"`
	ProgressType string `json:"progress_type"`
	Score        int    `json:"score"`
	TimeSpent    int    `json:"time_spent,omitempty"`
}

const (
	ProgressTypeModuleCompleted = "module_completed"
	ProgressTypeModuleReset     = "module_reset"
	ProgressTypeCourseReset     = "course_reset"
)
