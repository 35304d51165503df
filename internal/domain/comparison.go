package domain

type ComparisonTaskStatus string

const (
	Created ComparisonTaskStatus = "created"
)

const ComparisonTaskCreatedMessage = "comparison task created successfully"

// ComparisonTask acknowledges a comparison request. Nothing keeps track of it after it is returned.
type ComparisonTask struct {
	TaskID  string               `json:"taskId"`
	Status  ComparisonTaskStatus `json:"status"`
	Message string               `json:"message"`
}

type RouterRequestCreateComparison struct {
	CurrentID  string `json:"currentId" form:"currentId" binding:"required,validate_record_id"`
	BaselineID string `json:"baselineId" form:"baselineId" binding:"required,validate_record_id"`
}
