package domain

type RecordKind string

const (
	Build  RecordKind = "build"
	Test   RecordKind = "test"
	Deploy RecordKind = "deploy"
)

// HistoryRecord is one synthetic build/test/deploy entry. Records are
// generated once and never modified afterwards.
type HistoryRecord struct {
	ID          string     `json:"id"`
	CreatedAt   string     `json:"createdAt"`
	Kind        RecordKind `json:"kind"`
	BuildNumber string     `json:"buildNumber"`
	Remark      string     `json:"remark"`
	Version     string     `json:"version"`
	CommitID    string     `json:"commitId"`
	BuildURL    string     `json:"buildUrl"`
}
