package history

import (
	"fmt"
	"time"

	"github.com/sf7293/history-compare/internal/domain"
)

// RecordCount is the size of the synthetic record set
const RecordCount = 50

// TimestampLayout renders UTC instants with millisecond precision and a Z suffix
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var recordKinds = [...]domain.RecordKind{domain.Build, domain.Test, domain.Deploy}

var recordRemarks = [...]string{
	"automated build record",
	"manually triggered build",
	"scheduled task build",
}

// GenerateRecords builds the record set relative to now. Index 0 is the newest
// record and every following one is exactly one day older.
func GenerateRecords(now time.Time) []domain.HistoryRecord {
	now = now.UTC()
	records := make([]domain.HistoryRecord, RecordCount)
	for i := range records {
		records[i] = newRecord(now, i)
	}

	return records
}

func newRecord(now time.Time, index int) domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:          fmt.Sprintf("record_%d", index+1),
		CreatedAt:   now.Add(-time.Duration(index) * 24 * time.Hour).Format(TimestampLayout),
		Kind:        recordKinds[index%len(recordKinds)],
		BuildNumber: fmt.Sprintf("B%04d", 1000-index),
		Remark:      recordRemarks[index%len(recordRemarks)],
		Version:     fmt.Sprintf("v1.%d.%d", index, index%10),
		CommitID:    fmt.Sprintf("abc%06ddef", 1000+index),
		BuildURL:    fmt.Sprintf("https://build.example.com/job/%d", index+1),
	}
}
