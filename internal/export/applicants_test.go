package export

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hirelink/internal/domain/job"
)

func TestApplicantsWorkbook(t *testing.T) {
	j := job.Job{ID: uuid.New(), Title: "Go Engineer", CompanyName: "Acme"}
	applied := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	applicants := []job.Applicant{
		{UserID: uuid.New(), Name: "Ada", Email: "ada@example.com", AppliedAt: applied, MatchScore: 0.8123},
		{UserID: uuid.New(), Name: "Bob", Email: "bob@example.com", AppliedAt: applied, MatchScore: 0.1},
	}

	buf, err := ApplicantsWorkbook(j, applicants, applied)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, applicantsSheet}, f.GetSheetList())

	rows, err := f.GetRows(applicantsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, applicantHeaders, rows[0])
	assert.Equal(t, "Ada", rows[1][1])
	assert.Equal(t, "81.23", rows[1][4])

	title, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", title)
}

func TestApplicantsWorkbook_Empty(t *testing.T) {
	buf, err := ApplicantsWorkbook(job.Job{ID: uuid.New()}, nil, time.Now())
	require.NoError(t, err)
	assert.Positive(t, buf.Len())
}

func TestFileName(t *testing.T) {
	id := uuid.MustParse("2f1c6f1e-8d0a-4f55-9a57-2f3a3b0c9d11")
	assert.Equal(t, "applicants-2f1c6f1e-8d0a-4f55-9a57-2f3a3b0c9d11.xlsx", FileName(job.Job{ID: id}))
}
