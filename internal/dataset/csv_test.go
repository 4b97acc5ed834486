package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

const salariesCSV = `work_year,experience_level,employment_type,job_title,salary,salary_currency,remote_ratio
2023,SE,FT,Data Scientist,150000,USD,100
2023,SE,FT,Data Scientist,140000.5,USD,0
2023,MI,FT,Data Engineer,110000,USD,50.0
2023,EN,FT,Data Analyst,not-a-number,USD,0
2023,EN,FT,Data Analyst,70000,USD,25
2023,EN,FT,Data Analyst,-5,USD,0
2023,EN,FT
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(salariesCSV), logger.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []models.SalaryRecord{
		{JobTitle: "Data Scientist", ExperienceLevel: "SE", RemoteRatio: 100, Salary: 150000},
		{JobTitle: "Data Scientist", ExperienceLevel: "SE", RemoteRatio: 0, Salary: 140000.5},
		{JobTitle: "Data Engineer", ExperienceLevel: "MI", RemoteRatio: 50, Salary: 110000},
	}, records)
}

func TestParseCSV_HeaderNormalisation(t *testing.T) {
	data := "\ufeff Job_Title ,EXPERIENCE_LEVEL,Salary,Remote_Ratio\nML Engineer,SE,200000,100\n"

	records, err := ParseCSV(strings.NewReader(data), logger.NewNoOpLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ML Engineer", records[0].JobTitle)
	assert.Equal(t, 100, records[0].RemoteRatio)
}

func TestParseCSV_MissingColumn(t *testing.T) {
	data := "job_title,experience_level,salary\nData Scientist,SE,100000\n"

	_, err := ParseCSV(strings.NewReader(data), logger.NewNoOpLogger())
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColumnRemoteRatio)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), logger.NewNoOpLogger())
	assert.Error(t, err)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("job_title,experience_level,salary,remote_ratio\n"), logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Empty(t, records)
}
