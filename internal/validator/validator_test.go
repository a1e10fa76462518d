package validator

import (
	"testing"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mb = 1024 * 1024

func TestValidate(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		file *models.SelectedFile
		want error
	}{
		{"nil file", nil, common.ErrNoFile},
		{"empty name", &models.SelectedFile{}, common.ErrNoFile},
		{"wrong extension", &models.SelectedFile{Name: "notes.txt", SizeBytes: mb}, common.ErrWrongExtension},
		{"pbix is not pbit", &models.SelectedFile{Name: "report.pbix", SizeBytes: mb}, common.ErrWrongExtension},
		{"extension only in the middle", &models.SelectedFile{Name: "report.pbit.zip", SizeBytes: mb}, common.ErrWrongExtension},
		{"uppercase extension ok", &models.SelectedFile{Name: "REPORT.PBIT", SizeBytes: mb}, nil},
		{"exactly at the limit", &models.SelectedFile{Name: "edge.pbit", SizeBytes: p.MaxSizeBytes}, nil},
		{"one byte over", &models.SelectedFile{Name: "big.pbit", SizeBytes: p.MaxSizeBytes + 1}, common.ErrTooLarge},
		{"empty file ok", &models.SelectedFile{Name: "empty.pbit"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.file, p)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_TooLargeReportsCeilingInMB(t *testing.T) {
	err := Validate(&models.SelectedFile{Name: "big.pbit", SizeBytes: 40 * mb}, DefaultPolicy())
	require.ErrorIs(t, err, common.ErrTooLarge)
	assert.Contains(t, err.Error(), "30MB")

	custom := Policy{AllowedExtension: ".pbit", MaxSizeBytes: 10*mb + mb/2 + 1}
	err = Validate(&models.SelectedFile{Name: "big.pbit", SizeBytes: 20 * mb}, custom)
	require.ErrorIs(t, err, common.ErrTooLarge)
	assert.Contains(t, err.Error(), "11MB")
}

func TestFilter_KeepsOnlyValidFilesInOrder(t *testing.T) {
	files := []models.SelectedFile{
		{Name: "report.pbit", SizeBytes: 5 * mb},
		{Name: "notes.txt", SizeBytes: 1 * mb},
		{Name: "second.PBIT", SizeBytes: 2 * mb},
		{Name: "huge.pbit", SizeBytes: 31 * mb},
	}

	valid, rejected := Filter(files, Policy{AllowedExtension: ".pbit", MaxSizeBytes: 30 * mb})

	require.Len(t, valid, 2)
	assert.Equal(t, "report.pbit", valid[0].Name)
	assert.Equal(t, "second.PBIT", valid[1].Name)

	require.Len(t, rejected, 2)
	assert.Equal(t, "notes.txt", rejected[0].File)
	assert.ErrorIs(t, rejected[0].Err, common.ErrWrongExtension)
	assert.Equal(t, "huge.pbit", rejected[1].File)
	assert.ErrorIs(t, rejected[1].Err, common.ErrTooLarge)
}

func TestFilter_ReportAndNotes(t *testing.T) {
	valid, _ := Filter([]models.SelectedFile{
		{Name: "report.pbit", SizeBytes: 5 * mb},
		{Name: "notes.txt", SizeBytes: 1 * mb},
	}, Policy{AllowedExtension: ".pbit", MaxSizeBytes: 30 * mb})

	require.Len(t, valid, 1)
	assert.Equal(t, "report.pbit", valid[0].Name)
}

func TestFilter_Empty(t *testing.T) {
	valid, rejected := Filter(nil, DefaultPolicy())
	assert.Empty(t, valid)
	assert.Empty(t, rejected)
}
