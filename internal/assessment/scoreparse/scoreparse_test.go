package scoreparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const potentialReport = `**1. Analisis Kualifikasi (CV vs Jabatan):**
Sesuai.
**4. Skor Potensi (1-100):**
* Kesesuaian Kualifikasi: 80 / 100
* Logika & Nalar (Jawaban): 90 / 100
* Total Skor Potensi: 85
**5. Rekomendasi Kelayakan:**
Direkomendasikan`

const performanceReport = `**2. Analisis Pencapaian Target:**
* Target tercapai.
**3. Skor Kinerja (Estimasi AI):**
* Skor Kinerja: **78** / 100
**4. Saran Peningkatan (Otomatis):**`

func TestPotential(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  int
		found bool
	}{
		{"indonesian report", potentialReport, 85, true},
		{"case insensitive", "TOTAL SKOR POTENSI: 70", 70, true},
		{"english alias", "Total potential score: 64", 64, true},
		{"placeholder is not a score", "* Total Skor Potensi: [Rata-rata Skor]", 0, false},
		{"out of range", "Total Skor Potensi: 140", 0, false},
		{"negative", "Total Skor Potensi: -5", 0, false},
		{"missing", "no score here", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Potential(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPerformance(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  int
		found bool
	}{
		{"header line is skipped", performanceReport, 78, true},
		{"plain value", "Skor Kinerja: 92", 92, true},
		{"english alias", "Performance score: 55/100", 55, true},
		{"crlf", "skor kinerja: 61 / 100\r\n", 61, true},
		{"not a number", "Skor Kinerja: baik", 0, false},
		{"missing", "Ringkasan saja", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Performance(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractAndOrDefault(t *testing.T) {
	n, ok := Extract(KindPotential, "Total Skor Potensi: 85")
	assert.True(t, ok)
	assert.Equal(t, 85, n)

	_, ok = Extract(Kind("leadership"), "Total Skor Potensi: 85")
	assert.False(t, ok)

	assert.Equal(t, 85, OrDefault(85, true))
	assert.Equal(t, DefaultScore, OrDefault(0, false))
}
