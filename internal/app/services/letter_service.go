package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/registry"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

// letterRows is the number of roster rows a printed letter always shows;
// short rosters are padded with dotted placeholder rows.
const letterRows = models.InstituteCapacity

// LetterService renders the printable assignment letter that accompanies a
// practicum group to its institute.
type LetterService struct {
	registry *registry.Registry
	tmpl     *template.Template
	logger   zerolog.Logger
}

// NewLetterService creates a new letter service instance
func NewLetterService(reg *registry.Registry, logger zerolog.Logger) *LetterService {
	return &LetterService{
		registry: reg,
		tmpl:     template.Must(template.New("letter").Parse(letterTemplate)),
		logger:   logger.With().Str("service", "letter").Logger(),
	}
}

type letterRow struct {
	Index      int
	Name       string
	NationalID string
	Empty      bool
}

type letterData struct {
	InstituteName string
	YearLabel     string
	AcademicYear  string
	Date          string
	Reference     string
	Rows          []letterRow
}

// GenerateLetter renders the letter for one institute as a standalone HTML
// document ready for printing.
func (s *LetterService) GenerateLetter(instituteID string) (string, error) {
	inst, ok := s.registry.InstituteByID(instituteID)
	if !ok {
		return "", apperrors.ErrInstituteNotFound
	}
	students := s.registry.StudentsByInstitute(instituteID)

	rows := make([]letterRow, 0, letterRows)
	for i, student := range students {
		rows = append(rows, letterRow{
			Index:      i + 1,
			Name:       student.Name,
			NationalID: student.NationalID,
		})
	}
	for i := len(rows); i < letterRows; i++ {
		rows = append(rows, letterRow{Index: i + 1, Empty: true})
	}

	yearLabel := "الفرقة الثالثة"
	if inst.Year == models.YearFourth {
		yearLabel = "الفرقة الرابعة"
	}

	now := time.Now()
	data := letterData{
		InstituteName: inst.Name,
		YearLabel:     yearLabel,
		AcademicYear:  academicYear(now),
		Date:          now.Format("2006/01/02"),
		Reference:     fmt.Sprintf("TR-%d-%s", now.Year(), referenceSegment(inst.ID)),
		Rows:          rows,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Str("instituteId", instituteID).Msg("Failed to render letter")
		return "", err
	}

	s.logger.Info().
		Str("instituteId", instituteID).
		Int("students", len(students)).
		Msg("Assignment letter generated")
	return buf.String(), nil
}

// academicYear formats the academic year the letter belongs to; the year
// rolls over in September.
func academicYear(now time.Time) string {
	start := now.Year()
	if now.Month() < time.September {
		start--
	}
	return fmt.Sprintf("%d/%d", start, start+1)
}

// referenceSegment keeps the reference numbers short and stable per
// institute.
func referenceSegment(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

const letterTemplate = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="utf-8">
<title>خطاب توجيه طلاب التربية العملية</title>
<style>
body { font-family: "Traditional Arabic", "Amiri", serif; margin: 2cm; color: #111; }
header { display: flex; justify-content: space-between; border-bottom: 3px solid #111; padding-bottom: 1em; margin-bottom: 2em; }
h1 { text-align: center; text-decoration: underline; margin-bottom: 1.5em; }
p.body { font-size: 1.15em; line-height: 1.9; }
table { width: 100%; border-collapse: collapse; margin: 2em 0; }
th, td { border: 2px solid #111; padding: 0.4em 0.6em; }
td.num, th.num { text-align: center; width: 3em; }
td.nid, th.nid { text-align: center; width: 14em; }
tr.empty td { color: #999; }
.signatures { display: flex; justify-content: space-around; margin-top: 4em; text-align: center; }
footer { margin-top: 4em; font-size: 0.8em; color: #777; text-align: center; border-top: 1px solid #ddd; padding-top: 1em; }
</style>
</head>
<body>
<header>
  <div>
    <p><strong>الأزهر الشريف</strong></p>
    <p>جامعة الأزهر</p>
    <p>كلية التربية بنين بتفهنا الأشراف</p>
    <p>قسم المناهج وطرق التدريس</p>
  </div>
  <div>
    <p>التاريخ: {{.Date}}</p>
    <p>الرقم المرجعي: {{.Reference}}</p>
    <p>الموضوع: التربية العملية</p>
  </div>
</header>

<h1>خطاب توجيه طلاب التربية العملية</h1>

<p class="body"><strong>السيد صاحب الفضيلة/ شيخ {{.InstituteName}}</strong></p>
<p class="body">تحية طيبة وبعد ،،،</p>
<p class="body">يرجى التفضل بالموافقة على تدريب السادة الطلاب الواردة أسماؤهم أدناه بعهدكم الموقر، وذلك لإتمام مقرر (التربية العملية) لطلاب {{.YearLabel}} للعام الجامعي {{.AcademicYear}}.</p>
<p class="body">نرجو من فضيلتكم تمكينهم من ممارسة التدريس الفعلي تحت إشراف شيخ المعهد وموجه المادة، وموافاتنا بتقرير دوري عن انتظامهم وتفوقهم في أداء مهامهم.</p>

<table>
  <thead>
    <tr>
      <th class="num">م</th>
      <th>اسم الطالب رباعياً</th>
      <th class="nid">الرقم القومي (14 رقم)</th>
    </tr>
  </thead>
  <tbody>
    {{- range .Rows}}
    {{- if .Empty}}
    <tr class="empty"><td class="num">{{.Index}}</td><td>..............................................</td><td class="nid">.....................</td></tr>
    {{- else}}
    <tr><td class="num">{{.Index}}</td><td>{{.Name}}</td><td class="nid">{{.NationalID}}</td></tr>
    {{- end}}
    {{- end}}
  </tbody>
</table>

<div class="signatures">
  <div>
    <p><strong>منسق التربية العملية</strong></p>
    <p>................................</p>
  </div>
  <div>
    <p><strong>رئيس قسم المناهج وطرق التدريس</strong></p>
    <p>أ.د/ ................................</p>
  </div>
</div>

<footer>
  <p>تفهنا الأشراف - مركز ميت غمر - الدقهلية | كلية التربية بنين</p>
</footer>
</body>
</html>
`
