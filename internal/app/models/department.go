package models

// Department is a static academic specialization reference used to filter
// institutes. The list is fixed at build time and never mutated at runtime.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Departments is the reference list partitioning institutes and students,
// including the special-education sub-categories.
var Departments = []Department{
	{ID: "islamic", Name: "دراسات إسلامية"},
	{ID: "arabic", Name: "لغة عربية"},
	{ID: "english", Name: "لغة إنجليزية"},
	{ID: "french", Name: "لغة فرنسية"},
	{ID: "history", Name: "تاريخ"},
	{ID: "geography", Name: "جغرافيا"},
	{ID: "tech", Name: "تكنولوجيا التعليم"},
	{ID: "psychology", Name: "علم نفس"},
	{ID: "special_visual", Name: "تربية خاصة (إعاقة بصرية)"},
	{ID: "special_intellectual", Name: "تربية خاصة (إعاقة فكرية)"},
	{ID: "special_gifted", Name: "تربية خاصة (موهبة وتفوق)"},
	{ID: "special_hearing", Name: "تربية خاصة (إعاقة سمعية)"},
	{ID: "special_learning", Name: "تربية خاصة (صعوبات تعلم)"},
	{ID: "social_basic", Name: "دراسات اجتماعية (تعليم أساسي)"},
	{ID: "arabic_basic", Name: "لغة عربية (تعليم أساسي)"},
}

// DepartmentByID looks up a department in the static reference list.
func DepartmentByID(id string) (Department, bool) {
	for _, d := range Departments {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}
