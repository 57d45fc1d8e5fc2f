package report

// Table is a ready-to-export grid. Header order is a stable contract with the
// payroll spreadsheet import and must not change between releases.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type GetReportQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// Detail table columns, one row per employee per day.
var detailHeaders = []string{
	"كود الموظف",
	"الاسم",
	"القطاع",
	"الإدارة",
	"التاريخ",
	"الحضور",
	"الانصراف",
	"ساعات العمل",
	"الحالة",
	"ساعات إضافية",
	"الجزاءات",
	"ملاحظات",
}

// Summary table columns, one row per employee over the whole range.
var summaryHeaders = []string{
	"كود الموظف",
	"الاسم",
	"أيام الحضور",
	"أيام التأخير",
	"أيام الغياب",
	"إجمالي الجزاءات",
	"ساعات إضافية",
	"أيام بدل راحة",
	"أيام الخصم",
	"غياب بعذر",
}
